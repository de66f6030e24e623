package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shakthi215/SupportTicketSystem/internal/domain"
)

func TestOpenAIComplete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("missing auth header")
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Error("missing content-type")
		}

		var req openaiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("expected default model, got %s", req.Model)
		}
		if req.Temperature != 0 {
			t.Errorf("expected temperature 0, got %v", req.Temperature)
		}
		if req.MaxTokens != maxCompletionTokens {
			t.Errorf("expected max_tokens %d, got %d", maxCompletionTokens, req.MaxTokens)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("expected system+user messages, got %d", len(req.Messages))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"category\": \"technical\", \"priority\": \"medium\"}"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAICompleter("test-key", "", WithBaseURL(srv.URL))
	got, err := c.Complete(context.Background(), systemPrompt, buildUserPrompt("dashboard takes 30 seconds to load"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"category": "technical", "priority": "medium"}` {
		t.Errorf("unexpected completion text: %q", got)
	}
}

func TestOpenAIComplete_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewOpenAICompleter("test-key", "", WithBaseURL(srv.URL))
	if _, err := c.Complete(context.Background(), systemPrompt, "prompt"); err == nil {
		t.Fatal("expected error on 5xx")
	}
}

func TestOpenAIComplete_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	c := NewOpenAICompleter("test-key", "", WithBaseURL(srv.URL))
	if _, err := c.Complete(context.Background(), systemPrompt, "prompt"); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestOpenAIComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewOpenAICompleter("test-key", "", WithBaseURL(srv.URL))
	if _, err := c.Complete(context.Background(), systemPrompt, "prompt"); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

// Upstream failures surface to callers as the default suggestion, never as
// an error.
func TestGatewayWithOpenAIBackend_DegradesToDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	completer := NewOpenAICompleter("test-key", "", WithBaseURL(srv.URL))
	gateway := NewWithCompleter(completer, 5*time.Second, zap.NewNop())

	got := gateway.Classify(context.Background(), "checkout page throws an error on every purchase attempt")
	if got.SuggestedCategory != domain.CategoryGeneral || got.SuggestedPriority != domain.PriorityMedium {
		t.Errorf("expected defaults, got %+v", got.Classification)
	}
	if got.Outcome != OutcomeDefault {
		t.Errorf("outcome = %q, want %q", got.Outcome, OutcomeDefault)
	}
}

func TestGatewayWithOpenAIBackend_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer srv.Close()

	completer := NewOpenAICompleter("test-key", "", WithBaseURL(srv.URL))
	gateway := NewWithCompleter(completer, 50*time.Millisecond, zap.NewNop())

	got := gateway.Classify(context.Background(), "emails to customers bounce with a relay error")
	if got.Outcome != OutcomeDefault {
		t.Errorf("outcome = %q, want %q after timeout", got.Outcome, OutcomeDefault)
	}
}
