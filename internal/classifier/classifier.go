package classifier

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shakthi215/SupportTicketSystem/internal/config"
	"github.com/shakthi215/SupportTicketSystem/internal/domain"
)

// Completer performs a single text-completion round trip against an
// external service.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Name() string
}

// Outcome tags how a suggestion was produced, making the fallback ladder
// auditable in logs and tests.
type Outcome string

const (
	OutcomeStrict  Outcome = "strict"
	OutcomeLenient Outcome = "lenient"
	OutcomeDefault Outcome = "default"
)

// Suggestion is the gateway result: an always-valid classification plus the
// outcome of the parse ladder that produced it.
type Suggestion struct {
	domain.Classification
	Outcome Outcome
}

// minDescriptionLength is the shortest trimmed description worth sending to
// the completion service.
const minDescriptionLength = 10

// Gateway turns an untrusted description into a constrained category and
// priority suggestion. Classify never fails: every error path degrades to
// the default {general, medium}.
type Gateway struct {
	completer Completer
	timeout   time.Duration
	logger    *zap.Logger
}

// New builds a gateway from configuration. An empty API key or an unknown
// provider yields a gateway with no completer, which answers with defaults.
func New(cfg config.ClassifierConfig, logger *zap.Logger) *Gateway {
	var completer Completer
	if strings.TrimSpace(cfg.APIKey) == "" {
		logger.Warn("classifier API key not configured; suggestions fall back to defaults")
	} else {
		switch cfg.Provider {
		case "openai":
			completer = NewOpenAICompleter(cfg.APIKey, cfg.Model)
		case "anthropic":
			completer = NewAnthropicCompleter(cfg.APIKey, cfg.Model)
		default:
			logger.Warn("unknown classifier provider; suggestions fall back to defaults",
				zap.String("provider", cfg.Provider))
		}
	}
	return NewWithCompleter(completer, cfg.Timeout(), logger)
}

// NewWithCompleter wires an explicit completer, which may be nil. Tests use
// this to substitute fakes.
func NewWithCompleter(completer Completer, timeout time.Duration, logger *zap.Logger) *Gateway {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Gateway{completer: completer, timeout: timeout, logger: logger}
}

// Configured reports whether a completion backend is available.
func (g *Gateway) Configured() bool {
	return g.completer != nil
}

// Classify suggests a category and priority for the given description.
// At most one network request is made per call.
func (g *Gateway) Classify(ctx context.Context, description string) Suggestion {
	if g.completer == nil {
		return defaultSuggestion()
	}

	trimmed := strings.TrimSpace(description)
	if len(trimmed) < minDescriptionLength {
		g.logger.Info("description too short for classification, using defaults",
			zap.Int("length", len(trimmed)))
		return defaultSuggestion()
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.completer.Complete(ctx, systemPrompt, buildUserPrompt(trimmed))
	if err != nil {
		g.logger.Warn("classification request failed, using defaults",
			zap.String("provider", g.completer.Name()),
			zap.Error(err))
		return defaultSuggestion()
	}

	suggestion := parseCompletion(text)
	g.logger.Info("classification result",
		zap.String("provider", g.completer.Name()),
		zap.String("outcome", string(suggestion.Outcome)),
		zap.String("category", string(suggestion.SuggestedCategory)),
		zap.String("priority", string(suggestion.SuggestedPriority)))
	return suggestion
}

func defaultSuggestion() Suggestion {
	return Suggestion{Classification: domain.DefaultClassification(), Outcome: OutcomeDefault}
}
