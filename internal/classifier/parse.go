package classifier

import (
	"encoding/json"
	"strings"

	"github.com/shakthi215/SupportTicketSystem/internal/domain"
)

type completionResult struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// parseCompletion runs the parse ladder over raw completion text: strict
// JSON first, then a lenient keyword scan, then defaults. The returned
// suggestion is always vocabulary-valid.
func parseCompletion(text string) Suggestion {
	cleaned := stripFences(text)

	var result completionResult
	if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
		return strictSuggestion(result)
	}
	return lenientSuggestion(cleaned)
}

// strictSuggestion validates each parsed field independently; an invalid
// category does not discard a valid priority.
func strictSuggestion(result completionResult) Suggestion {
	suggestion := defaultSuggestion()
	suggestion.Outcome = OutcomeStrict

	category := domain.TicketCategory(strings.ToLower(strings.TrimSpace(result.Category)))
	if category.Valid() {
		suggestion.SuggestedCategory = category
	}
	priority := domain.TicketPriority(strings.ToLower(strings.TrimSpace(result.Priority)))
	if priority.Valid() {
		suggestion.SuggestedPriority = priority
	}
	return suggestion
}

// lenientSuggestion scavenges keywords from free-form completion text. The
// category is the one mentioned earliest; the priority is the most urgent
// one mentioned anywhere. Finding neither keeps the default outcome.
func lenientSuggestion(text string) Suggestion {
	lowered := strings.ToLower(text)
	suggestion := defaultSuggestion()

	bestIdx := -1
	for _, category := range domain.Categories() {
		idx := strings.Index(lowered, string(category))
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx {
			bestIdx = idx
			suggestion.SuggestedCategory = category
		}
	}
	if bestIdx >= 0 {
		suggestion.Outcome = OutcomeLenient
	}

	// Most urgent first, so text naming several levels resolves upward.
	for _, priority := range []domain.TicketPriority{
		domain.PriorityCritical,
		domain.PriorityHigh,
		domain.PriorityMedium,
		domain.PriorityLow,
	} {
		if strings.Contains(lowered, string(priority)) {
			suggestion.SuggestedPriority = priority
			suggestion.Outcome = OutcomeLenient
			break
		}
	}

	return suggestion
}

// stripFences removes a surrounding markdown code fence, which completion
// models emit even when told not to.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
