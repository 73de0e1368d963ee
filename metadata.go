package ai

import "time"

// GenerationMetadata describes how the provider served a chat request.
type GenerationMetadata struct {
	ID    string
	Model string
	Usage Usage

	// RateLimit is nil when the provider did not report rate limit headers.
	RateLimit *RateLimit
}

// RateLimit mirrors the provider's rate limit headers at response time.
type RateLimit struct {
	RequestsLimit     int
	RequestsRemaining int
	RequestsReset     time.Duration

	TokensLimit     int
	TokensRemaining int
	TokensReset     time.Duration
}

// PromptFilterMetadata holds the content filter verdict for one prompt.
type PromptFilterMetadata struct {
	PromptIndex   int
	ContentFilter any
}

// PromptMetadata lists per-prompt metadata in provider order.
type PromptMetadata []PromptFilterMetadata

func (pm PromptMetadata) FindByPromptIndex(index int) (PromptFilterMetadata, bool) {
	for _, m := range pm {
		if m.PromptIndex == index {
			return m, true
		}
	}
	return PromptFilterMetadata{}, false
}

// ChoiceMetadata is attached to each generation.
type ChoiceMetadata struct {
	FinishReason  FinishReason
	ContentFilter any
}
