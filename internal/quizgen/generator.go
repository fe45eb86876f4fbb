package quizgen

import "context"

// Generator produces quiz questions and topic suggestions.
type Generator interface {
	// Generate produces a single question for the given input.
	// Returns a validated Question or a *GenerationError.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)

	// SuggestTopics returns a few topic ideas. It never fails: on any
	// problem it returns an empty slice and the caller falls back to
	// FallbackTopics.
	SuggestTopics(ctx context.Context) []Topic
}
