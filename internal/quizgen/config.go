package quizgen

import "time"

// Purpose labels attached to LLM requests for the event log.
const (
	PurposeQuestion = "question-gen"
	PurposeTopics   = "topic-suggest"
)

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order after the structural check; the first
	// failure stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for a question response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxRecentHistory caps how many prior question texts go into the
	// prompt.
	MaxRecentHistory int

	// SuggestionCount is how many topics SuggestTopics asks for and returns.
	SuggestionCount int

	// TopicTTL is how long a successful suggestion list is reused.
	// Zero disables caching.
	TopicTTL time.Duration
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&RepeatValidator{},
		},
		MaxTokens:        1024,
		Temperature:      0.9,
		MaxRecentHistory: 20,
		SuggestionCount:  4,
		TopicTTL:         10 * time.Minute,
	}
}
