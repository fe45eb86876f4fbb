package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMissingCredentials is reported by an unconfigured provider on every call.
var ErrMissingCredentials = errors.New("no LLM API key configured")

// ErrRateLimit is a 429 from a backend. WithRetry waits RetryAfter, capped
// at the configured MaxWait, before the next attempt.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the payload failed the question or topics
// schema. Content keeps the rejected payload for the event log, and the
// quiz reports it as a malformed failure.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrEmptyResponse means the backend answered without a payload, e.g. a
// blocked Gemini prompt or an Anthropic reply with no text block.
type ErrEmptyResponse struct {
	Reason string
}

func (e *ErrEmptyResponse) Error() string {
	if e.Reason == "" {
		return "empty LLM response"
	}
	return "empty LLM response: " + e.Reason
}

// ErrProviderUnavailable covers network and HTTP failures and a
// backend with no API key. The quiz reports it as a transport failure.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the question JSON was cut off at MaxTokens.
// It is never retried since the same budget would truncate again.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}
