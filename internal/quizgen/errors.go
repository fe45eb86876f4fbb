package quizgen

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/quizmaster/internal/llm"
)

// ErrGenerationFailed matches every *GenerationError via errors.Is.
var ErrGenerationFailed = errors.New("question generation failed")

// ErrEmptyTopic is returned when Generate is called without a topic.
var ErrEmptyTopic = errors.New("topic is required")

// FailureKind classifies why a question could not be produced. Callers
// treat all kinds the same; the kind exists for logs and diagnostics.
type FailureKind int

const (
	// FailureTransport means the backend was unreachable or refused the call.
	FailureTransport FailureKind = iota
	// FailureMalformed means the payload failed parsing or validation.
	FailureMalformed
	// FailureEmpty means the backend answered with no usable payload.
	FailureEmpty
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureMalformed:
		return "malformed"
	case FailureEmpty:
		return "empty"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// GenerationError is the single failure type returned by Generate.
type GenerationError struct {
	Kind FailureKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("question generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// classify maps an error from the provider or the parse/validate step onto
// the failure taxonomy.
func classify(err error) FailureKind {
	var empty *llm.ErrEmptyResponse
	if errors.As(err, &empty) {
		return FailureEmpty
	}

	var invalid *llm.ErrInvalidResponse
	var maxTok *llm.ErrMaxTokensExceeded
	var verr *ValidationError
	var syntax *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &invalid),
		errors.As(err, &maxTok),
		errors.As(err, &verr),
		errors.As(err, &syntax),
		errors.As(err, &typeErr):
		return FailureMalformed
	}

	return FailureTransport
}

func newGenerationError(err error) *GenerationError {
	return &GenerationError{Kind: classify(err), Err: err}
}
