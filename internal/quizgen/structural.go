package quizgen

import (
	"fmt"
	"strings"
)

// OptionCount is the number of answer choices every question carries.
const OptionCount = 4

// StructuralValidator checks that required fields are present and that the
// option list and correct index line up. It does not judge content.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	if strings.TrimSpace(q.Text) == "" {
		return fail("question is empty")
	}
	if len(q.Options) != OptionCount {
		return fail(fmt.Sprintf("expected %d options, got %d", OptionCount, len(q.Options)))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fail(fmt.Sprintf("option %d is empty", i))
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount {
		return fail(fmt.Sprintf("correctAnswerIndex %d out of range 0-%d", q.CorrectIndex, OptionCount-1))
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return fail("explanation is empty")
	}
	if strings.TrimSpace(q.Hint) == "" {
		return fail("hint is empty")
	}
	if strings.TrimSpace(q.Difficulty) == "" {
		return fail("difficulty is empty")
	}
	return nil
}

// RepeatValidator rejects a question whose text exactly matches, ignoring
// case and spacing, one already in the recent history. Rephrasings pass.
type RepeatValidator struct{}

func (v *RepeatValidator) Name() string { return "repeat" }

func (v *RepeatValidator) Validate(q *Question, input GenerateInput) *ValidationError {
	text := normalizeText(q.Text)
	for _, prior := range input.RecentHistory {
		if normalizeText(prior) == text {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "question repeats a recently asked question",
				Retryable: true,
			}
		}
	}
	return nil
}
