package session

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/quizmaster/internal/quizgen"
)

// RecentWindowSize is how many history entries are sent to the provider.
const RecentWindowSize = 20

// ErrorMessage is shown for every generation failure.
const ErrorMessage = "Failed to generate a valid question. Please try again or choose a different topic."

// Status is the session's position in the quiz lifecycle.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusPlaying
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusPlaying:
		return "playing"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the quiz session. Transitions are value-receiver methods that
// return the next State, plus a *FetchRequest when a question must be
// fetched. The caller runs the request and feeds the FetchResult back
// through Resolve.
type State struct {
	Status     Status
	Topic      string
	Difficulty quizgen.Difficulty

	// Current is set only while Playing.
	Current *quizgen.Question

	Score    int
	Answered int
	Streak   int

	// History holds every question text shown since Start, oldest first.
	History []string

	// Err is the user-facing message while in StatusError; Failure keeps
	// the underlying error for diagnostics.
	Err     string
	Failure error

	// Generation changes on every Start and Exit. Results tagged with an
	// older generation are ignored.
	Generation uint64

	// SessionID correlates LLM log entries for one Start..Exit run.
	SessionID string

	// Per-question interaction, reset when a new question arrives.
	Submitted bool
	Selected  int
	HintShown bool
}

// FetchRequest asks the caller to fetch a question on behalf of a session.
type FetchRequest struct {
	Generation uint64
	SessionID  string
	Input      quizgen.GenerateInput
}

// FetchResult is the outcome of a FetchRequest.
type FetchResult struct {
	Generation uint64
	Question   *quizgen.Question
	Err        error
}

// New returns an idle session.
func New() State {
	return State{Status: StatusIdle, Difficulty: quizgen.DifficultyMixed}
}

// Active reports whether a topic is in progress.
func (s State) Active() bool {
	return s.Status != StatusIdle
}

// LastCorrect reports whether the submitted answer to the current question
// was correct.
func (s State) LastCorrect() bool {
	return s.Submitted && s.Current != nil && s.Current.IsCorrect(s.Selected)
}

// Start begins a new topic from any status, abandoning whatever was in
// progress. A blank topic is ignored; an unknown difficulty becomes Mixed.
func (s State) Start(topic string, difficulty quizgen.Difficulty) (State, *FetchRequest) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return s, nil
	}
	if !difficulty.Valid() {
		difficulty = quizgen.DifficultyMixed
	}

	next := State{
		Status:     StatusLoading,
		Topic:      topic,
		Difficulty: difficulty,
		Generation: s.Generation + 1,
		SessionID:  uuid.NewString(),
	}
	return next, next.request()
}

// Resolve applies a fetch outcome. Results from another generation, or
// arriving when no fetch is pending, leave s unchanged.
func (s State) Resolve(res FetchResult) State {
	if res.Generation != s.Generation || s.Status != StatusLoading {
		return s
	}

	if res.Err != nil || res.Question == nil {
		err := res.Err
		if err == nil {
			err = &quizgen.GenerationError{Kind: quizgen.FailureEmpty, Err: errors.New("no question returned")}
		}
		s.Status = StatusError
		s.Err = ErrorMessage
		s.Failure = err
		return s
	}

	history := make([]string, len(s.History), len(s.History)+1)
	copy(history, s.History)
	s.History = append(history, res.Question.Text)

	s.Status = StatusPlaying
	s.Current = res.Question
	s.Err = ""
	s.Failure = nil
	s.resetQuestion()
	return s
}

// Answer scores option i for the current question. Only the first answer
// per question counts; out-of-range indexes are ignored.
func (s State) Answer(i int) State {
	if s.Status != StatusPlaying || s.Current == nil || s.Submitted {
		return s
	}
	if i < 0 || i >= len(s.Current.Options) {
		return s
	}

	s.Submitted = true
	s.Selected = i
	s.Answered++
	if s.Current.IsCorrect(i) {
		s.Score++
		s.Streak++
	} else {
		s.Streak = 0
	}
	return s
}

// RevealHint shows the hint for the current, unanswered question.
func (s State) RevealHint() State {
	if s.Status != StatusPlaying || s.Submitted {
		return s
	}
	s.HintShown = true
	return s
}

// Next moves on to a new question on the same topic.
func (s State) Next() (State, *FetchRequest) {
	if s.Status != StatusPlaying {
		return s, nil
	}
	s = s.loading()
	return s, s.request()
}

// Skip abandons the current question. It always counts as answered and
// breaks the streak, even when the question was already answered.
func (s State) Skip() (State, *FetchRequest) {
	if s.Status != StatusPlaying {
		return s, nil
	}
	s.Answered++
	s.Streak = 0
	s = s.loading()
	return s, s.request()
}

// Retry repeats the failed fetch with the same topic, difficulty and
// history.
func (s State) Retry() (State, *FetchRequest) {
	if s.Status != StatusError {
		return s, nil
	}
	s = s.loading()
	return s, s.request()
}

// Exit returns to Idle and invalidates any outstanding fetch.
func (s State) Exit() State {
	if s.Status == StatusIdle {
		return s
	}
	next := New()
	next.Generation = s.Generation + 1
	return next
}

// RecentHistory returns the tail of History sent to the provider.
func (s State) RecentHistory() []string {
	return quizgen.RecentWindow(s.History, RecentWindowSize)
}

func (s State) loading() State {
	s.Status = StatusLoading
	s.Current = nil
	s.Err = ""
	s.Failure = nil
	s.resetQuestion()
	return s
}

func (s *State) resetQuestion() {
	s.Submitted = false
	s.Selected = 0
	s.HintShown = false
}

func (s State) request() *FetchRequest {
	return &FetchRequest{
		Generation: s.Generation,
		SessionID:  s.SessionID,
		Input: quizgen.GenerateInput{
			Topic:         s.Topic,
			Difficulty:    s.Difficulty,
			RecentHistory: s.RecentHistory(),
		},
	}
}
