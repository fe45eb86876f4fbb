package quiz

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/spinner"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/quizgen"
	"github.com/abhisek/quizmaster/internal/screen"
	"github.com/abhisek/quizmaster/internal/session"
	"github.com/abhisek/quizmaster/internal/ui/components"
	"github.com/abhisek/quizmaster/internal/ui/layout"
	"github.com/abhisek/quizmaster/internal/ui/theme"
)

// QuizScreen plays questions on one topic. The session state is shared
// with the app, which shows the running tally and exits the session when
// the screen is popped.
type QuizScreen struct {
	state      *session.State
	generator  quizgen.Generator
	topic      string
	difficulty quizgen.Difficulty

	shown   *quizgen.Question
	choices components.MultiChoice
	spin    spinner.Model

	hintBtn  components.Button
	skipBtn  components.Button
	nextBtn  components.Button
	retryBtn components.Button
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen that starts topic at difficulty on Init.
func New(state *session.State, generator quizgen.Generator, topic string, difficulty quizgen.Difficulty) *QuizScreen {
	s := &QuizScreen{
		state:      state,
		generator:  generator,
		topic:      topic,
		difficulty: difficulty,
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
	s.hintBtn = components.NewButton("Hint", "h", s.press(func(st session.State) (session.State, *session.FetchRequest) {
		return st.RevealHint(), nil
	}))
	s.skipBtn = components.NewButton("Skip", "s", s.press(session.State.Skip))
	s.nextBtn = components.NewButton("Next", "n", s.press(session.State.Next))
	s.retryBtn = components.NewButton("Retry", "r", s.press(session.State.Retry))
	return s
}

// transition is a state change bound to a button.
type transition func(session.State) (session.State, *session.FetchRequest)

type transitionMsg struct {
	apply transition
}

func (s *QuizScreen) press(t transition) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return transitionMsg{apply: t} }
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	next, req := s.state.Start(s.topic, s.difficulty)
	*s.state = next
	s.sync()
	return tea.Batch(fetchCmd(s.generator, req), s.spin.Tick)
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		*s.state = s.state.Resolve(msg.Result)
		s.sync()
		return s, nil

	case components.ChoiceMsg:
		*s.state = s.state.Answer(msg.Index)
		s.sync()
		return s, nil

	case transitionMsg:
		next, req := msg.apply(*s.state)
		*s.state = next
		s.sync()
		if req == nil {
			return s, nil
		}
		return s, tea.Batch(fetchCmd(s.generator, req), s.spin.Tick)

	case spinner.TickMsg:
		if s.state.Status != session.StatusLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch s.state.Status {
	case session.StatusPlaying:
		s.choices, cmd = s.choices.Update(msg)
		cmds = append(cmds, cmd)
		s.hintBtn, cmd = s.hintBtn.Update(msg)
		cmds = append(cmds, cmd)
		s.skipBtn, cmd = s.skipBtn.Update(msg)
		cmds = append(cmds, cmd)
		s.nextBtn, cmd = s.nextBtn.Update(msg)
		cmds = append(cmds, cmd)
	case session.StatusError:
		s.retryBtn, cmd = s.retryBtn.Update(msg)
		cmds = append(cmds, cmd)
	}

	return s, tea.Batch(cmds...)
}

// sync aligns the widgets with the session state.
func (s *QuizScreen) sync() {
	st := s.state
	playing := st.Status == session.StatusPlaying

	if playing && st.Current != nil {
		if st.Current != s.shown || (s.choices.Revealed && !st.Submitted) {
			s.shown = st.Current
			s.choices = components.NewMultiChoice(st.Current.Options, st.Current.CorrectIndex)
		}
		if st.Submitted && !s.choices.Revealed {
			s.choices.Cursor = st.Selected
			s.choices.Reveal(st.Selected)
		}
	}

	s.hintBtn.Active = playing && !st.Submitted && !st.HintShown
	s.skipBtn.Active = playing && !st.Submitted
	s.nextBtn.Active = playing && st.Submitted
	s.nextBtn.Focused = s.nextBtn.Active
	s.retryBtn.Active = st.Status == session.StatusError
	s.retryBtn.Focused = s.retryBtn.Active
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.state.Status {
	case session.StatusPlaying:
		if s.state.Submitted {
			return []layout.KeyHint{
				{Key: "n/Enter", Description: "Next"},
				{Key: "Esc", Description: "New topic"},
			}
		}
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "h", Description: "Hint"},
			{Key: "s", Description: "Skip"},
			{Key: "Esc", Description: "New topic"},
		}
	case session.StatusError:
		return []layout.KeyHint{
			{Key: "r/Enter", Description: "Retry"},
			{Key: "Esc", Description: "New topic"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "New topic"},
		{Key: "Ctrl+T", Description: "Theme"},
	}
}
