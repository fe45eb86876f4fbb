package topics

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/quizgen"
	"github.com/abhisek/quizmaster/internal/router"
	"github.com/abhisek/quizmaster/internal/screen"
	"github.com/abhisek/quizmaster/internal/screens/quiz"
	"github.com/abhisek/quizmaster/internal/session"
	"github.com/abhisek/quizmaster/internal/ui/components"
	"github.com/abhisek/quizmaster/internal/ui/layout"
	"github.com/abhisek/quizmaster/internal/ui/theme"
)

type focus int

const (
	focusInput focus = iota
	focusDifficulty
	focusSuggestions
	focusCount
)

// suggestionsMsg delivers suggested topics, already resolved to the
// fallback list when the generator had none.
type suggestionsMsg struct {
	Topics []quizgen.Topic
}

// startMsg asks the screen to begin a quiz on Topic.
type startMsg struct {
	Topic string
}

// TopicsScreen lets the user type a topic or pick a suggestion, choose a
// difficulty and start a quiz.
type TopicsScreen struct {
	state     *session.State
	generator quizgen.Generator

	input       components.TextInput
	difficulty  int
	suggestions components.Menu
	loading     bool
	focus       focus
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)
var _ screen.Resumer = (*TopicsScreen)(nil)

// New creates the topic selection screen. Mixed is preselected.
func New(state *session.State, generator quizgen.Generator) *TopicsScreen {
	return &TopicsScreen{
		state:      state,
		generator:  generator,
		input:      components.NewTextInput("e.g. Quantum Physics, 90s Pop Music...", 80),
		difficulty: indexOf(quizgen.DifficultyMixed),
		loading:    true,
	}
}

func (t *TopicsScreen) Init() tea.Cmd {
	gen := t.generator
	return tea.Batch(
		t.input.Init(),
		func() tea.Msg {
			return suggestionsMsg{Topics: quizgen.TopicsOrFallback(gen.SuggestTopics(context.Background()))}
		},
	)
}

// Resume clears the previous topic and returns focus to the input.
func (t *TopicsScreen) Resume() tea.Cmd {
	t.input.SetValue("")
	return t.setFocus(focusInput)
}

func (t *TopicsScreen) Title() string {
	return "Choose a Topic"
}

func (t *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionsMsg:
		t.loading = false
		t.setSuggestions(msg.Topics)
		return t, nil

	case startMsg:
		next := quiz.New(t.state, t.generator, msg.Topic, t.Difficulty())
		return t, func() tea.Msg {
			return router.PushMsg{Screen: next}
		}

	case tea.KeyMsg:
		return t.handleKey(msg)
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TopicsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return t, t.setFocus((t.focus + 1) % focusCount)
	case "shift+tab":
		return t, t.setFocus((t.focus + focusCount - 1) % focusCount)
	}

	switch t.focus {
	case focusInput:
		if msg.String() == "enter" {
			return t, t.submit()
		}
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return t, cmd

	case focusDifficulty:
		switch msg.String() {
		case "left", "h":
			t.difficulty = (t.difficulty + len(quizgen.Difficulties) - 1) % len(quizgen.Difficulties)
		case "right", "l":
			t.difficulty = (t.difficulty + 1) % len(quizgen.Difficulties)
		case "enter":
			return t, t.submit()
		}
		return t, nil

	case focusSuggestions:
		var cmd tea.Cmd
		t.suggestions, cmd = t.suggestions.Update(msg)
		return t, cmd
	}

	return t, nil
}

// submit starts a quiz on the typed topic, or flags the empty input.
func (t *TopicsScreen) submit() tea.Cmd {
	topic := t.input.Value()
	if topic == "" {
		t.input.SetError("Type a topic or pick a suggestion")
		if t.focus == focusInput {
			return nil
		}
		return t.setFocus(focusInput)
	}
	return func() tea.Msg { return startMsg{Topic: topic} }
}

func (t *TopicsScreen) setFocus(f focus) tea.Cmd {
	t.focus = f
	t.suggestions.Blurred = f != focusSuggestions
	if f == focusInput {
		return t.input.Focus()
	}
	t.input.Blur()
	return nil
}

func (t *TopicsScreen) setSuggestions(topics []quizgen.Topic) {
	items := make([]components.MenuItem, len(topics))
	for i, tp := range topics {
		label := tp.Label
		items[i] = components.MenuItem{
			Label:  CategoryIcon(tp.Category) + " " + label,
			Detail: tp.Category,
			Action: func() tea.Cmd {
				return func() tea.Msg { return startMsg{Topic: label} }
			},
		}
	}
	t.suggestions = components.NewMenu(items)
	t.suggestions.Blurred = t.focus != focusSuggestions
}

// Difficulty returns the selected difficulty.
func (t *TopicsScreen) Difficulty() quizgen.Difficulty {
	return quizgen.Difficulties[t.difficulty]
}

func (t *TopicsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	inner := cw - 6

	var sections []string

	sections = append(sections,
		theme.Title.Width(cw).Render("Test Your Knowledge"),
		theme.Subtitle.Width(cw).Render("Choose any topic and difficulty for a freshly generated quiz."),
	)

	var form strings.Builder
	form.WriteString(t.label("What do you want to learn about?", t.focus == focusInput))
	form.WriteString("\n")
	form.WriteString(t.input.View())
	form.WriteString("\n\n")
	form.WriteString(t.label("Difficulty", t.focus == focusDifficulty))
	form.WriteString("\n")
	labels := make([]string, len(quizgen.Difficulties))
	for i, d := range quizgen.Difficulties {
		labels[i] = string(d)
	}
	form.WriteString(components.ChipRow(labels, t.difficulty))
	sections = append(sections, components.Card("", lipgloss.NewStyle().Width(inner).Render(form.String()), cw))

	var sugg strings.Builder
	sugg.WriteString(t.label("Trending topics", t.focus == focusSuggestions))
	sugg.WriteString("\n")
	if t.loading {
		sugg.WriteString(theme.Hint.Render("    Fetching suggestions..."))
	} else {
		sugg.WriteString(strings.TrimRight(t.suggestions.View(), "\n"))
	}
	sections = append(sections, components.Card("", sugg.String(), cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (t *TopicsScreen) label(s string, focused bool) string {
	if focused {
		return theme.Selected.Render(s)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(s)
}

func (t *TopicsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Switch field"}}
	switch t.focus {
	case focusDifficulty:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Difficulty"})
	case focusSuggestions:
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Navigate"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Start"},
		layout.KeyHint{Key: "Ctrl+T", Description: "Theme"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

// CategoryIcon maps a suggestion category to a glyph.
func CategoryIcon(category string) string {
	switch category {
	case "History", "Literature":
		return "📖"
	case "Geography":
		return "🌍"
	case "Technology":
		return "💻"
	case "Science":
		return "⚡"
	case "Entertainment":
		return "📺"
	case "Sports":
		return "🏆"
	case "Arts":
		return "🎨"
	default:
		return "✨"
	}
}

func indexOf(d quizgen.Difficulty) int {
	for i, v := range quizgen.Difficulties {
		if v == d {
			return i
		}
	}
	return 0
}
