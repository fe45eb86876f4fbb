package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// ChoiceMsg is emitted when the user picks an option.
type ChoiceMsg struct {
	Index int
}

// MultiChoice is a multiple-choice selector. It only tracks the cursor;
// the chosen answer and correctness come from the owner via Reveal.
type MultiChoice struct {
	Options      []string
	Cursor       int
	CorrectIndex int
	ChosenIndex  int
	Revealed     bool
}

// NewMultiChoice creates a selector for a fresh question.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Reveal marks chosen as the submitted answer and shows the correct one.
func (m *MultiChoice) Reveal(chosen int) {
	m.Revealed = true
	m.ChosenIndex = chosen
}

// Update handles arrow navigation, number keys and enter.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter":
		return m, choose(m.Cursor)
	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(m.Options) {
			m.Cursor = i
			return m, choose(i)
		}
	}

	return m, nil
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return ChoiceMsg{Index: i} }
}

// View renders the options at the given width.
func (m MultiChoice) View(width int) string {
	var lines []string

	for i, opt := range m.Options {
		label := fmt.Sprintf("%d", i+1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Cursor && !m.Revealed {
			prefix = "▸ "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Revealed && i == m.CorrectIndex:
			style = theme.Correct
			prefix = "✔ "
		case m.Revealed && i == m.ChosenIndex:
			style = theme.Incorrect
			prefix = "✘ "
		case m.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		}

		head := style.Render(fmt.Sprintf("%s%s) ", prefix, label))
		body := FormattedText(opt, style, max(width-lipgloss.Width(head), 10))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, head, body))
	}

	return strings.Join(lines, "\n")
}

// IsCorrect reports whether the revealed choice was the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Revealed && m.ChosenIndex == m.CorrectIndex
}
