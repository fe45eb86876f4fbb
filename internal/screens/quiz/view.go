package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/session"
	"github.com/abhisek/quizmaster/internal/ui/components"
	"github.com/abhisek/quizmaster/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var content string
	switch s.state.Status {
	case session.StatusPlaying:
		content = s.renderQuestion(cw)
	case session.StatusError:
		content = s.renderError(cw)
	default:
		content = s.renderLoading(cw)
	}

	return components.Frame(content, width, height)
}

func (s *QuizScreen) renderLoading(cw int) string {
	msg := fmt.Sprintf("%s Generating a question about %s...", s.spin.View(), s.topic)
	return components.Card("", theme.Subtitle.Width(cw-6).Render(msg), cw)
}

func (s *QuizScreen) renderError(cw int) string {
	body := lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw - 6).
		Align(lipgloss.Center).
		Render(s.state.Err)
	buttons := lipgloss.NewStyle().Width(cw - 6).Align(lipgloss.Center).Render(s.retryBtn.View())
	return components.Card("Something went wrong", body+"\n\n"+buttons, cw)
}

func (s *QuizScreen) renderQuestion(cw int) string {
	st := s.state
	q := st.Current
	inner := cw - 6

	var b strings.Builder

	badge := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(strings.ToUpper(q.Difficulty))
	num := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("Question %d", len(st.History)))
	gap := max(inner-lipgloss.Width(badge)-lipgloss.Width(num), 1)
	b.WriteString(num + strings.Repeat(" ", gap) + badge)
	b.WriteString("\n\n")

	b.WriteString(components.FormattedText(q.Text, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), inner))
	b.WriteString("\n\n")

	b.WriteString(s.choices.View(inner))
	b.WriteString("\n")

	if st.HintShown && !st.Submitted {
		b.WriteString("\n")
		b.WriteString(components.FormattedText("Hint: "+q.Hint, theme.Hint, inner))
		b.WriteString("\n")
	}

	if st.Submitted {
		b.WriteString("\n")
		if st.LastCorrect() {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer is %s.", optionLabel(q.CorrectIndex))))
		}
		b.WriteString("\n")
		b.WriteString(components.FormattedText(q.Explanation, theme.Body, inner))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(inner).Align(lipgloss.Center).Render(
		components.ButtonRow(s.hintBtn, s.skipBtn, s.nextBtn)))
	b.WriteString("\n\n")
	b.WriteString(components.NewAccuracyBar(st.Score, st.Answered, inner).View())

	return components.Card("", b.String(), cw)
}

func optionLabel(i int) string {
	return string(rune('A' + i))
}
