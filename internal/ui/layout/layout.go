package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/ui/theme"
)

// Smallest terminal a question card with four options fits in.
const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small\n\nResize to at least %d x %d\n(currently %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// SessionStats is the running tally shown in the header while a quiz is
// active. A zero Topic hides the tally.
type SessionStats struct {
	Topic    string
	Score    int
	Answered int
	Streak   int
}

// RenderHeader renders the top bar: app name, then the screen title or the
// active topic, then either the theme mode or the score and streak.
func RenderHeader(title string, stats SessionStats, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Quizmaster")

	var center, right string
	if stats.Topic == "" {
		center = lipgloss.NewStyle().Foreground(theme.Text).Render(title)
		right = lipgloss.NewStyle().Foreground(theme.TextDim).Render(string(theme.Current()))
	} else {
		center = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(truncate(stats.Topic, width/3))
		right = lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✔ %d/%d", stats.Score, stats.Answered)) +
			"   " +
			lipgloss.NewStyle().Foreground(theme.Highlight).Render(fmt.Sprintf("🔥 %d", stats.Streak))
	}

	return bar(theme.Header, spread(innerWidth(width), left, center, right), width)
}

// RenderFooter renders the key hints, dropping trailing hints that do not
// fit on one line.
func RenderFooter(hints []KeyHint, width int) string {
	const sep = "   "
	limit := innerWidth(width)

	var b strings.Builder
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		if b.Len() > 0 {
			part = sep + part
		}
		if lipgloss.Width(b.String())+lipgloss.Width(part) > limit {
			break
		}
		b.WriteString(part)
	}

	return bar(theme.Footer, b.String(), width)
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height remains.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func bar(style lipgloss.Style, content string, width int) string {
	return style.
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// innerWidth is the usable width inside a bar's border and padding.
func innerWidth(width int) int {
	return max(width-6, 0)
}

// spread places left and right at the edges and center in the middle,
// keeping at least one space between them.
func spread(width int, left, center, right string) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((width-cw)/2-lw, 1)
	rightGap := max(width-lw-leftGap-cw-rw, 1)

	return left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
}

// truncate shortens s to at most n cells, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 1 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
