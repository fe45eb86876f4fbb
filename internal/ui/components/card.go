package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards inside a frame of
// the given width, so stacked boxes line up.
func ContentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 72)
}

// Frame wraps content in a double border, centered within the given
// dimensions.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border box at content width cw. A
// non-empty title is rendered above the content.
func Card(title, content string, cw int) string {
	if title != "" {
		content = theme.Title.Width(cw-6).Render(title) + "\n\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(1, 2).
		Render(content)
}

// Chip renders a compact selectable label. Selected chips are filled
// with the highlight color.
func Chip(label string, selected bool) string {
	if selected {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Highlight).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Highlight).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}

// ChipRow renders labels as chips on one line, marking index selected.
func ChipRow(labels []string, selected int) string {
	chips := make([]string, len(labels))
	for i, l := range labels {
		chips[i] = Chip(l, i == selected)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, chips...)
}
