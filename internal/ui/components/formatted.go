package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/mathtext"
	"github.com/abhisek/quizmaster/internal/ui/theme"
)

// FormattedText renders a string that may contain $...$ and $$...$$ math
// markup. Inline math is styled in place; block math is centered on its
// own line. Text outside math segments uses base.
func FormattedText(s string, base lipgloss.Style, width int) string {
	segs := mathtext.Split(s)
	if len(segs) == 0 {
		return ""
	}

	var lines []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		lines = append(lines, lipgloss.NewStyle().
			Width(width).
			Align(base.GetAlign()).
			Render(cur.String()))
		cur.Reset()
	}

	for _, seg := range segs {
		switch seg.Kind {
		case mathtext.Text:
			cur.WriteString(base.Render(seg.Value))
		case mathtext.Inline:
			cur.WriteString(theme.Math.Render(mathtext.Symbols(seg.Value)))
		case mathtext.Block:
			flush()
			lines = append(lines, theme.Math.
				Width(width).
				Align(lipgloss.Center).
				Render(mathtext.Symbols(seg.Value)))
		}
	}
	flush()

	return strings.Join(lines, "\n")
}
