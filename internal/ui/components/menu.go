package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/ui/theme"
)

// MenuItem is one selectable row of a Menu.
type MenuItem struct {
	Label  string
	Detail string // dimmed text after the label
	Action func() tea.Cmd
}

// Menu is a vertical list with a wrapping cursor. Items can also be picked
// directly with the number keys 1-9. A blurred menu ignores keys and hides
// its cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
	Blurred  bool
}

// NewMenu creates a menu with the cursor on the first item.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update handles keyboard navigation and activation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Blurred || len(m.Items) == 0 {
		return m, nil
	}

	n := len(m.Items)
	switch key := kmsg.String(); key {
	case "up", "k":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j":
		m.Selected = (m.Selected + 1) % n
	case "home", "g":
		m.Selected = 0
	case "end", "G":
		m.Selected = n - 1
	case "enter":
		return m, m.activate()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < n {
				m.Selected = i
				return m, m.activate()
			}
		}
	}
	return m, nil
}

func (m Menu) activate() tea.Cmd {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	if a := m.Items[m.Selected].Action; a != nil {
		return a()
	}
	return nil
}

// View renders one row per item, numbered for the direct-pick shortcut.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		marker, style := "  ", lipgloss.NewStyle().Foreground(theme.Text)
		if i == m.Selected && !m.Blurred {
			marker, style = "▸ ", theme.Selected
		}

		num := "  "
		if i < 9 {
			num = fmt.Sprintf("%d ", i+1)
		}

		b.WriteString("  ")
		b.WriteString(style.Render(marker))
		b.WriteString(theme.Hint.Render(num))
		b.WriteString(style.Render(item.Label))
		if item.Detail != "" {
			b.WriteString("  ")
			b.WriteString(theme.Hint.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
