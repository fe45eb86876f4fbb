package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/ui/theme"
)

// Button is a styled button component. Key is a shortcut that presses it
// from anywhere on the screen; enter presses it only while Focused.
type Button struct {
	Label   string
	Key     string
	Active  bool
	Focused bool
	OnPress func() tea.Cmd
}

// NewButton creates a new enabled button.
func NewButton(label, key string, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Key:     key,
		Active:  true,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active || b.OnPress == nil {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		k := kmsg.String()
		if (b.Key != "" && k == b.Key) || (b.Focused && k == "enter") {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label += " [" + b.Key + "]"
	}
	switch {
	case !b.Active:
		return theme.ButtonInactive.Foreground(theme.TextDim).Render(label)
	case b.Focused:
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Foreground(theme.Text).Render(label)
}

// ButtonRow renders buttons side by side with a gap between them.
func ButtonRow(buttons ...Button) string {
	views := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
