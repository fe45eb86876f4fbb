// Package screen holds the contract between the router and the topic and
// quiz screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizmaster/internal/ui/layout"
)

// Screen is one page of the quiz UI. The app frame draws the header and
// footer; a screen only fills the body between them.
type Screen interface {
	// Init runs once when the router pushes the screen, e.g. to start the
	// topic suggestion fetch or the first question fetch.
	Init() tea.Cmd

	// Update returns the screen to keep on the stack, which may be a new
	// value since quiz transitions are value-based.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body into width x height cells.
	View(width, height int) string

	// Title is shown in the header, e.g. the active quiz topic.
	Title() string
}

// KeyHintProvider lets a screen replace the footer's default hints, such
// as the quiz screen listing answer, hint and skip keys only while playing.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh when the router pops the
// screen above them. The topic screen uses it to clear and refocus its input.
type Resumer interface {
	Resume() tea.Cmd
}
