package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizmaster/internal/screen"
)

// PushMsg opens Screen on top of the current one.
type PushMsg struct {
	Screen screen.Screen
}

// BackMsg closes the top screen and returns to the one below.
type BackMsg struct{}

// Router keeps the screen stack. The bottom screen is never removed.
type Router struct {
	stack []screen.Screen
}

// New creates a Router rooted at root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push makes s the active screen and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Back drops the active screen. The screen uncovered by it is resumed if
// it implements screen.Resumer. At the root Back does nothing.
func (r *Router) Back() tea.Cmd {
	if !r.CanGoBack() {
		return nil
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	if s, ok := r.Active().(screen.Resumer); ok {
		return s.Resume()
	}
	return nil
}

// CanGoBack reports whether a screen sits above the root.
func (r *Router) CanGoBack() bool {
	return len(r.stack) > 1
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of open screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushMsg:
		return r.Push(msg.Screen)
	case BackMsg:
		return r.Back()
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View renders the active screen into width x height.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
