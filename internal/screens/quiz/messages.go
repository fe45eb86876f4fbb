package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizmaster/internal/quizgen"
	"github.com/abhisek/quizmaster/internal/session"
)

// fetchedMsg carries a question fetch back to the event loop.
type fetchedMsg struct {
	Result session.FetchResult
}

// fetchCmd runs req off the event loop. A nil request yields no command.
func fetchCmd(gen quizgen.Generator, req *session.FetchRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		return fetchedMsg{Result: session.Fetch(context.Background(), gen, req)}
	}
}
