package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/quizgen"
	"github.com/abhisek/quizmaster/internal/router"
	"github.com/abhisek/quizmaster/internal/screen"
	"github.com/abhisek/quizmaster/internal/screens/topics"
	"github.com/abhisek/quizmaster/internal/session"
	"github.com/abhisek/quizmaster/internal/store"
	"github.com/abhisek/quizmaster/internal/ui/layout"
	"github.com/abhisek/quizmaster/internal/ui/theme"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Generator quizgen.Generator
	Prefs     store.PreferenceRepo // optional
}

// themeSavedMsg reports the outcome of persisting the theme preference.
type themeSavedMsg struct {
	Err error
}

// AppModel is the root Bubble Tea model. It owns the quiz session for the
// whole run; screens share it through a pointer.
type AppModel struct {
	router  *router.Router
	session *session.State
	prefs   store.PreferenceRepo
	notice  string
	width   int
	height  int
}

// newAppModel creates a new AppModel with the topic screen.
func newAppModel(opts Options) AppModel {
	st := session.New()
	return AppModel{
		router:  router.New(topics.New(&st, opts.Generator)),
		session: &st,
		prefs:   opts.Prefs,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case themeSavedMsg:
		m.notice = ""
		if msg.Err != nil {
			m.notice = "theme not saved"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			return m, m.saveTheme(theme.Toggle())
		case "esc":
			if m.router.CanGoBack() {
				*m.session = m.session.Exit()
				return m, func() tea.Msg { return router.BackMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) saveTheme(mode theme.Mode) tea.Cmd {
	if m.prefs == nil {
		return nil
	}
	prefs := m.prefs
	return func() tea.Msg {
		return themeSavedMsg{Err: prefs.Set(context.Background(), store.PrefTheme, string(mode))}
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var stats layout.SessionStats
	if m.session.Active() {
		stats = layout.SessionStats{
			Topic:    m.session.Topic,
			Score:    m.session.Score,
			Answered: m.session.Answered,
			Streak:   m.session.Streak,
		}
	}
	header := layout.RenderHeader(title, stats, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+T", Description: "Theme"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	if m.notice != "" {
		footerHints = append(footerHints, layout.KeyHint{Key: "!", Description: m.notice})
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// LoadTheme applies the persisted theme preference. A missing or
// unreadable preference leaves the default theme in place.
func LoadTheme(ctx context.Context, prefs store.PreferenceRepo) theme.Mode {
	if prefs != nil {
		if v, ok, err := prefs.Get(ctx, store.PrefTheme); err == nil && ok {
			theme.Apply(theme.ParseMode(v))
		}
	}
	return theme.Current()
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	LoadTheme(context.Background(), opts.Prefs)

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
