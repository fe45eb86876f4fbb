package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/quizmaster/internal/screen"
)

type fakeScreen struct {
	name    string
	inits   int
	resumes int
	got     []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.name }
func (s *fakeScreen) Title() string        { return s.name }

type resumingScreen struct{ fakeScreen }

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumes++
	return nil
}

func TestPushActivatesAndInits(t *testing.T) {
	r := New(&fakeScreen{name: "topics"})
	quiz := &fakeScreen{name: "quiz"}

	r.Update(PushMsg{Screen: quiz})

	assert.Equal(t, 2, r.Depth())
	assert.True(t, r.CanGoBack())
	assert.Equal(t, "quiz", r.View(10, 10))
	assert.Equal(t, 1, quiz.inits)
}

func TestBackResumesUncoveredScreen(t *testing.T) {
	root := &resumingScreen{fakeScreen{name: "topics"}}
	r := New(root)
	r.Push(&fakeScreen{name: "quiz"})

	r.Update(BackMsg{})

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "topics", r.Active().Title())
	assert.Equal(t, 1, root.resumes)
}

func TestBackAtRootIsNoop(t *testing.T) {
	root := &resumingScreen{fakeScreen{name: "topics"}}
	r := New(root)

	r.Back()

	assert.False(t, r.CanGoBack())
	assert.Equal(t, 1, r.Depth())
	assert.Zero(t, root.resumes)
}

func TestUpdateForwardsToActiveOnly(t *testing.T) {
	root := &fakeScreen{name: "topics"}
	quiz := &fakeScreen{name: "quiz"}
	r := New(root)
	r.Push(quiz)

	r.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Len(t, quiz.got, 1)
	assert.Empty(t, root.got)
}
