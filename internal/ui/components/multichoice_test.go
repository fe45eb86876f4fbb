package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoiceNavigation(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"}, 2)

	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Cursor != 0 {
		t.Fatalf("cursor moved above first option: %d", m.Cursor)
	}
	for i := 0; i < 5; i++ {
		m, _ = m.Update(specialKey(tea.KeyDown))
	}
	if m.Cursor != 3 {
		t.Fatalf("cursor = %d, want 3", m.Cursor)
	}
}

func TestMultiChoiceEmitsChoice(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"}, 2)

	m, cmd := m.Update(keyPress('3'))
	if cmd == nil {
		t.Fatal("expected a command for number key")
	}
	msg, ok := cmd().(ChoiceMsg)
	if !ok || msg.Index != 2 {
		t.Fatalf("got %#v, want ChoiceMsg{Index: 2}", cmd())
	}
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}

	m, cmd = m.Update(specialKey(tea.KeyEnter))
	if cmd == nil || cmd().(ChoiceMsg).Index != 2 {
		t.Fatal("enter should choose the option under the cursor")
	}
}

func TestMultiChoiceIgnoresInputAfterReveal(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"}, 0)
	m.Reveal(1)

	_, cmd := m.Update(keyPress('1'))
	if cmd != nil {
		t.Fatal("revealed selector should not emit choices")
	}
	if m.IsCorrect() {
		t.Error("chose 1, correct is 0")
	}

	view := m.View(60)
	if !strings.Contains(view, "✔") || !strings.Contains(view, "✘") {
		t.Errorf("revealed view should mark correct and chosen options:\n%s", view)
	}
}
