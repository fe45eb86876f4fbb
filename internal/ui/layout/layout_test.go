package layout

import (
	"strings"
	"testing"
)

func TestRenderHeaderIdle(t *testing.T) {
	h := RenderHeader("Choose a Topic", SessionStats{}, 100)
	if !strings.Contains(h, "Quizmaster") || !strings.Contains(h, "Choose a Topic") {
		t.Errorf("idle header missing app name or title:\n%s", h)
	}
	if strings.Contains(h, "✔") {
		t.Error("idle header should not show a score")
	}
}

func TestRenderHeaderSession(t *testing.T) {
	h := RenderHeader("Quiz", SessionStats{Topic: "Roman Empire", Score: 3, Answered: 5, Streak: 2}, 100)
	for _, want := range []string{"Roman Empire", "3/5", "🔥 2"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q:\n%s", want, h)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"a very long topic name", 8, "a very …"},
		{"abc", 1, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("narrow terminal should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestRenderFooterDropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "enter", Description: "submit"},
		{Key: "tab", Description: "next field"},
		{Key: "ctrl+t", Description: "toggle theme"},
	}
	wide := RenderFooter(hints, 100)
	if !strings.Contains(wide, "toggle theme") {
		t.Errorf("wide footer should show every hint:\n%s", wide)
	}

	narrow := RenderFooter(hints, 30)
	if !strings.Contains(narrow, "submit") || strings.Contains(narrow, "toggle theme") {
		t.Errorf("narrow footer should keep the first hint only:\n%s", narrow)
	}
}

func TestSpread(t *testing.T) {
	got := spread(20, "L", "C", "R")
	if len(got) != 20 || got[0] != 'L' || got[19] != 'R' {
		t.Errorf("spread = %q", got)
	}
	if got := spread(2, "left", "center", "right"); got != "left center right" {
		t.Errorf("cramped spread = %q", got)
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	out := RenderFrame("H", "body", "F", 20, 10)
	if lines := strings.Count(out, "\n") + 1; lines != 10 {
		t.Errorf("frame has %d lines, want 10", lines)
	}
}
