package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/quizmaster/internal/llm"
)

func validQuestionJSON() json.RawMessage {
	return json.RawMessage(`{
		"question": "Who was the first emperor of Rome?",
		"options": ["Julius Caesar", "Augustus", "Nero", "Trajan"],
		"correctAnswerIndex": 1,
		"explanation": "Octavian took the name Augustus in 27 BC.",
		"hint": "He was Caesar's adopted heir.",
		"difficulty": "Easy"
	}`)
}

func TestGenerate_Valid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuestionJSON()})
	gen := New(mock, DefaultConfig())

	q, err := gen.Generate(context.Background(), GenerateInput{
		Topic:      "Roman Empire",
		Difficulty: DifficultyEasy,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "Who was the first emperor of Rome?" {
		t.Errorf("unexpected text: %q", q.Text)
	}
	if len(q.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(q.Options))
	}
	if q.CorrectIndex != 1 || !q.IsCorrect(1) || q.IsCorrect(0) {
		t.Errorf("unexpected correct index %d", q.CorrectIndex)
	}
	if q.Hint == "" || q.Explanation == "" || q.Difficulty != "Easy" {
		t.Errorf("missing fields: %+v", q)
	}
}

func TestGenerate_PromptCarriesTopicDifficultyAndHistory(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuestionJSON()})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Topic:         "Roman Empire",
		Difficulty:    DifficultyHard,
		RecentHistory: []string{"Who built Hadrian's Wall?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := mock.Calls[0]
	if req.Schema != QuestionSchema {
		t.Error("expected question schema on request")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{
		`"Roman Empire"`,
		`The difficulty level must be specifically "Hard".`,
		"Do not repeat or rephrase",
		"- Who built Hadrian's Wall?",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestGenerate_MixedLetsModelChoose(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuestionJSON()})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), GenerateInput{Topic: "X", Difficulty: DifficultyMixed}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "The difficulty can be random (Easy, Medium, or Hard).") {
		t.Errorf("expected mixed difficulty instruction, got:\n%s", msg)
	}
	if strings.Contains(msg, "previously asked") {
		t.Error("expected no history block for empty history")
	}
}

func TestGenerate_TruncatesHistoryToWindow(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuestionJSON()})
	gen := New(mock, DefaultConfig())

	var history []string
	for i := range 30 {
		history = append(history, "question "+string(rune('A'+i)))
	}
	if _, err := gen.Generate(context.Background(), GenerateInput{Topic: "X", RecentHistory: history}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := mock.Calls[0].Messages[0].Content
	if got := strings.Count(msg, "\n- "); got != 20 {
		t.Fatalf("expected 20 history lines, got %d", got)
	}
	if strings.Contains(msg, "question A\n") {
		t.Error("oldest entries should be dropped")
	}
}

func TestGenerate_FailureKinds(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		want FailureKind
	}{
		{
			name: "transport",
			resp: llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("dial tcp")}},
			want: FailureTransport,
		},
		{
			name: "missing credentials",
			resp: llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: llm.ErrMissingCredentials}},
			want: FailureTransport,
		},
		{
			name: "schema rejection",
			resp: llm.MockResponse{Err: &llm.ErrInvalidResponse{Err: errors.New("minItems")}},
			want: FailureMalformed,
		},
		{
			name: "empty from backend",
			resp: llm.MockResponse{Err: &llm.ErrEmptyResponse{}},
			want: FailureEmpty,
		},
		{
			name: "blank content",
			resp: llm.MockResponse{Content: json.RawMessage("  ")},
			want: FailureEmpty,
		},
		{
			name: "not json",
			resp: llm.MockResponse{Content: json.RawMessage(`{oops`)},
			want: FailureMalformed,
		},
		{
			name: "three options",
			resp: llm.MockResponse{Content: json.RawMessage(`{"question":"Q","options":["a","b","c"],"correctAnswerIndex":0,"explanation":"e","hint":"h","difficulty":"Easy"}`)},
			want: FailureMalformed,
		},
		{
			name: "index out of range",
			resp: llm.MockResponse{Content: json.RawMessage(`{"question":"Q","options":["a","b","c","d"],"correctAnswerIndex":4,"explanation":"e","hint":"h","difficulty":"Easy"}`)},
			want: FailureMalformed,
		},
		{
			name: "missing correctAnswerIndex",
			resp: llm.MockResponse{Content: json.RawMessage(`{"question":"Q?","options":["a","b","c","d"],"explanation":"e","hint":"h","difficulty":"Easy"}`)},
			want: FailureMalformed,
		},
		{
			name: "missing hint",
			resp: llm.MockResponse{Content: json.RawMessage(`{"question":"Q","options":["a","b","c","d"],"correctAnswerIndex":0,"explanation":"e","difficulty":"Easy"}`)},
			want: FailureMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := New(llm.NewMockProvider(tt.resp), DefaultConfig())
			q, err := gen.Generate(context.Background(), GenerateInput{Topic: "X"})
			if q != nil {
				t.Fatalf("expected nil question, got %+v", q)
			}
			if !errors.Is(err, ErrGenerationFailed) {
				t.Fatalf("expected ErrGenerationFailed, got %v", err)
			}
			var gerr *GenerationError
			if !errors.As(err, &gerr) {
				t.Fatalf("expected *GenerationError, got %T", err)
			}
			if gerr.Kind != tt.want {
				t.Errorf("kind = %s, want %s", gerr.Kind, tt.want)
			}
		})
	}
}

func TestGenerate_ExactRepeatRejected(t *testing.T) {
	gen := New(llm.NewMockProvider(llm.MockResponse{Content: validQuestionJSON()}), DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Topic:         "Roman Empire",
		RecentHistory: []string{"who was the first  emperor of Rome?"},
	})
	var gerr *GenerationError
	if !errors.As(err, &gerr) || gerr.Kind != FailureMalformed {
		t.Fatalf("expected malformed failure for repeat, got %v", err)
	}
}

func TestGenerate_EmptyTopic(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Topic: "  "})
	if !errors.Is(err, ErrEmptyTopic) {
		t.Fatalf("expected ErrEmptyTopic, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatal("provider should not be called without a topic")
	}
}

func TestGenerate_StructureCheckedWithoutValidators(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing correctAnswerIndex", `{"question":"Q?","options":["a","b","c","d"],"explanation":"e","hint":"h","difficulty":"Easy"}`},
		{"null correctAnswerIndex", `{"question":"Q?","options":["a","b","c","d"],"correctAnswerIndex":null,"explanation":"e","hint":"h","difficulty":"Easy"}`},
		{"empty question", `{"question":"","options":[],"correctAnswerIndex":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Validators = nil
			gen := New(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)}), cfg)

			q, err := gen.Generate(context.Background(), GenerateInput{Topic: "X"})
			if q != nil {
				t.Fatalf("expected nil question, got %+v", q)
			}
			var gerr *GenerationError
			if !errors.As(err, &gerr) || gerr.Kind != FailureMalformed {
				t.Fatalf("expected malformed failure, got %v", err)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{" Medium ", DifficultyMedium, false},
		{"HARD", DifficultyHard, false},
		{"mixed", DifficultyMixed, false},
		{"extreme", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if !tt.wantErr && !got.Valid() {
			t.Errorf("%q should be valid", got)
		}
	}
}
