package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-3-flash", "gemini-3-flash-preview"},
		{"gemini-3-flash-preview", "gemini-3-flash-preview"},
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"age":   map[string]any{"type": "integer"},
			"level": map[string]any{"type": "string", "enum": []any{"Easy", "Medium", "Hard"}},
			"scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"name", "age"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["name"].Type != "STRING" {
		t.Fatalf("expected STRING for name, got %s", schema.Properties["name"].Type)
	}
	if schema.Properties["age"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for age, got %s", schema.Properties["age"].Type)
	}
	if len(schema.Properties["level"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["level"].Enum))
	}
	if schema.Properties["scores"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for scores, got %s", schema.Properties["scores"].Type)
	}
	if schema.Properties["scores"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for scores items, got %s", schema.Properties["scores"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_Bounds(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": 4,
			},
			"correctAnswerIndex": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 3.0,
			},
		},
		"additionalProperties": false,
	}

	schema := buildGeminiSchema(def)

	opts := schema.Properties["options"]
	if opts.MinItems == nil || *opts.MinItems != 4 {
		t.Fatalf("expected minItems 4, got %v", opts.MinItems)
	}
	if opts.MaxItems == nil || *opts.MaxItems != 4 {
		t.Fatalf("expected maxItems 4, got %v", opts.MaxItems)
	}
	idx := schema.Properties["correctAnswerIndex"]
	if idx.Minimum == nil || *idx.Minimum != 0 {
		t.Fatalf("expected minimum 0, got %v", idx.Minimum)
	}
	if idx.Maximum == nil || *idx.Maximum != 3 {
		t.Fatalf("expected maximum 3, got %v", idx.Maximum)
	}
}

func TestBuildGeminiSchema_PropertyOrder(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint":               map[string]any{"type": "string"},
			"question":           map[string]any{"type": "string"},
			"correctAnswerIndex": map[string]any{"type": "integer"},
			"extra":              map[string]any{"type": "string"},
		},
		"required": []any{"question", "correctAnswerIndex", "hint"},
	})

	want := []string{"question", "correctAnswerIndex", "hint", "extra"}
	if len(schema.PropertyOrdering) != len(want) {
		t.Fatalf("ordering = %v, want %v", schema.PropertyOrdering, want)
	}
	for i, name := range want {
		if schema.PropertyOrdering[i] != name {
			t.Fatalf("ordering = %v, want %v", schema.PropertyOrdering, want)
		}
	}
	if schema.Properties["question"].PropertyOrdering != nil {
		t.Fatal("scalar properties should have no ordering")
	}
}

func TestBuildGeminiConfig(t *testing.T) {
	cfg := buildGeminiConfig(Request{
		System:      "You are a quiz master.",
		MaxTokens:   512,
		Temperature: 0.7,
		Schema:      &Schema{Name: "q", Definition: map[string]any{"type": "object"}},
	})
	if cfg.MaxOutputTokens != 512 {
		t.Errorf("max tokens = %d", cfg.MaxOutputTokens)
	}
	if cfg.Temperature == nil || *cfg.Temperature != float32(0.7) {
		t.Errorf("temperature = %v", cfg.Temperature)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "You are a quiz master." {
		t.Errorf("system instruction not set: %+v", cfg.SystemInstruction)
	}
	if cfg.ResponseMIMEType != "application/json" || cfg.ResponseSchema == nil {
		t.Errorf("structured output not requested")
	}

	plain := buildGeminiConfig(Request{})
	if plain.Temperature != nil || plain.SystemInstruction != nil || plain.ResponseSchema != nil {
		t.Errorf("expected bare config, got %+v", plain)
	}
}

func TestMapGeminiStopReason(t *testing.T) {
	tests := []struct {
		reason genai.FinishReason
		want   string
	}{
		{genai.FinishReasonStop, "end"},
		{genai.FinishReasonMaxTokens, "max_tokens"},
		{genai.FinishReasonSafety, "error"},
		{genai.FinishReasonProhibitedContent, "error"},
	}
	for _, tt := range tests {
		result := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: tt.reason}},
		}
		if got := mapGeminiStopReason(result); got != tt.want {
			t.Errorf("mapGeminiStopReason(%s) = %q, want %q", tt.reason, got, tt.want)
		}
	}
	if got := mapGeminiStopReason(&genai.GenerateContentResponse{}); got != "end" {
		t.Errorf("no candidates = %q, want end", got)
	}
}
