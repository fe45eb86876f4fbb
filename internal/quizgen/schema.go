package quizgen

import "github.com/abhisek/quizmaster/internal/llm"

// QuestionSchema defines the JSON schema for question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single multiple-choice quiz question with explanation and hint",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The text of the question",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    4,
				"maxItems":    4,
				"description": "An array of exactly 4 possible answers",
			},
			"correctAnswerIndex": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "The zero-based index of the correct option (0, 1, 2, or 3)",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A short explanation of the correct answer",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "A subtle hint that points towards the right answer without giving it away",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"description": "The difficulty level: Easy, Medium, or Hard",
			},
		},
		"required":             []any{"question", "options", "correctAnswerIndex", "explanation", "hint", "difficulty"},
		"additionalProperties": false,
	},
}

// TopicsSchema wraps the suggestion list in an object because strict
// structured-output modes require an object at the root.
var TopicsSchema = &llm.Schema{
	Name:        "quiz-topics",
	Description: "A short list of suggested quiz topics",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"label": map[string]any{
							"type":        "string",
							"description": "Topic name, at most 3 words",
						},
						"category": map[string]any{
							"type":        "string",
							"description": "One of Science, History, Technology, Entertainment, Sports, Geography, Arts, Literature",
						},
					},
					"required":             []any{"label", "category"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"topics"},
		"additionalProperties": false,
	},
}
