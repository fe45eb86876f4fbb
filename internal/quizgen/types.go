package quizgen

import (
	"fmt"
	"strings"
)

// Difficulty is the user's constraint on question difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"

	// DifficultyMixed lets the model pick Easy, Medium or Hard per question.
	DifficultyMixed Difficulty = "Mixed"
)

// Difficulties lists the selector values in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMixed}

// Valid reports whether d is one of the known selector values.
func (d Difficulty) Valid() bool {
	for _, v := range Difficulties {
		if d == v {
			return true
		}
	}
	return false
}

// ParseDifficulty matches s case-insensitively against the selector values.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	for _, v := range Difficulties {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want Easy, Medium, Hard or Mixed)", s)
}

// Question is a validated multiple-choice question. Treat it as immutable.
type Question struct {
	// Text is the prompt shown to the player. May contain $...$ or $$...$$
	// math markup.
	Text string

	// Options holds exactly 4 answer choices.
	Options []string

	// CorrectIndex identifies the correct entry in Options, 0-3.
	CorrectIndex int

	// Explanation is shown after the player answers.
	Explanation string

	// Hint can be revealed before answering.
	Hint string

	// Difficulty is the model's label, usually Easy, Medium or Hard.
	// Only presence is checked.
	Difficulty string
}

// IsCorrect reports whether choosing option i answers q correctly.
func (q *Question) IsCorrect(i int) bool {
	return i == q.CorrectIndex
}

// GenerateInput holds all context needed to generate a question.
type GenerateInput struct {
	// Topic is the free-form subject, e.g. "Roman Empire". Must be non-empty.
	Topic string

	// Difficulty forces a level unless it is DifficultyMixed.
	Difficulty Difficulty

	// RecentHistory holds the texts of recently asked questions, oldest
	// first. Callers pass at most Config.MaxRecentHistory entries.
	RecentHistory []string
}

// Topic is a suggested quiz subject.
type Topic struct {
	Label    string `json:"label"`
	Category string `json:"category"`
}
