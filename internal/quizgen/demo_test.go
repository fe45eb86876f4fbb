package quizgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizmaster/internal/llm"
)

func TestDemoResponder_PlaysThroughBank(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Fallback = NewDemoResponder()
	gen := New(mock, DefaultConfig())

	var history []string
	for range len(demoBank) + 2 {
		q, err := gen.Generate(context.Background(), GenerateInput{
			Topic:         "Anything",
			Difficulty:    DifficultyMixed,
			RecentHistory: history,
		})
		require.NoError(t, err)
		assert.NotContains(t, history, q.Text)
		history = append(history, q.Text)
	}
	assert.Contains(t, history[len(demoBank)], "(round 2)")
}

func TestDemoResponder_Topics(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Fallback = NewDemoResponder()
	gen := New(mock, DefaultConfig())

	assert.Equal(t, FallbackTopics(), gen.SuggestTopics(context.Background()))
}
