package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizmaster/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	topics   *TopicCache
}

var _ Generator = (*LLMGenerator)(nil)

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{
		provider: provider,
		config:   cfg,
		topics:   NewTopicCache(cfg.TopicTTL),
	}
}

// structural runs on every question regardless of Config.Validators.
var structural = &StructuralValidator{}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
	Hint               string   `json:"hint"`
	Difficulty         string   `json:"difficulty"`
}

type topicsOutput struct {
	Topics []Topic `json:"topics"`
}

// Generate produces a single question for the given input.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return nil, ErrEmptyTopic
	}
	input.RecentHistory = RecentWindow(input.RecentHistory, g.config.MaxRecentHistory)

	ctx = llm.WithPurpose(ctx, PurposeQuestion)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, newGenerationError(err)
	}
	if len(bytes.TrimSpace(resp.Content)) == 0 {
		return nil, newGenerationError(&llm.ErrEmptyResponse{Reason: "no content"})
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, newGenerationError(fmt.Errorf("parse LLM response: %w", err))
	}

	if raw.CorrectAnswerIndex == nil {
		return nil, newGenerationError(&ValidationError{
			Validator: structural.Name(),
			Message:   "correctAnswerIndex is missing",
			Retryable: true,
		})
	}

	q := &Question{
		Text:         raw.Question,
		Options:      append([]string(nil), raw.Options...),
		CorrectIndex: *raw.CorrectAnswerIndex,
		Explanation:  raw.Explanation,
		Hint:         raw.Hint,
		Difficulty:   raw.Difficulty,
	}

	if verr := structural.Validate(q, input); verr != nil {
		return nil, newGenerationError(verr)
	}
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, newGenerationError(verr)
		}
	}

	return q, nil
}

// SuggestTopics asks the model for trending topics. Any failure yields an
// empty, non-nil slice.
func (g *LLMGenerator) SuggestTopics(ctx context.Context) []Topic {
	key := g.provider.ModelID()
	if cached, ok := g.topics.Get(key); ok {
		return cached
	}

	ctx = llm.WithPurpose(ctx, PurposeTopics)

	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildTopicsMessage(g.config.SuggestionCount)},
		},
		Schema:      TopicsSchema,
		MaxTokens:   512,
		Temperature: 1.0,
	})
	if err != nil {
		return []Topic{}
	}

	var raw topicsOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return []Topic{}
	}

	topics := normalizeTopics(raw.Topics, g.config.SuggestionCount)
	if len(topics) > 0 {
		g.topics.Add(key, topics)
	}
	return topics
}
