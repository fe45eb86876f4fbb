package session

import (
	"context"

	"github.com/abhisek/quizmaster/internal/llm"
	"github.com/abhisek/quizmaster/internal/quizgen"
)

// Fetch runs req against gen and tags the outcome with the issuing
// generation. It blocks for the duration of the provider call.
func Fetch(ctx context.Context, gen quizgen.Generator, req *FetchRequest) FetchResult {
	ctx = llm.WithSession(ctx, req.SessionID)
	q, err := gen.Generate(ctx, req.Input)
	return FetchResult{Generation: req.Generation, Question: q, Err: err}
}
