package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/quizmaster/internal/store"
)

// LoggingProvider records every request that reaches the backend as an
// LLM request event, tagged with the purpose and quiz session from ctx.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	provider  string
}

// WithLogging wraps a Provider with event logging. A nil repo disables
// logging and returns p unchanged.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	if repo == nil {
		return p
	}
	return &LoggingProvider{inner: p, eventRepo: repo, provider: providerName(p)}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		SessionID:   SessionFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: formatRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = fmt.Sprintf("[%s] %v", ErrorKind(err), err)
		if body := failedPayload(err); body != "" {
			data.ResponseBody = body
		}
	}

	// Timed-out calls are logged too.
	if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// ErrorKind names the failure class of err for logs: "transport" for
// network, rate-limit and outage errors, "malformed" for payloads that fail
// schema validation or were truncated, "empty" for blank payloads, and
// "canceled" or "unconfigured" for the remaining cases.
func ErrorKind(err error) string {
	var (
		inv    *ErrInvalidResponse
		maxTok *ErrMaxTokensExceeded
		empty  *ErrEmptyResponse
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrMissingCredentials):
		return "unconfigured"
	case errors.As(err, &inv), errors.As(err, &maxTok):
		return "malformed"
	case errors.As(err, &empty):
		return "empty"
	default:
		return "transport"
	}
}

// failedPayload returns the rejected model output carried by err, if any.
func failedPayload(err error) string {
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		return string(inv.Content)
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return string(maxTok.Content)
	}
	return ""
}

func providerName(p Provider) string {
	switch p.(type) {
	case *GeminiProvider:
		return "gemini"
	case *AnthropicProvider:
		return "anthropic"
	case *OpenRouterProvider:
		return "openrouter"
	case *OpenAIProvider:
		return "openai"
	case *MockProvider:
		return "mock"
	default:
		return p.ModelID()
	}
}

// formatRequest renders a request the way `quizmaster llm view` shows it.
func formatRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	if req.MaxTokens > 0 || req.Temperature > 0 {
		fmt.Fprintf(&b, "[params] max_tokens=%d temperature=%.2f\n", req.MaxTokens, req.Temperature)
	}

	return b.String()
}
