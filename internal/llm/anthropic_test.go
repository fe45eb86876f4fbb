package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anthropicStub answers every Messages call with status and body, copying
// headers into the reply, and records the decoded request.
func anthropicStub(t *testing.T, status int, headers map[string]string, body any) (*AnthropicProvider, map[string]any) {
	t.Helper()
	sent := map[string]any{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		w.Header().Set("Content-Type", "application/json")
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}, sent
}

func anthropicMessage(stop string, texts ...string) map[string]any {
	blocks := make([]map[string]any, len(texts))
	for i, text := range texts {
		blocks[i] = map[string]any{"type": "text", "text": text}
	}
	return map[string]any{
		"id":          "msg_01",
		"type":        "message",
		"role":        "assistant",
		"content":     blocks,
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(typ string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": typ, "message": "nope"}}
}

func TestAnthropicProvider_StructuredQuestion(t *testing.T) {
	question := `{"question":"Which planet is largest?","options":["Mars","Jupiter","Venus","Earth"],"correctAnswerIndex":1}`
	p, sent := anthropicStub(t, http.StatusOK, nil, anthropicMessage("end_turn", question))

	resp, err := p.Generate(context.Background(), Request{
		System:   "You are a quiz master.",
		Messages: []Message{{Role: RoleUser, Content: "Topic: Astronomy"}},
		Schema:   testSchema(),
	})
	require.NoError(t, err)

	assert.JSONEq(t, question, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)

	assert.EqualValues(t, anthropicDefaultMaxTokens, sent["max_tokens"])
	assert.Contains(t, sent, "system")
	assert.Contains(t, sent, "output_config")
	assert.NotContains(t, sent, "temperature")
}

func TestAnthropicProvider_JoinsTextBlocks(t *testing.T) {
	p, _ := anthropicStub(t, http.StatusOK, nil, anthropicMessage("end_turn", `{"label":`, `"Volcanoes"}`))

	resp, err := p.Generate(context.Background(), ask("suggest"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"Volcanoes"}`, string(resp.Content))
}

func TestAnthropicProvider_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		headers  map[string]string
		body     any
		wantKind string
		check    func(t *testing.T, err error)
	}{
		{
			name: "rate limited with retry-after", status: http.StatusTooManyRequests,
			headers: map[string]string{"Retry-After": "7"}, body: anthropicError("rate_limit_error"),
			wantKind: "transport",
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				require.ErrorAs(t, err, &rl)
				assert.Equal(t, 7*time.Second, rl.RetryAfter)
			},
		},
		{
			name: "overloaded", status: http.StatusInternalServerError, body: anthropicError("api_error"),
			wantKind: "transport",
			check: func(t *testing.T, err error) {
				var unavailable *ErrProviderUnavailable
				assert.ErrorAs(t, err, &unavailable)
			},
		},
		{
			name: "whitespace only", status: http.StatusOK, body: anthropicMessage("end_turn", "  "),
			wantKind: "empty",
		},
		{
			name: "refusal", status: http.StatusOK, body: anthropicMessage("refusal"),
			wantKind: "empty",
			check: func(t *testing.T, err error) {
				var empty *ErrEmptyResponse
				require.ErrorAs(t, err, &empty)
				assert.Equal(t, "model refused the request", empty.Reason)
			},
		},
		{
			name: "truncated", status: http.StatusOK, body: anthropicMessage("max_tokens", `{"question":"Which`),
			wantKind: "malformed",
			check: func(t *testing.T, err error) {
				var maxTok *ErrMaxTokensExceeded
				require.ErrorAs(t, err, &maxTok)
				assert.Equal(t, `{"question":"Which`, string(maxTok.Content))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := anthropicStub(t, tt.status, tt.headers, tt.body)

			_, err := p.Generate(context.Background(), ask("Topic: Rivers"))

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, ErrorKind(err))
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicModels), "unknown names pass through")
}

func TestParseRetryAfter(t *testing.T) {
	for in, want := range map[string]time.Duration{
		"":                              0,
		"3":                             3 * time.Second,
		" 10 ":                          10 * time.Second,
		"-1":                            0,
		"Wed, 21 Oct 2015 07:28:00 GMT": 0,
	} {
		assert.Equal(t, want, parseRetryAfter(in), "parseRetryAfter(%q)", in)
	}
}
