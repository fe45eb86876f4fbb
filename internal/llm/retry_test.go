package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okPayload = json.RawMessage(`{"question":"ok"}`)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

func outage() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection reset")}}
}

func okResp() MockResponse {
	return MockResponse{Content: okPayload}
}

func TestRetryProvider_Attempts(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		queue     []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{"first attempt succeeds", 3, []MockResponse{okResp()}, 1, false},
		{"outage then success", 3, []MockResponse{outage(), okResp()}, 2, false},
		{"outage every time", 3, []MockResponse{outage(), outage(), outage()}, 3, true},
		{"default config is one shot", DefaultConfig().Retry.MaxAttempts, []MockResponse{outage(), okResp()}, 1, true},
		{"zero attempts still calls once", 0, []MockResponse{okResp()}, 1, false},
		{
			"rate limit waits then succeeds", 3,
			[]MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}, okResp()},
			2, false,
		},
		{
			"truncated output is final", 3,
			[]MockResponse{{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"question":`)}}, okResp()},
			1, true,
		},
		{
			"missing key is final", 3,
			[]MockResponse{{Err: ErrMissingCredentials}, okResp()},
			1, true,
		},
		{
			"malformed payload gets one more try", 3,
			[]MockResponse{{Err: &ErrInvalidResponse{Err: errors.New("missing hint")}}, okResp()},
			2, false,
		},
		{
			"malformed twice gives up", 5,
			[]MockResponse{
				{Err: &ErrInvalidResponse{Err: errors.New("missing hint")}},
				{Err: &ErrInvalidResponse{Err: errors.New("missing hint")}},
				okResp(),
			},
			2, true,
		},
		{
			"empty then malformed share the budget", 5,
			[]MockResponse{
				{Err: &ErrEmptyResponse{Reason: "no candidates"}},
				{Err: &ErrInvalidResponse{Err: errors.New("options must have 4 items")}},
				okResp(),
			},
			2, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.queue...)
			resp, err := WithRetry(mock, fastRetry(tt.attempts)).Generate(context.Background(), Request{})

			assert.Equal(t, tt.wantCalls, mock.CallCount())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, string(okPayload), string(resp.Content))
		})
	}
}

func TestRetryProvider_ReturnsLastError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrEmptyResponse{Reason: "blocked"}},
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad index")}},
	)

	_, err := WithRetry(mock, fastRetry(3)).Generate(context.Background(), Request{})

	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
}

func TestRetryProvider_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	t.Run("before the first attempt", func(t *testing.T) {
		mock := NewMockProvider(okResp())
		_, err := WithRetry(mock, fastRetry(3)).Generate(ctx, Request{})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, mock.CallCount())
	})

	t.Run("after a failed attempt", func(t *testing.T) {
		cctx, ccancel := context.WithCancel(context.Background())
		inner := &cancelAfterCall{cancel: ccancel}

		_, err := WithRetry(inner, fastRetry(3)).Generate(cctx, Request{})

		var unavailable *ErrProviderUnavailable
		assert.ErrorAs(t, err, &unavailable)
		assert.Equal(t, 1, inner.calls)
	})
}

// cancelAfterCall fails and cancels the caller's context on every call.
type cancelAfterCall struct {
	cancel context.CancelFunc
	calls  int
}

func (c *cancelAfterCall) Generate(context.Context, Request) (*Response, error) {
	c.calls++
	c.cancel()
	return nil, &ErrProviderUnavailable{Err: errors.New("reset")}
}

func (c *cancelAfterCall) ModelID() string { return "cancel-after-call" }

func TestRetryProvider_ModelID(t *testing.T) {
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), fastRetry(2)).ModelID())
}

func TestRetryProvider_BackoffCapsRetryAfter(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     2 * time.Second,
		Multiplier:  2,
	}}

	assert.Equal(t, 2*time.Second, r.backoff(0, &ErrRateLimit{RetryAfter: time.Minute}))
	assert.Equal(t, 500*time.Millisecond, r.backoff(0, &ErrRateLimit{RetryAfter: 500 * time.Millisecond}))

	for attempt := range 4 {
		wait := r.backoff(attempt, errors.New("reset"))
		assert.LessOrEqual(t, wait, 2400*time.Millisecond, "attempt %d", attempt)
		assert.Positive(t, wait, "attempt %d", attempt)
	}
}
