package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ask(text string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: text}}}
}

func TestMockProvider_ServesQueueInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"question":"first"}`), Usage: Usage{InputTokens: 12, OutputTokens: 40, TotalTokens: 52}},
	)
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{"question":"second"}`)})

	first, err := mock.Generate(context.Background(), ask("one"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"question":"first"}`, string(first.Content))
	assert.Equal(t, 52, first.Usage.TotalTokens)
	assert.Equal(t, "end", first.StopReason)
	assert.Equal(t, "mock", first.Model)

	second, err := mock.Generate(context.Background(), ask("two"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"question":"second"}`, string(second.Content))

	_, err = mock.Generate(context.Background(), ask("three"))
	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable, "drained queue without fallback")

	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "two", mock.Calls[1].Messages[0].Content)
}

func TestMockProvider_QueuedError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), Request{})

	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestMockProvider_FallbackAfterQueue(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"q":1}`)})
	mock.Fallback = func(req Request) MockResponse {
		return MockResponse{Content: json.RawMessage(`{"fallback":"` + req.System + `"}`)}
	}

	resp, err := mock.Generate(context.Background(), Request{System: "a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"q":1}`, string(resp.Content))

	resp, err = mock.Generate(context.Background(), Request{System: "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"fallback":"b"}`, string(resp.Content))

	last, ok := mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, "b", last.System)
}

func TestMockProvider_CancelledContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Generate(ctx, Request{})

	assert.ErrorIs(t, err, context.Canceled)
	_, recorded := mock.LastCall()
	assert.False(t, recorded, "cancelled call should not be recorded")
}
