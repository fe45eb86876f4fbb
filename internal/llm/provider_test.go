package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContextTags(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Empty(t, SessionFrom(ctx))

	ctx = WithSession(WithPurpose(ctx, "question-gen"), "6f1c2d3e")
	assert.Equal(t, "question-gen", PurposeFrom(ctx))
	assert.Equal(t, "6f1c2d3e", SessionFrom(ctx))
}

func TestUnconfiguredProvider(t *testing.T) {
	_, err := Unconfigured(nil).Generate(context.Background(), ask("capital of Peru?"))

	var unavailable *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Equal(t, "unconfigured", ErrorKind(err))
}

// blockingProvider never answers on its own.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 5*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})

	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "blocking", p.ModelID())
	assert.Equal(t, Provider(blockingProvider{}), WithTimeout(blockingProvider{}, 0), "zero timeout is a no-op")
}

func TestWithLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider()
	assert.Same(t, mock, WithLogging(mock, nil))
}
