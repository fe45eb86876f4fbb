package llm

import "context"

// UnconfiguredProvider stands in when no credentials are available.
// Every call fails as an unreachable backend so the application keeps
// running and shows the usual error state.
type UnconfiguredProvider struct {
	Reason error
}

// Unconfigured returns a provider that fails every request with reason.
func Unconfigured(reason error) *UnconfiguredProvider {
	if reason == nil {
		reason = ErrMissingCredentials
	}
	return &UnconfiguredProvider{Reason: reason}
}

func (p *UnconfiguredProvider) Generate(_ context.Context, _ Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: p.Reason}
}

func (p *UnconfiguredProvider) ModelID() string {
	return "unconfigured"
}
