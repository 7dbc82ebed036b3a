package adapters

import (
	"context"
	"fmt"

	"marketsync-agent/internal/features/marketplaces/domain"
)

// StubAdapter stands in for providers without a protocol client. It keeps the
// registry total over the Provider enum: connection tests report the missing
// integration and no listing capability is exposed.
type StubAdapter struct {
	provider domain.Provider
}

// NewStubAdapter creates a stub for the given provider.
func NewStubAdapter(provider domain.Provider) *StubAdapter {
	return &StubAdapter{provider: provider}
}

// Provider identifies the provider this stub stands in for.
func (a *StubAdapter) Provider() domain.Provider {
	return a.provider
}

// TestConnection always reports the integration as not implemented.
func (a *StubAdapter) TestConnection(_ context.Context, _ domain.Credentials) domain.TestResult {
	return domain.TestResult{
		OK:      false,
		Message: fmt.Sprintf("%s not yet implemented", a.provider),
	}
}
