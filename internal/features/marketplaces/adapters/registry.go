package adapters

import (
	"marketsync-agent/internal/features/marketplaces/domain"
	"marketsync-agent/internal/features/marketplaces/ports"
)

// AdapterRegistry maps every provider to its concrete adapter. Each known
// enum value is listed explicitly: adding a provider constant without
// deciding its adapter here is a review-time error, not a runtime nil.
type AdapterRegistry struct{}

// NewRegistry creates the adapter registry.
func NewRegistry() *AdapterRegistry {
	return &AdapterRegistry{}
}

// Get resolves the adapter for a provider. Providers without a protocol
// client get an explicit stub, as does any identifier that slipped past
// ParseProvider, so the registry never returns nil.
func (r *AdapterRegistry) Get(provider domain.Provider) ports.Adapter {
	switch provider {
	case domain.ProviderWooCommerce:
		return NewWooCommerceAdapter()
	case domain.ProviderTrendyol:
		return NewTrendyolAdapter()
	case domain.ProviderHepsiburada:
		return NewStubAdapter(provider)
	case domain.ProviderN11:
		return NewStubAdapter(provider)
	case domain.ProviderPazarama:
		return NewStubAdapter(provider)
	default:
		return NewStubAdapter(provider)
	}
}

var _ ports.Registry = (*AdapterRegistry)(nil)
