package adapters

import (
	"context"
	"testing"

	"marketsync-agent/internal/features/marketplaces/domain"
	"marketsync-agent/internal/features/marketplaces/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistry_KnownProviders verifies every enum value resolves to an
// adapter reporting the right provider.
func TestRegistry_KnownProviders(t *testing.T) {
	registry := NewRegistry()

	for _, provider := range domain.AllProviders {
		adapter := registry.Get(provider)
		require.NotNil(t, adapter, "registry must be total over the provider enum")
		assert.Equal(t, provider, adapter.Provider())
	}
}

// TestRegistry_Capabilities verifies which adapters expose listing
// capabilities.
func TestRegistry_Capabilities(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		provider     domain.Provider
		listProducts bool
		listOrders   bool
	}{
		{domain.ProviderWooCommerce, true, true},
		{domain.ProviderTrendyol, true, true},
		{domain.ProviderHepsiburada, false, false},
		{domain.ProviderN11, false, false},
		{domain.ProviderPazarama, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.provider.String(), func(t *testing.T) {
			adapter := registry.Get(tt.provider)

			_, hasProducts := adapter.(ports.ProductLister)
			_, hasOrders := adapter.(ports.OrderLister)
			assert.Equal(t, tt.listProducts, hasProducts)
			assert.Equal(t, tt.listOrders, hasOrders)
		})
	}
}

// TestRegistry_StubTestConnection verifies stubs report the missing
// integration without erroring.
func TestRegistry_StubTestConnection(t *testing.T) {
	registry := NewRegistry()

	result := registry.Get(domain.ProviderHepsiburada).TestConnection(context.Background(), domain.Credentials{})

	assert.False(t, result.OK)
	assert.Equal(t, "hepsiburada not yet implemented", result.Message)
}

// TestRegistry_UnknownProvider verifies an unexpected identifier still gets a
// stub rather than nil.
func TestRegistry_UnknownProvider(t *testing.T) {
	registry := NewRegistry()

	adapter := registry.Get(domain.Provider("etsy"))
	require.NotNil(t, adapter)

	result := adapter.TestConnection(context.Background(), domain.Credentials{})
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "etsy")
}
