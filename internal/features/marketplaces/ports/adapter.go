package ports

import (
	"context"

	"marketsync-agent/internal/features/marketplaces/domain"
)

// Adapter is the uniform contract every marketplace provider implements.
// This is a Secondary Port (Driven Port).
type Adapter interface {
	// Provider identifies which marketplace this adapter talks to.
	Provider() domain.Provider

	// TestConnection probes the provider with the given credentials. It never
	// returns an error: protocol failures are converted into a negative
	// TestResult, because this is a user-facing "check my settings" call.
	TestConnection(ctx context.Context, creds domain.Credentials) domain.TestResult
}

// ProductLister is the optional catalog capability. Adapters without catalog
// sync simply do not implement it; callers discover support via type assertion.
type ProductLister interface {
	// ListProducts fetches the provider's full catalog, already normalized.
	ListProducts(ctx context.Context, creds domain.Credentials) ([]domain.ProductUpsert, error)
}

// OrderLister is the optional order capability.
type OrderLister interface {
	// ListOrders fetches the provider's recent orders, already normalized.
	ListOrders(ctx context.Context, creds domain.Credentials) ([]domain.OrderUpsert, error)
}

// Registry resolves an Adapter for every known provider. Implementations must
// be total over the Provider enum: providers without a protocol client yield
// an explicit stub, never a nil adapter.
type Registry interface {
	Get(provider domain.Provider) Adapter
}
