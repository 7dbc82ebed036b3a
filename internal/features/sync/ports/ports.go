package ports

import (
	"context"
	"encoding/json"

	mpdomain "marketsync-agent/internal/features/marketplaces/domain"
	"marketsync-agent/internal/features/sync/domain"
)

// PanelClient is the secondary port for the central panel: credential
// resolution on one side, batch ingestion on the other.
type PanelClient interface {
	// FetchConfig retrieves the provider's connection config. It returns both
	// the raw config (for the orchestrator's internal use) and the masked
	// safe view (for display).
	FetchConfig(ctx context.Context, provider mpdomain.Provider) (*domain.PanelConfig, *domain.SafeConfig, error)

	// Ingest posts a normalized batch and returns the panel's acknowledgement
	// untouched.
	Ingest(ctx context.Context, provider mpdomain.Provider, batch domain.IngestBatch) (json.RawMessage, error)
}

// StatusStore is the secondary port for last-sync bookkeeping.
type StatusStore interface {
	Save(ctx context.Context, status domain.SyncStatus) error
	Get(ctx context.Context, provider mpdomain.Provider) (*domain.SyncStatus, error)
}
