package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"marketsync-agent/internal/core/cache"
	mpdomain "marketsync-agent/internal/features/marketplaces/domain"
	"marketsync-agent/internal/features/sync/domain"
)

// CacheStatusStore keeps the last sync outcome per provider in the shared
// cache. Only bookkeeping lands here; credentials never do.
type CacheStatusStore struct {
	cache cache.Cache
}

// NewStatusStore creates a status store over the given cache.
func NewStatusStore(c cache.Cache) *CacheStatusStore {
	return &CacheStatusStore{cache: c}
}

func statusKey(provider string) string {
	return "marketsync:status:" + provider
}

// Save records the outcome, overwriting the previous one. No TTL: the last
// outcome stays visible until the next run.
func (s *CacheStatusStore) Save(ctx context.Context, status domain.SyncStatus) error {
	b, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to encode sync status: %w", err)
	}
	if err := s.cache.Set(ctx, statusKey(status.Provider), b, 0); err != nil {
		return fmt.Errorf("failed to store sync status: %w", err)
	}
	return nil
}

// Get returns the last recorded outcome for a provider.
func (s *CacheStatusStore) Get(ctx context.Context, provider mpdomain.Provider) (*domain.SyncStatus, error) {
	b, err := s.cache.Get(ctx, statusKey(provider.String()))
	if err != nil {
		return nil, fmt.Errorf("no sync status for %s: %w", provider, err)
	}
	var status domain.SyncStatus
	if err := json.Unmarshal(b, &status); err != nil {
		return nil, fmt.Errorf("failed to decode sync status: %w", err)
	}
	return &status, nil
}
