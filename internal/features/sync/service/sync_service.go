package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"marketsync-agent/internal/core/logger"
	mpdomain "marketsync-agent/internal/features/marketplaces/domain"
	mpports "marketsync-agent/internal/features/marketplaces/ports"
	"marketsync-agent/internal/features/sync/domain"
	"marketsync-agent/internal/features/sync/ports"

	"go.uber.org/zap"
)

// AgentVersion is reported to the panel with every ingest batch.
const AgentVersion = "0.1.0"

var (
	// ErrCredentialsIncomplete is returned when a required credential field is
	// missing. Detected before any provider call is attempted.
	ErrCredentialsIncomplete = errors.New("credentials incomplete")
	// ErrSyncNotSupported is returned for providers whose adapter has no
	// product or order listing capability yet.
	ErrSyncNotSupported = errors.New("provider sync not implemented yet")
	// ErrStatusUnavailable is returned when no status store is configured.
	ErrStatusUnavailable = errors.New("sync status store is not configured")
)

// SyncService orchestrates one full pull-based sync: resolve credentials,
// fetch provider data, push the normalized batch to the panel. Every run owns
// its own transient credential copy; nothing is cached across invocations.
type SyncService struct {
	panel    ports.PanelClient
	registry mpports.Registry
	// status is optional; nil disables last-sync bookkeeping.
	status ports.StatusStore
}

// NewSyncService creates a new SyncService.
func NewSyncService(panel ports.PanelClient, registry mpports.Registry, status ports.StatusStore) *SyncService {
	return &SyncService{
		panel:    panel,
		registry: registry,
		status:   status,
	}
}

// SafeConfig returns the masked view of the provider's panel config.
func (s *SyncService) SafeConfig(ctx context.Context, provider mpdomain.Provider) (*domain.SafeConfig, error) {
	_, safe, err := s.panel.FetchConfig(ctx, provider)
	if err != nil {
		return nil, err
	}
	return safe, nil
}

// TestProvider resolves credentials and probes the provider's adapter. The
// probe itself never fails; config resolution errors still propagate.
func (s *SyncService) TestProvider(ctx context.Context, provider mpdomain.Provider) (mpdomain.TestResult, error) {
	cfg, _, err := s.panel.FetchConfig(ctx, provider)
	if err != nil {
		return mpdomain.TestResult{}, err
	}

	result := s.registry.Get(provider).TestConnection(ctx, cfg.Credentials)
	s.recordStatus(ctx, provider, result.OK, nil, result.Message)
	return result, nil
}

// Status returns the last recorded sync outcome for a provider.
func (s *SyncService) Status(ctx context.Context, provider mpdomain.Provider) (*domain.SyncStatus, error) {
	if s.status == nil {
		return nil, ErrStatusUnavailable
	}
	return s.status.Get(ctx, provider)
}

// SyncNow runs one full sync for the provider. Any stage failure aborts the
// remaining pipeline; ingestion is all-or-nothing per invocation.
func (s *SyncService) SyncNow(ctx context.Context, provider mpdomain.Provider) (*domain.SyncResult, error) {
	result, err := s.runSync(ctx, provider)
	if err != nil {
		s.recordStatus(ctx, provider, false, nil, err.Error())
		return nil, err
	}
	s.recordStatus(ctx, provider, true, &result.Counts, "")
	return result, nil
}

func (s *SyncService) runSync(ctx context.Context, provider mpdomain.Provider) (*domain.SyncResult, error) {
	cfg, safe, err := s.panel.FetchConfig(ctx, provider)
	if err != nil {
		return nil, err
	}

	if err := validateCredentials(provider, cfg.Credentials); err != nil {
		return nil, err
	}

	adapter := s.registry.Get(provider)
	productLister, okProducts := adapter.(mpports.ProductLister)
	orderLister, okOrders := adapter.(mpports.OrderLister)
	if !okProducts || !okOrders {
		return nil, fmt.Errorf("%w: %s", ErrSyncNotSupported, provider)
	}

	logger.Get().Info("provider fetch started", zap.String("provider", provider.String()))

	// Products and orders are independent; fetch them in parallel and join.
	// Pagination inside each fetch stays sequential.
	var (
		products    []mpdomain.ProductUpsert
		orders      []mpdomain.OrderUpsert
		productsErr error
		ordersErr   error
		wg          sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		products, productsErr = productLister.ListProducts(ctx, cfg.Credentials)
	}()
	go func() {
		defer wg.Done()
		orders, ordersErr = orderLister.ListOrders(ctx, cfg.Credentials)
	}()
	wg.Wait()

	if productsErr != nil {
		return nil, productsErr
	}
	if ordersErr != nil {
		return nil, ordersErr
	}

	logger.Get().Info("provider fetch completed",
		zap.String("provider", provider.String()),
		zap.Int("products", len(products)),
		zap.Int("orders", len(orders)),
	)

	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	batch := domain.IngestBatch{
		ProductsUpserts: products,
		OrdersUpserts:   orders,
		FetchedAt:       fetchedAt,
		AgentVersion:    AgentVersion,
	}

	ack, err := s.panel.Ingest(ctx, provider, batch)
	if err != nil {
		return nil, err
	}

	logger.Get().Info("ingest acknowledged", zap.String("provider", provider.String()))

	return &domain.SyncResult{
		OK: true,
		Counts: domain.SyncCounts{
			Products: len(products),
			Orders:   len(orders),
		},
		Panel:     ack,
		FetchedAt: fetchedAt,
		Safe:      safe,
	}, nil
}

// validateCredentials checks that every field the provider's client needs is
// present, so a misconfigured connection fails with a pointed message instead
// of a provider round-trip.
func validateCredentials(provider mpdomain.Provider, creds mpdomain.Credentials) error {
	switch provider {
	case mpdomain.ProviderWooCommerce:
		if creds.String("baseUrl") == "" {
			return missingCredential(provider, "baseUrl")
		}
		if creds.FirstString("consumerKey", "key") == "" {
			return missingCredential(provider, "consumerKey")
		}
		if creds.FirstString("consumerSecret", "secret") == "" {
			return missingCredential(provider, "consumerSecret")
		}
	case mpdomain.ProviderTrendyol:
		for _, field := range []string{"sellerId", "apiKey", "apiSecret"} {
			if creds.String(field) == "" {
				return missingCredential(provider, field)
			}
		}
	}
	return nil
}

func missingCredential(provider mpdomain.Provider, field string) error {
	return fmt.Errorf("%w: %s connection is missing %s; check the marketplace settings in the panel", ErrCredentialsIncomplete, provider, field)
}

// recordStatus persists the run outcome for the agent UI. Bookkeeping must
// never fail a sync, so store errors are only logged.
func (s *SyncService) recordStatus(ctx context.Context, provider mpdomain.Provider, ok bool, counts *domain.SyncCounts, message string) {
	if s.status == nil {
		return
	}

	status := domain.SyncStatus{
		Provider:   provider.String(),
		OK:         ok,
		Counts:     counts,
		FinishedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if !ok {
		status.Error = message
	}

	if err := s.status.Save(ctx, status); err != nil {
		logger.Get().Warn("failed to record sync status",
			zap.String("provider", provider.String()),
			zap.Error(err),
		)
	}
}
