package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	mpadapters "marketsync-agent/internal/features/marketplaces/adapters"
	mpdomain "marketsync-agent/internal/features/marketplaces/domain"
	"marketsync-agent/internal/features/sync/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePanel implements the PanelClient port in-memory and records what the
// service posts to it.
type fakePanel struct {
	creds       mpdomain.Credentials
	configErr   error
	ingestErr   error
	lastBatch   *domain.IngestBatch
	ingestCalls int
}

func (f *fakePanel) FetchConfig(_ context.Context, provider mpdomain.Provider) (*domain.PanelConfig, *domain.SafeConfig, error) {
	if f.configErr != nil {
		return nil, nil, f.configErr
	}
	cfg := &domain.PanelConfig{Provider: provider.String(), Credentials: f.creds}
	safe := &domain.SafeConfig{Provider: provider.String(), Credentials: map[string]string{}}
	return cfg, safe, nil
}

func (f *fakePanel) Ingest(_ context.Context, _ mpdomain.Provider, batch domain.IngestBatch) (json.RawMessage, error) {
	f.ingestCalls++
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	f.lastBatch = &batch
	return json.RawMessage(`{"ok": true}`), nil
}

// memoryStatusStore implements the StatusStore port for assertions.
type memoryStatusStore struct {
	saved []domain.SyncStatus
}

func (m *memoryStatusStore) Save(_ context.Context, status domain.SyncStatus) error {
	m.saved = append(m.saved, status)
	return nil
}

func (m *memoryStatusStore) Get(_ context.Context, provider mpdomain.Provider) (*domain.SyncStatus, error) {
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].Provider == provider.String() {
			return &m.saved[i], nil
		}
	}
	return nil, errors.New("no status recorded")
}

// newWooFixture serves one page of products and one page of orders with two
// line items each, in the WooCommerce REST shape.
func newWooFixture(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/products"):
			var items []map[string]any
			for i := 1; i <= 5; i++ {
				items = append(items, map[string]any{
					"id":             i,
					"sku":            fmt.Sprintf("SKU-%d", i),
					"name":           fmt.Sprintf("Product %d", i),
					"price":          "99.90",
					"stock_quantity": 10,
				})
			}
			json.NewEncoder(w).Encode(items)
		case strings.HasSuffix(r.URL.Path, "/orders"):
			var items []map[string]any
			for i := 1; i <= 5; i++ {
				items = append(items, map[string]any{
					"id":           100 + i,
					"status":       "processing",
					"total":        "149.80",
					"currency":     "TRY",
					"date_created": "2024-05-20T10:00:00",
					"billing":      map[string]any{"first_name": "Ada", "last_name": "Kaya", "email": "ada@example.com"},
					"line_items": []map[string]any{
						{"sku": "SKU-1", "name": "Product 1", "quantity": 1, "price": 99.90},
						{"sku": "SKU-2", "name": "Product 2", "quantity": 1, "price": 49.90},
					},
				})
			}
			json.NewEncoder(w).Encode(items)
		default:
			w.Write([]byte(`[]`))
		}
	}))
}

func TestSyncNow_WooCommerceEndToEnd(t *testing.T) {
	shop := newWooFixture(t)
	defer shop.Close()

	panel := &fakePanel{creds: mpdomain.Credentials{
		"baseUrl":        shop.URL,
		"consumerKey":    "ck_test",
		"consumerSecret": "cs_test",
	}}
	store := &memoryStatusStore{}
	svc := NewSyncService(panel, mpadapters.NewRegistry(), store)

	result, err := svc.SyncNow(context.Background(), mpdomain.ProviderWooCommerce)
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, 5, result.Counts.Products)
	assert.Equal(t, 5, result.Counts.Orders)
	assert.NotEmpty(t, result.FetchedAt)
	assert.JSONEq(t, `{"ok": true}`, string(result.Panel))

	require.NotNil(t, panel.lastBatch)
	assert.Equal(t, AgentVersion, panel.lastBatch.AgentVersion)
	assert.Len(t, panel.lastBatch.ProductsUpserts, 5)
	require.Len(t, panel.lastBatch.OrdersUpserts, 5)
	assert.Len(t, panel.lastBatch.OrdersUpserts[0].Items, 2)

	status, err := svc.Status(context.Background(), mpdomain.ProviderWooCommerce)
	require.NoError(t, err)
	assert.True(t, status.OK)
	require.NotNil(t, status.Counts)
	assert.Equal(t, 5, status.Counts.Products)
}

func TestSyncNow_IncompleteCredentialsSkipProviderCalls(t *testing.T) {
	var hits atomic.Int64
	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer shop.Close()

	panel := &fakePanel{creds: mpdomain.Credentials{
		"baseUrl":     shop.URL,
		"consumerKey": "ck_test",
		// consumerSecret deliberately absent
	}}
	svc := NewSyncService(panel, mpadapters.NewRegistry(), nil)

	_, err := svc.SyncNow(context.Background(), mpdomain.ProviderWooCommerce)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCredentialsIncomplete)
	assert.Contains(t, err.Error(), "consumerSecret")
	assert.Contains(t, err.Error(), "marketplace settings")

	assert.Equal(t, int64(0), hits.Load(), "no provider request should be made")
	assert.Equal(t, 0, panel.ingestCalls)
}

func TestSyncNow_TrendyolCredentialValidation(t *testing.T) {
	panel := &fakePanel{creds: mpdomain.Credentials{
		"sellerId": "12345",
		"apiKey":   "key",
		// apiSecret deliberately absent
	}}
	svc := NewSyncService(panel, mpadapters.NewRegistry(), nil)

	_, err := svc.SyncNow(context.Background(), mpdomain.ProviderTrendyol)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCredentialsIncomplete)
	assert.Contains(t, err.Error(), "apiSecret")
}

func TestSyncNow_StubProviderNotSupported(t *testing.T) {
	panel := &fakePanel{creds: mpdomain.Credentials{"apiKey": "x"}}
	svc := NewSyncService(panel, mpadapters.NewRegistry(), nil)

	_, err := svc.SyncNow(context.Background(), mpdomain.ProviderHepsiburada)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyncNotSupported)
	assert.Equal(t, 0, panel.ingestCalls)
}

func TestSyncNow_ConfigErrorPropagates(t *testing.T) {
	panel := &fakePanel{configErr: errors.New("panel HTTP 404: no active connection")}
	store := &memoryStatusStore{}
	svc := NewSyncService(panel, mpadapters.NewRegistry(), store)

	_, err := svc.SyncNow(context.Background(), mpdomain.ProviderWooCommerce)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panel HTTP 404")

	// The failure is still recorded for the agent UI.
	require.Len(t, store.saved, 1)
	assert.False(t, store.saved[0].OK)
	assert.Contains(t, store.saved[0].Error, "404")
	assert.Nil(t, store.saved[0].Counts)
}

func TestSyncNow_ProviderFailureAbortsIngest(t *testing.T) {
	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))
	defer shop.Close()

	panel := &fakePanel{creds: mpdomain.Credentials{
		"baseUrl":        shop.URL,
		"consumerKey":    "ck_test",
		"consumerSecret": "cs_test",
	}}
	svc := NewSyncService(panel, mpadapters.NewRegistry(), nil)

	_, err := svc.SyncNow(context.Background(), mpdomain.ProviderWooCommerce)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WooCommerce HTTP 500")
	assert.Equal(t, 0, panel.ingestCalls)
}

func TestTestProvider(t *testing.T) {
	t.Run("ConfigErrorPropagates", func(t *testing.T) {
		panel := &fakePanel{configErr: errors.New("panel HTTP 401: bad token")}
		svc := NewSyncService(panel, mpadapters.NewRegistry(), nil)

		_, err := svc.TestProvider(context.Background(), mpdomain.ProviderWooCommerce)
		require.Error(t, err)
	})

	t.Run("StubReportsNotImplemented", func(t *testing.T) {
		panel := &fakePanel{creds: mpdomain.Credentials{}}
		store := &memoryStatusStore{}
		svc := NewSyncService(panel, mpadapters.NewRegistry(), store)

		result, err := svc.TestProvider(context.Background(), mpdomain.ProviderPazarama)
		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Contains(t, result.Message, "pazarama")

		status, err := store.Get(context.Background(), mpdomain.ProviderPazarama)
		require.NoError(t, err)
		assert.False(t, status.OK)
	})
}

func TestStatus_WithoutStore(t *testing.T) {
	svc := NewSyncService(&fakePanel{}, mpadapters.NewRegistry(), nil)

	_, err := svc.Status(context.Background(), mpdomain.ProviderWooCommerce)
	assert.ErrorIs(t, err, ErrStatusUnavailable)
}
