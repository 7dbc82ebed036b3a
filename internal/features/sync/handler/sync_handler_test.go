package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	mpadapters "marketsync-agent/internal/features/marketplaces/adapters"
	mpdomain "marketsync-agent/internal/features/marketplaces/domain"
	"marketsync-agent/internal/features/sync/domain"
	"marketsync-agent/internal/features/sync/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPanel struct {
	creds     mpdomain.Credentials
	configErr error
}

func (s *stubPanel) FetchConfig(_ context.Context, provider mpdomain.Provider) (*domain.PanelConfig, *domain.SafeConfig, error) {
	if s.configErr != nil {
		return nil, nil, s.configErr
	}
	cfg := &domain.PanelConfig{Provider: provider.String(), Credentials: s.creds}
	safe := &domain.SafeConfig{
		Provider:    provider.String(),
		Credentials: map[string]string{"baseUrl": "https://shop.example.com"},
	}
	return cfg, safe, nil
}

func (s *stubPanel) Ingest(_ context.Context, _ mpdomain.Provider, _ domain.IngestBatch) (json.RawMessage, error) {
	return json.RawMessage(`{"ok": true}`), nil
}

func newTestApp(panel *stubPanel) *fiber.App {
	svc := service.NewSyncService(panel, mpadapters.NewRegistry(), nil)
	h := NewSyncHandler(svc)

	app := fiber.New()
	app.Use(requestid.New())
	app.Post("/api/sync/:provider", h.SyncNow)
	app.Post("/api/test/:provider", h.TestConnection)
	app.Get("/api/config/:provider", h.SafeConfig)
	app.Get("/api/status/:provider", h.Status)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string) (int, []byte) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(method, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestSyncNow_UnknownProvider(t *testing.T) {
	app := newTestApp(&stubPanel{})

	status, body := doRequest(t, app, http.MethodPost, "/api/sync/etsy")
	assert.Equal(t, http.StatusBadRequest, status)

	var payload ErrorResponse
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload.Message, "etsy")
	assert.NotEmpty(t, payload.RayID)
}

func TestSyncNow_IncompleteCredentials(t *testing.T) {
	app := newTestApp(&stubPanel{creds: mpdomain.Credentials{"baseUrl": "https://shop.example.com"}})

	status, body := doRequest(t, app, http.MethodPost, "/api/sync/woocommerce")
	assert.Equal(t, http.StatusBadRequest, status)

	var payload ErrorResponse
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload.Message, "consumerKey")
}

func TestSyncNow_StubProvider(t *testing.T) {
	app := newTestApp(&stubPanel{creds: mpdomain.Credentials{"apiKey": "x"}})

	status, _ := doRequest(t, app, http.MethodPost, "/api/sync/n11")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSyncNow_PanelFailure(t *testing.T) {
	app := newTestApp(&stubPanel{configErr: errors.New("panel HTTP 500: boom")})

	status, body := doRequest(t, app, http.MethodPost, "/api/sync/woocommerce")
	assert.Equal(t, http.StatusBadGateway, status)

	var payload ErrorResponse
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload.Message, "panel HTTP 500")
}

func TestTestConnection_StubProvider(t *testing.T) {
	app := newTestApp(&stubPanel{creds: mpdomain.Credentials{}})

	status, body := doRequest(t, app, http.MethodPost, "/api/test/hepsiburada")
	assert.Equal(t, http.StatusOK, status)

	var result mpdomain.TestResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "hepsiburada")
}

func TestSafeConfig(t *testing.T) {
	app := newTestApp(&stubPanel{creds: mpdomain.Credentials{}})

	status, body := doRequest(t, app, http.MethodGet, "/api/config/woocommerce")
	assert.Equal(t, http.StatusOK, status)

	var safe domain.SafeConfig
	require.NoError(t, json.Unmarshal(body, &safe))
	assert.Equal(t, "woocommerce", safe.Provider)
	assert.Equal(t, "https://shop.example.com", safe.Credentials["baseUrl"])
}

func TestStatus_WithoutStore(t *testing.T) {
	app := newTestApp(&stubPanel{})

	status, body := doRequest(t, app, http.MethodGet, "/api/status/woocommerce")
	assert.Equal(t, http.StatusNotFound, status)

	var payload ErrorResponse
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload.Message, "not configured")
}
