package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"marketsync-agent/internal/core/httpclient"
	mpdomain "marketsync-agent/internal/features/marketplaces/domain"
	"marketsync-agent/internal/features/sync/domain"
)

const (
	panelConfigTimeout = 20 * time.Second
	// Ingest payloads can be large; give the panel more room.
	panelIngestTimeout = 60 * time.Second

	wooDefaultAPIPrefix = "/wp-json/wc/v3"
)

var panelSchemeRe = regexp.MustCompile(`(?i)^https?://`)

// PanelHTTPClient implements the PanelClient port against the panel's agent
// endpoints, authenticated with a bearer token.
type PanelHTTPClient struct {
	baseURL string
	token   string
}

// NewPanelClient validates and normalizes the panel coordinates. Both values
// are required; failing here keeps misconfiguration off the network.
func NewPanelClient(panelURL, token string) (*PanelHTTPClient, error) {
	base := normalizePanelURL(panelURL)
	if base == "" {
		return nil, errors.New("panel URL is required")
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("agent token is required")
	}
	return &PanelHTTPClient{baseURL: base, token: token}, nil
}

// normalizePanelURL prepends https:// when no scheme is present and strips
// trailing slashes.
func normalizePanelURL(input string) string {
	v := strings.TrimSpace(input)
	if v == "" {
		return ""
	}
	if !panelSchemeRe.MatchString(v) {
		v = "https://" + v
	}
	return strings.TrimRight(v, "/")
}

// FetchConfig retrieves and parses the provider's connection config.
func (c *PanelHTTPClient) FetchConfig(ctx context.Context, provider mpdomain.Provider) (*domain.PanelConfig, *domain.SafeConfig, error) {
	endpoint := fmt.Sprintf("%s/api/admin/marketplaces/agent/config/%s", c.baseURL, url.PathEscape(provider.String()))

	raw, err := c.doJSON(ctx, http.MethodGet, endpoint, nil, panelConfigTimeout)
	if err != nil {
		return nil, nil, err
	}

	var cfg domain.PanelConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, nil, fmt.Errorf("panel config is not valid JSON: %w", err)
	}
	if cfg.Credentials == nil {
		cfg.Credentials = mpdomain.Credentials{}
	}

	return &cfg, buildSafeConfig(provider, &cfg), nil
}

// Ingest posts a normalized batch to the panel ingestion endpoint.
func (c *PanelHTTPClient) Ingest(ctx context.Context, provider mpdomain.Provider, batch domain.IngestBatch) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/api/admin/marketplaces/agent/ingest/%s", c.baseURL, url.PathEscape(provider.String()))
	return c.doJSON(ctx, http.MethodPost, endpoint, batch, panelIngestTimeout)
}

// doJSON issues one authenticated request and returns the raw JSON body.
// Non-2xx responses become errors carrying the status and a bounded slice of
// the body, preferring the panel's own error/details fields.
func (c *PanelHTTPClient) doJSON(ctx context.Context, method, endpoint string, payload any, timeout time.Duration) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode panel request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create panel request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpclient.NewClient(timeout).Do(req)
	if err != nil {
		return nil, fmt.Errorf("panel request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read panel response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("panel HTTP %d: %s", resp.StatusCode, panelErrorMessage(raw))
	}

	return json.RawMessage(raw), nil
}

// panelErrorMessage extracts the panel's error/details fields when the body
// is JSON, otherwise returns the truncated body text.
func panelErrorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return truncate(payload.Error, 400)
		}
		if payload.Details != "" {
			return truncate(payload.Details, 400)
		}
	}
	return truncate(string(body), 400)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// buildSafeConfig masks every secret in the credential bag for display. The
// shape follows what the agent UI renders per provider.
func buildSafeConfig(provider mpdomain.Provider, cfg *domain.PanelConfig) *domain.SafeConfig {
	creds := cfg.Credentials
	safe := map[string]string{}

	switch provider {
	case mpdomain.ProviderWooCommerce:
		safe["baseUrl"] = normalizePanelURL(creds.String("baseUrl"))
		safe["consumerKeyMasked"] = mpdomain.MaskSecret(creds.FirstString("consumerKey", "key"))
		safe["consumerSecretMasked"] = mpdomain.MaskSecret(creds.FirstString("consumerSecret", "secret"))
		prefix := creds.String("apiPrefix")
		if prefix == "" {
			prefix = wooDefaultAPIPrefix
		}
		safe["apiPrefix"] = prefix
	case mpdomain.ProviderTrendyol:
		safe["sellerId"] = creds.String("sellerId")
		safe["apiKeyMasked"] = mpdomain.MaskSecret(creds.String("apiKey"))
		safe["apiSecretMasked"] = mpdomain.MaskSecret(creds.String("apiSecret"))
	default:
		// Unknown shapes: mask every value rather than guessing which are secret.
		for k := range creds {
			safe[k+"Masked"] = mpdomain.MaskSecret(creds.String(k))
		}
	}

	return &domain.SafeConfig{
		Provider:    cfg.Provider,
		Connection:  cfg.Connection,
		Credentials: safe,
	}
}
