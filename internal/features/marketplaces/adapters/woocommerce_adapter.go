package adapters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"marketsync-agent/internal/core/httpclient"
	"marketsync-agent/internal/core/logger"
	"marketsync-agent/internal/features/marketplaces/domain"

	"go.uber.org/zap"
)

const (
	wooDefaultAPIPrefix = "/wp-json/wc/v3"
	wooPerPage          = 100
	// Hard page caps guard against a misbehaving server that never returns a
	// short page.
	wooMaxProductPages = 50
	wooMaxOrderPages   = 20
	wooDefaultTimeout  = 20 * time.Second
)

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// WooCommerceAdapter implements the marketplace adapter contract using the
// WooCommerce REST API (store API keys over HTTP Basic, not a session).
type WooCommerceAdapter struct{}

// NewWooCommerceAdapter creates a new WooCommerceAdapter. The adapter is
// stateless: credentials arrive per call and are discarded with it.
func NewWooCommerceAdapter() *WooCommerceAdapter {
	return &WooCommerceAdapter{}
}

// Provider identifies this adapter.
func (a *WooCommerceAdapter) Provider() domain.Provider {
	return domain.ProviderWooCommerce
}

// wooCredentials is the validated, connection-ready shape of the opaque
// credential bag.
type wooCredentials struct {
	apiBase        string
	consumerKey    string
	consumerSecret string
	timeout        time.Duration
}

// normalizeBaseURL prepends https:// when no scheme is present and strips
// trailing slashes.
func normalizeBaseURL(input string) string {
	v := strings.TrimSpace(input)
	if v == "" {
		return ""
	}
	if !schemeRe.MatchString(v) {
		v = "https://" + v
	}
	return strings.TrimRight(v, "/")
}

// wooCredentialsFrom validates and shapes the credential bag. Key aliases
// (key/secret) are accepted for older panel records.
func wooCredentialsFrom(creds domain.Credentials) (wooCredentials, error) {
	baseURL := normalizeBaseURL(creds.String("baseUrl"))
	key := creds.FirstString("consumerKey", "key")
	secret := creds.FirstString("consumerSecret", "secret")
	if baseURL == "" || key == "" || secret == "" {
		return wooCredentials{}, errors.New("woocommerce credentials require baseUrl, consumerKey and consumerSecret")
	}

	prefix := creds.String("apiPrefix")
	if prefix == "" {
		prefix = wooDefaultAPIPrefix
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	timeout := wooDefaultTimeout
	if ms := creds.Int("timeoutMs", 0); ms > 0 {
		timeout = time.Duration(ms) * time.Millisecond
	}

	return wooCredentials{
		apiBase:        baseURL + prefix,
		consumerKey:    key,
		consumerSecret: secret,
		timeout:        timeout,
	}, nil
}

// fetchPage issues a single GET against the store API and decodes the JSON
// array response.
func (a *WooCommerceAdapter) fetchPage(ctx context.Context, wc wooCredentials, path string, qs url.Values) ([]map[string]any, error) {
	endpoint := wc.apiBase + path
	if enc := qs.Encode(); enc != "" {
		endpoint += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(wc.consumerKey + ":" + wc.consumerSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")

	resp, err := httpclient.NewClient(wc.timeout).Do(req)
	if err != nil {
		return nil, fmt.Errorf("woocommerce request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read woocommerce response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("WooCommerce HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("woocommerce response is not a JSON array: %w", err)
	}
	return items, nil
}

// TestConnection probes the store with a single one-product page.
func (a *WooCommerceAdapter) TestConnection(ctx context.Context, creds domain.Credentials) domain.TestResult {
	wc, err := wooCredentialsFrom(creds)
	if err != nil {
		return domain.TestResult{OK: false, Message: err.Error()}
	}

	qs := url.Values{}
	qs.Set("per_page", "1")
	if _, err := a.fetchPage(ctx, wc, "/products", qs); err != nil {
		return domain.TestResult{OK: false, Message: err.Error()}
	}
	return domain.TestResult{OK: true}
}

// ListProducts pages through the published catalog and normalizes it.
// Pagination is sequential: each page's stop decision depends on the length
// of the previous one.
func (a *WooCommerceAdapter) ListProducts(ctx context.Context, creds domain.Credentials) ([]domain.ProductUpsert, error) {
	wc, err := wooCredentialsFrom(creds)
	if err != nil {
		return nil, err
	}

	var all []map[string]any
	for page := 1; page <= wooMaxProductPages; page++ {
		logger.Get().Debug("woocommerce products page", zap.Int("page", page))

		qs := url.Values{}
		qs.Set("per_page", strconv.Itoa(wooPerPage))
		qs.Set("page", strconv.Itoa(page))
		qs.Set("orderby", "id")
		qs.Set("order", "desc")
		qs.Set("status", "publish")

		items, err := a.fetchPage(ctx, wc, "/products", qs)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < wooPerPage {
			break
		}
	}

	return mapWooProducts(all), nil
}

// ListOrders pages through orders newest-first and normalizes them.
func (a *WooCommerceAdapter) ListOrders(ctx context.Context, creds domain.Credentials) ([]domain.OrderUpsert, error) {
	wc, err := wooCredentialsFrom(creds)
	if err != nil {
		return nil, err
	}

	var all []map[string]any
	for page := 1; page <= wooMaxOrderPages; page++ {
		logger.Get().Debug("woocommerce orders page", zap.Int("page", page))

		qs := url.Values{}
		qs.Set("per_page", strconv.Itoa(wooPerPage))
		qs.Set("page", strconv.Itoa(page))
		qs.Set("orderby", "date")
		qs.Set("order", "desc")

		items, err := a.fetchPage(ctx, wc, "/orders", qs)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < wooPerPage {
			break
		}
	}

	return mapWooOrders(all), nil
}

// mapWooProducts converts raw WooCommerce product payloads into the canonical
// upsert shape. Missing optional fields become null, never "".
func mapWooProducts(items []map[string]any) []domain.ProductUpsert {
	out := make([]domain.ProductUpsert, 0, len(items))
	for _, p := range items {
		out = append(out, domain.ProductUpsert{
			ExternalID:  asString(p["id"]),
			MerchantSKU: strPtr(asString(p["sku"])),
			Barcode:     nil,
			Title:       strPtr(asString(p["name"])),
			Price:       firstValue(p["price"]),
			Currency:    "TRY",
			Stock:       intPtr(p["stock_quantity"]),
			Raw:         p,
		})
	}
	return out
}

// mapWooOrders converts raw WooCommerce order payloads into the canonical
// upsert shape, line items included.
func mapWooOrders(items []map[string]any) []domain.OrderUpsert {
	out := make([]domain.OrderUpsert, 0, len(items))
	for _, o := range items {
		billing := asMap(o["billing"])
		shipping := asMap(o["shipping"])

		currency := asString(o["currency"])
		if currency == "" {
			currency = "TRY"
		}

		lineItems := asSlice(o["line_items"])
		orderItems := make([]domain.LineItemUpsert, 0, len(lineItems))
		for _, raw := range lineItems {
			li := asMap(raw)
			orderItems = append(orderItems, domain.LineItemUpsert{
				ExternalID:  strPtr(asString(li["id"])),
				MerchantSKU: strPtr(asString(li["sku"])),
				Barcode:     nil,
				Title:       strPtr(asString(li["name"])),
				Quantity:    intOr(li["quantity"], 1),
				UnitPrice:   firstValue(li["price"]),
				TotalPrice:  firstValue(li["total"]),
				Currency:    currency,
				Raw:         li,
			})
		}

		out = append(out, domain.OrderUpsert{
			ExternalID:         asString(o["id"]),
			Status:             asString(o["status"]),
			PlacedAt:           strPtr(firstNonEmpty(asString(o["date_created"]), asString(o["date_created_gmt"]))),
			BuyerName:          joinedName(billing),
			BuyerEmail:         strPtr(asString(billing["email"])),
			BuyerPhone:         strPtr(asString(billing["phone"])),
			ShippingName:       joinedName(shipping),
			ShippingAddress:    strPtr(firstNonEmpty(asString(shipping["address_1"]), asString(shipping["address_2"]))),
			ShippingCity:       strPtr(asString(shipping["city"])),
			ShippingDistrict:   strPtr(asString(shipping["state"])),
			ShippingPostalCode: strPtr(asString(shipping["postcode"])),
			TotalAmount:        firstValue(o["total"]),
			Currency:           currency,
			Raw:                o,
			Items:              orderItems,
		})
	}
	return out
}

// joinedName builds "first last" from a billing/shipping block. Whitespace-only
// results normalize to nil.
func joinedName(block map[string]any) *string {
	parts := make([]string, 0, 2)
	for _, key := range []string{"first_name", "last_name"} {
		if v := asString(block[key]); v != "" {
			parts = append(parts, v)
		}
	}
	return strPtr(strings.Join(parts, " "))
}
