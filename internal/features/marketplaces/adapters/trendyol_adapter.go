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
	"strconv"
	"strings"
	"time"

	"marketsync-agent/internal/core/httpclient"
	"marketsync-agent/internal/core/logger"
	"marketsync-agent/internal/features/marketplaces/domain"

	"go.uber.org/zap"
)

const (
	// Catalog and orders live on materially different hosts with different
	// path shapes; both substitute the seller id into the path.
	trendyolSupplierBase = "https://api.trendyol.com/sapigw/suppliers"
	trendyolGatewayBase  = "https://apigw.trendyol.com/integration"

	trendyolPageSize        = 200
	trendyolMaxProductPages = 100
	trendyolMaxOrderPages   = 50
	trendyolTimeout         = 20 * time.Second

	// Orders require an explicit time window; default to the last year.
	trendyolOrderWindow = 365 * 24 * time.Hour
)

// TrendyolAdapter implements the marketplace adapter contract for the
// Trendyol Seller API (Basic auth with API key/secret).
type TrendyolAdapter struct {
	supplierBase string
	gatewayBase  string
	now          func() time.Time
}

// NewTrendyolAdapter creates a new TrendyolAdapter against the production
// Trendyol endpoints.
func NewTrendyolAdapter() *TrendyolAdapter {
	return &TrendyolAdapter{
		supplierBase: trendyolSupplierBase,
		gatewayBase:  trendyolGatewayBase,
		now:          time.Now,
	}
}

type trendyolCredentials struct {
	sellerID  string
	apiKey    string
	apiSecret string
}

// trendyolCredentialsFrom validates the credential bag before any network
// round-trip is spent.
func trendyolCredentialsFrom(creds domain.Credentials) (trendyolCredentials, error) {
	tc := trendyolCredentials{
		sellerID:  creds.String("sellerId"),
		apiKey:    creds.String("apiKey"),
		apiSecret: creds.String("apiSecret"),
	}
	if tc.sellerID == "" {
		return trendyolCredentials{}, errors.New("trendyol seller id is required")
	}
	if tc.apiKey == "" || tc.apiSecret == "" {
		return trendyolCredentials{}, errors.New("trendyol api key and api secret are required")
	}
	return tc, nil
}

// Provider identifies this adapter.
func (a *TrendyolAdapter) Provider() domain.Provider {
	return domain.ProviderTrendyol
}

// trendyolPage is the paged envelope both Trendyol listing endpoints return.
type trendyolPage struct {
	Content []map[string]any `json:"content"`
}

// fetchPage issues a single GET against a Trendyol base URL, substituting the
// seller id into the path template.
func (a *TrendyolAdapter) fetchPage(ctx context.Context, tc trendyolCredentials, base, pathTemplate string, qs url.Values) ([]map[string]any, error) {
	path := strings.ReplaceAll(pathTemplate, "{sellerId}", url.PathEscape(tc.sellerID))
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	endpoint := base + path
	if enc := qs.Encode(); enc != "" {
		endpoint += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(tc.apiKey + ":" + tc.apiSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")

	resp, err := httpclient.NewClient(trendyolTimeout).Do(req)
	if err != nil {
		return nil, fmt.Errorf("trendyol request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read trendyol response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("Trendyol API %d: %s", resp.StatusCode, truncate(string(body), 300))
	}

	var page trendyolPage
	if len(body) > 0 {
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("trendyol response is not valid JSON: %w", err)
		}
	}
	return page.Content, nil
}

// TestConnection probes the catalog with a single one-product page.
func (a *TrendyolAdapter) TestConnection(ctx context.Context, creds domain.Credentials) domain.TestResult {
	tc, err := trendyolCredentialsFrom(creds)
	if err != nil {
		return domain.TestResult{OK: false, Message: err.Error()}
	}

	qs := url.Values{}
	qs.Set("page", "0")
	qs.Set("size", "1")
	if _, err := a.fetchPage(ctx, tc, a.supplierBase, "/{sellerId}/products", qs); err != nil {
		return domain.TestResult{OK: false, Message: err.Error()}
	}
	return domain.TestResult{OK: true}
}

// ListProducts pages through the supplier catalog (zero-based pages) and
// normalizes it.
func (a *TrendyolAdapter) ListProducts(ctx context.Context, creds domain.Credentials) ([]domain.ProductUpsert, error) {
	tc, err := trendyolCredentialsFrom(creds)
	if err != nil {
		return nil, err
	}

	var all []map[string]any
	for page := 0; page < trendyolMaxProductPages; page++ {
		logger.Get().Debug("trendyol products page", zap.Int("page", page))

		qs := url.Values{}
		qs.Set("page", strconv.Itoa(page))
		qs.Set("size", strconv.Itoa(trendyolPageSize))

		content, err := a.fetchPage(ctx, tc, a.supplierBase, "/{sellerId}/products", qs)
		if err != nil {
			return nil, err
		}
		all = append(all, content...)
		if len(content) < trendyolPageSize {
			break
		}
	}

	return mapTrendyolProducts(all), nil
}

// ListOrders pages through orders on the integration gateway within the
// default one-year window.
func (a *TrendyolAdapter) ListOrders(ctx context.Context, creds domain.Credentials) ([]domain.OrderUpsert, error) {
	tc, err := trendyolCredentialsFrom(creds)
	if err != nil {
		return nil, err
	}

	end := a.now()
	start := end.Add(-trendyolOrderWindow)

	var all []map[string]any
	for page := 0; page < trendyolMaxOrderPages; page++ {
		logger.Get().Debug("trendyol orders page", zap.Int("page", page))

		qs := url.Values{}
		qs.Set("startDate", strconv.FormatInt(start.Unix(), 10))
		qs.Set("endDate", strconv.FormatInt(end.Unix(), 10))
		qs.Set("page", strconv.Itoa(page))
		qs.Set("size", strconv.Itoa(trendyolPageSize))

		content, err := a.fetchPage(ctx, tc, a.gatewayBase, "/order/sellers/{sellerId}/orders", qs)
		if err != nil {
			return nil, err
		}
		all = append(all, content...)
		if len(content) < trendyolPageSize {
			break
		}
	}

	return mapTrendyolOrders(all), nil
}

// mapTrendyolProducts converts raw catalog payloads into the canonical upsert
// shape. A product with neither id nor barcode degrades to an empty
// ExternalID rather than failing the batch.
func mapTrendyolProducts(items []map[string]any) []domain.ProductUpsert {
	out := make([]domain.ProductUpsert, 0, len(items))
	for _, p := range items {
		out = append(out, domain.ProductUpsert{
			ExternalID:  firstNonEmpty(asString(p["id"]), asString(p["barcode"])),
			MerchantSKU: strPtr(asString(p["stockCode"])),
			Barcode:     strPtr(asString(p["barcode"])),
			Title:       strPtr(asString(p["title"])),
			Price:       firstValue(p["salePrice"], p["listPrice"]),
			Currency:    "TRY",
			Stock:       intPtr(p["quantity"]),
			Raw:         p,
		})
	}
	return out
}

// mapTrendyolOrders converts raw order payloads into the canonical upsert
// shape; orders without a lines array get an empty item sequence.
func mapTrendyolOrders(items []map[string]any) []domain.OrderUpsert {
	out := make([]domain.OrderUpsert, 0, len(items))
	for _, o := range items {
		shipment := asMap(o["shipmentAddress"])

		currency := asString(o["currencyCode"])
		if currency == "" {
			currency = "TRY"
		}

		lines := asSlice(o["lines"])
		orderItems := make([]domain.LineItemUpsert, 0, len(lines))
		for _, raw := range lines {
			li := asMap(raw)
			orderItems = append(orderItems, domain.LineItemUpsert{
				ExternalID:  strPtr(asString(li["id"])),
				MerchantSKU: strPtr(firstNonEmpty(asString(li["merchantSku"]), asString(li["sku"]))),
				Barcode:     strPtr(asString(li["barcode"])),
				Title:       strPtr(asString(li["productName"])),
				Quantity:    intOr(li["quantity"], 1),
				UnitPrice:   firstValue(li["price"]),
				TotalPrice:  firstValue(li["amount"]),
				Currency:    currency,
				Raw:         li,
			})
		}

		out = append(out, domain.OrderUpsert{
			ExternalID:         firstNonEmpty(asString(o["id"]), asString(o["orderNumber"])),
			Status:             asString(o["status"]),
			PlacedAt:           trendyolOrderDate(o["orderDate"]),
			BuyerName:          strPtr(asString(o["customerName"])),
			BuyerEmail:         strPtr(asString(o["customerEmail"])),
			BuyerPhone:         strPtr(asString(shipment["phone"])),
			ShippingName:       strPtr(asString(shipment["fullName"])),
			ShippingAddress:    strPtr(asString(shipment["address1"])),
			ShippingCity:       strPtr(asString(shipment["city"])),
			ShippingDistrict:   strPtr(asString(shipment["district"])),
			ShippingPostalCode: strPtr(asString(shipment["postalCode"])),
			TotalAmount:        firstValue(o["grossAmount"]),
			Currency:           currency,
			Raw:                o,
			Items:              orderItems,
		})
	}
	return out
}

// trendyolOrderDate renders the orderDate field as ISO-8601. Trendyol sends
// epoch milliseconds; string dates pass through untouched.
func trendyolOrderDate(v any) *string {
	switch t := v.(type) {
	case float64:
		if t <= 0 {
			return nil
		}
		s := time.UnixMilli(int64(t)).UTC().Format(time.RFC3339)
		return &s
	case string:
		return strPtr(t)
	default:
		return nil
	}
}
