package domain

// ProductUpsert is the canonical product record handed to the panel ingestion
// endpoint. (provider, ExternalID) is the idempotency key: the panel treats a
// repeated upsert for the same key as an update, never a duplicate.
type ProductUpsert struct {
	// ExternalID is the provider-unique identifier, always a string.
	ExternalID string `json:"externalId"`
	// MerchantSKU is the merchant-facing SKU, nil when the provider has none.
	MerchantSKU *string `json:"merchantSku"`
	// Barcode is the product barcode, nil when unknown.
	Barcode *string `json:"barcode"`
	// Title is the product title, nil when unknown.
	Title *string `json:"title"`
	// Price is kept loosely typed: providers return strings or numbers and the
	// panel owns the final representation.
	Price any `json:"price"`
	// Currency defaults to TRY.
	Currency string `json:"currency"`
	// Stock is the available quantity, nil when the provider value is not numeric.
	Stock *int `json:"stock"`
	// Raw is the untouched provider payload, kept for audit and debugging.
	Raw any `json:"raw,omitempty"`
}

// OrderUpsert is the canonical order record handed to the panel ingestion
// endpoint, keyed like ProductUpsert.
type OrderUpsert struct {
	ExternalID string `json:"externalId"`
	// Status preserves the provider's vocabulary verbatim.
	Status string `json:"status"`
	// PlacedAt is an ISO-8601 timestamp string, nil when the provider omits it.
	PlacedAt *string `json:"placedAt"`

	BuyerName  *string `json:"buyerName"`
	BuyerEmail *string `json:"buyerEmail"`
	BuyerPhone *string `json:"buyerPhone"`

	ShippingName       *string `json:"shippingName"`
	ShippingAddress    *string `json:"shippingAddress"`
	ShippingCity       *string `json:"shippingCity"`
	ShippingDistrict   *string `json:"shippingDistrict"`
	ShippingPostalCode *string `json:"shippingPostalCode"`

	TotalAmount any    `json:"totalAmount"`
	Currency    string `json:"currency"`
	Raw         any    `json:"raw,omitempty"`

	// Items is the ordered line item sequence; items have no lifecycle of
	// their own outside the parent order.
	Items []LineItemUpsert `json:"items"`
}

// LineItemUpsert is a canonical order line nested under an OrderUpsert.
type LineItemUpsert struct {
	ExternalID  *string `json:"externalId"`
	MerchantSKU *string `json:"merchantSku"`
	Barcode     *string `json:"barcode"`
	Title       *string `json:"title"`
	Quantity    int     `json:"quantity"`
	UnitPrice   any     `json:"unitPrice"`
	TotalPrice  any     `json:"totalPrice"`
	Currency    string  `json:"currency"`
	Raw         any     `json:"raw,omitempty"`
}

// TestResult is the outcome of an adapter connection probe. Probes never
// fail with an error; failures are reported through OK/Message.
type TestResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}
