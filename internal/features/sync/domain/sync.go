package domain

import (
	"encoding/json"

	mpdomain "marketsync-agent/internal/features/marketplaces/domain"
)

// PanelConfig is the raw response of the panel's agent config endpoint. The
// connection block is provider-defined and passed through opaquely.
type PanelConfig struct {
	Provider    string               `json:"provider"`
	Connection  json.RawMessage      `json:"connection,omitempty"`
	Credentials mpdomain.Credentials `json:"credentials"`
}

// SafeConfig is the display-safe projection of a PanelConfig: every secret
// masked, safe to log or render.
type SafeConfig struct {
	Provider    string            `json:"provider"`
	Connection  json.RawMessage   `json:"connection,omitempty"`
	Credentials map[string]string `json:"credentials"`
}

// IngestBatch is the body posted to the panel ingestion endpoint.
type IngestBatch struct {
	ProductsUpserts []mpdomain.ProductUpsert `json:"productsUpserts"`
	OrdersUpserts   []mpdomain.OrderUpsert   `json:"ordersUpserts"`
	// FetchedAt is captured immediately before the ingest call, so it
	// reflects "data as of send time".
	FetchedAt    string `json:"fetchedAt"`
	AgentVersion string `json:"agentVersion"`
}

// SyncCounts summarizes how many records a run pushed.
type SyncCounts struct {
	Products int `json:"products"`
	Orders   int `json:"orders"`
}

// SyncResult is returned to the caller after a completed run.
type SyncResult struct {
	OK     bool       `json:"ok"`
	Counts SyncCounts `json:"counts"`
	// Panel is the ingestion endpoint's acknowledgement, treated opaquely.
	Panel     json.RawMessage `json:"panel"`
	FetchedAt string          `json:"fetchedAt"`
	Safe      *SafeConfig     `json:"safe,omitempty"`
}

// SyncStatus is the last recorded outcome for a provider, kept for the agent
// UI. It never contains credentials.
type SyncStatus struct {
	Provider   string      `json:"provider"`
	OK         bool        `json:"ok"`
	Counts     *SyncCounts `json:"counts,omitempty"`
	Error      string      `json:"error,omitempty"`
	FinishedAt string      `json:"finishedAt"`
}
