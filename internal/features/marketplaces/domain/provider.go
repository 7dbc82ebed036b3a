package domain

import "fmt"

// Provider identifies an external marketplace platform. It is used as the
// dispatch key for adapter selection and in every panel endpoint path.
type Provider string

const (
	// ProviderWooCommerce is a WooCommerce-compatible store (WordPress REST API).
	ProviderWooCommerce Provider = "woocommerce"
	// ProviderTrendyol is the Trendyol Seller API.
	ProviderTrendyol Provider = "trendyol"
	// ProviderHepsiburada is the Hepsiburada marketplace (no client yet).
	ProviderHepsiburada Provider = "hepsiburada"
	// ProviderN11 is the N11 marketplace (no client yet).
	ProviderN11 Provider = "n11"
	// ProviderPazarama is the Pazarama marketplace (no client yet).
	ProviderPazarama Provider = "pazarama"
)

// AllProviders lists every known provider in a stable order.
var AllProviders = []Provider{
	ProviderWooCommerce,
	ProviderTrendyol,
	ProviderHepsiburada,
	ProviderN11,
	ProviderPazarama,
}

// ParseProvider validates a raw provider identifier (e.g. from a URL path).
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	for _, known := range AllProviders {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown provider: %q", s)
}

// String returns the wire identifier of the provider.
func (p Provider) String() string {
	return string(p)
}
