package domain

import (
	"fmt"
	"strings"
)

// Credentials is the opaque, provider-shaped key/value bag received from the
// panel config endpoint. It lives in memory for the duration of one sync call
// and is never persisted or logged unmasked by the agent.
type Credentials map[string]any

// String returns the trimmed string value for key, or "" when the key is
// absent or not string-shaped. Numeric values are formatted, which matters
// for fields like Trendyol's sellerId that some panels store as a number.
func (c Credentials) String(key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}

// FirstString returns the first non-empty string among the given keys.
// Providers have drifted key names over time (consumerKey vs key), so lookups
// accept aliases.
func (c Credentials) FirstString(keys ...string) string {
	for _, k := range keys {
		if v := c.String(k); v != "" {
			return v
		}
	}
	return ""
}

// Int returns the integer value for key, or fallback when absent or
// non-numeric.
func (c Credentials) Int(key string, fallback int) int {
	v, ok := c[key]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(t), "%d", &n); err == nil {
			return n
		}
	}
	return fallback
}

// MaskSecret redacts a secret for display or logging: the last 4 characters
// are kept, everything before them becomes '*', with a minimum of 8 mask
// characters so short secrets do not leak their length.
func MaskSecret(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	last := v
	if len(v) > 4 {
		last = v[len(v)-4:]
	}
	masked := len(v) - 4
	if masked < 8 {
		masked = 8
	}
	return strings.Repeat("*", masked) + last
}
