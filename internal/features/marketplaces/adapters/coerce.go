package adapters

import (
	"fmt"
	"strings"
)

// Provider payloads are decoded into generic maps because only a handful of
// fields are consumed; the rest travels through untouched in Raw. These
// helpers coerce loosely typed JSON values without ever failing: a missing or
// oddly typed optional field degrades to ""/nil, per the normalization policy.

// asString renders a JSON value as a trimmed string. Numbers are formatted
// (integral floats without a decimal point), everything else becomes "".
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case int:
		return fmt.Sprintf("%d", t)
	default:
		return ""
	}
}

// strPtr returns nil for empty strings so empty provider fields normalize to
// JSON null instead of "".
func strPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// intPtr returns the value as *int when it is numeric, nil otherwise.
func intPtr(v any) *int {
	switch t := v.(type) {
	case float64:
		n := int(t)
		return &n
	case int:
		n := t
		return &n
	default:
		return nil
	}
}

// intOr returns the value as an int when numeric, fallback otherwise.
func intOr(v any, fallback int) int {
	if p := intPtr(v); p != nil {
		return *p
	}
	return fallback
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstValue returns the first non-nil value, mirroring JS "a ?? b ?? null".
func firstValue(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// asMap returns the value as a map, or an empty map when it is not one.
func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// asSlice returns the value as a slice, or nil when it is not one.
func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

// truncate bounds response bodies embedded in error messages.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
