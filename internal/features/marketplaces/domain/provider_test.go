package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseProvider accepts every known identifier and rejects the rest.
func TestParseProvider(t *testing.T) {
	for _, known := range AllProviders {
		p, err := ParseProvider(known.String())
		require.NoError(t, err)
		assert.Equal(t, known, p)
	}

	_, err := ParseProvider("etsy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "etsy")

	_, err = ParseProvider("")
	assert.Error(t, err)
}
