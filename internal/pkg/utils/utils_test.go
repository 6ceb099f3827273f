package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUSD(t *testing.T) {
	tests := map[string]string{
		"64123.456":  "$64,123.46",
		"1":          "$1.00",
		"0.0001234":  "$0.000123",
		"1234567.5":  "$1,234,567.50",
		"999.999":    "$1,000.00",
		"-12.5":      "-$12.50",
		"-0.5":       "-$0.500000",
		"0":          "$0.000000",
		"100":        "$100.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatUSD(decimal.RequireFromString(in)), in)
	}
}

func TestFormatCompactUSD(t *testing.T) {
	tests := map[string]string{
		"1234567890": "$1.23B",
		"5500000":    "$5.50M",
		"1000":       "$1.00K",
		"999.5":      "$999.50",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatCompactUSD(decimal.RequireFromString(in)), in)
	}
}

func TestFormatSupply(t *testing.T) {
	assert.Equal(t, "N/A", FormatSupply(decimal.NullDecimal{}))
	assert.Equal(t, "N/A", FormatSupply(decimal.NewNullDecimal(decimal.Zero)))
	assert.Equal(t, "21.00M", FormatSupply(decimal.NewNullDecimal(decimal.NewFromInt(21_000_000))))
	assert.Equal(t, "512.5", FormatSupply(decimal.NewNullDecimal(decimal.RequireFromString("512.5"))))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "3.14%", FormatPercent(decimal.RequireFromString("-3.14159")))
	assert.Equal(t, "0.00%", FormatPercent(decimal.Zero))
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"bitcoin", "ethereum"}, UniqueStrings([]string{" bitcoin", "", "ethereum", "bitcoin "}))
	assert.Empty(t, UniqueStrings(nil))
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.json")
	require.NoError(t, os.WriteFile(path, []byte(`["bitcoin","solana"]`), 0o600))

	got, err := LoadJSON[[]string](path)
	require.NoError(t, err)
	assert.Equal(t, []string{"bitcoin", "solana"}, got)

	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
	_, err = LoadJSON[[]string](path)
	assert.ErrorContains(t, err, "failed to decode")
}
