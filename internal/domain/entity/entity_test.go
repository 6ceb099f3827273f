package entity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortMarketCapDesc, k)

	for _, raw := range []string{"market_cap_asc", "price_desc", "price_asc", "percent_change_desc", "percent_change_asc"} {
		k, err := ParseSortKey(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, SortKey(raw), k)
	}

	_, err = ParseSortKey("volume_desc")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseChartRange(t *testing.T) {
	tests := []struct {
		raw     string
		want    ChartRange
		wantErr bool
	}{
		{raw: "", want: ChartRange7D},
		{raw: "1", want: ChartRange1D},
		{raw: "30", want: ChartRange30D},
		{raw: "90", want: ChartRange90D},
		{raw: "14", wantErr: true},
		{raw: "week", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseChartRange(tt.raw)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidArgument, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestChartRangeIntervalAndLabel(t *testing.T) {
	assert.Equal(t, "hourly", ChartRange1D.Interval())
	assert.Equal(t, "daily", ChartRange7D.Interval())
	assert.Equal(t, "24H", ChartRange1D.Label())
	assert.Equal(t, "90D", ChartRange90D.Label())
}

func TestAssetDetailSummary(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{description: "", want: ""},
		{description: "Bitcoin is digital money. It has a cap.", want: "Bitcoin is digital money."},
		{description: "No period here", want: "No period here."},
		{description: "Made by Foo Inc. in 2020.", want: "Made by Foo Inc."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AssetDetail{Description: tt.description}.Summary())
	}
}

func TestFilterSpecHasActiveFilters(t *testing.T) {
	assert.False(t, DefaultFilterSpec().HasActiveFilters())
	assert.False(t, FilterSpec{SortKey: SortPriceAsc}.HasActiveFilters(), "sort key is not a filter")
	assert.True(t, FilterSpec{Search: "btc"}.HasActiveFilters())
}

func TestProviderErrorHelpers(t *testing.T) {
	wrapped := fmt.Errorf("markets: %w", &HTTPError{URL: "/x", StatusCode: 503})
	status, ok := HTTPStatus(wrapped)
	assert.True(t, ok)
	assert.Equal(t, 503, status)
	assert.True(t, IsProviderError(wrapped))

	_, ok = HTTPStatus(ErrNotFound)
	assert.False(t, ok)
	assert.False(t, IsProviderError(ErrNotFound))
	assert.True(t, IsProviderError(&RateLimitedError{URL: "/x"}))
	assert.True(t, IsProviderError(&ParseError{Source: "body", Err: fmt.Errorf("eof")}))
}
