package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MarketEntry is one row of aggregate market data for one asset at fetch time.
// Values are replaced wholesale on every fetch and never mutated in place.
type MarketEntry struct {
	ID                       string          `json:"id"`
	Name                     string          `json:"name"`
	Symbol                   string          `json:"symbol"`
	Image                    string          `json:"image"`
	CurrentPrice             decimal.Decimal `json:"current_price"`
	PriceChangePercentage24h decimal.Decimal `json:"price_change_percentage_24h"`
	MarketCap                decimal.Decimal `json:"market_cap"`
	MarketCapRank            *int            `json:"market_cap_rank"`
	TotalVolume              decimal.Decimal `json:"total_volume"`
}

// MaxPageSize is the largest page the provider serves in one market request.
const MaxPageSize = 250

// SortKey is the provider-side ordering of the market list.
type SortKey string

const (
	SortMarketCapDesc     SortKey = "market_cap_desc"
	SortMarketCapAsc      SortKey = "market_cap_asc"
	SortPriceDesc         SortKey = "price_desc"
	SortPriceAsc          SortKey = "price_asc"
	SortPercentChangeDesc SortKey = "percent_change_desc"
	SortPercentChangeAsc  SortKey = "percent_change_asc"
)

// DefaultSortKey is used when no sort key was chosen.
const DefaultSortKey = SortMarketCapDesc

var validSortKeys = map[SortKey]struct{}{
	SortMarketCapDesc:     {},
	SortMarketCapAsc:      {},
	SortPriceDesc:         {},
	SortPriceAsc:          {},
	SortPercentChangeDesc: {},
	SortPercentChangeAsc:  {},
}

// Valid reports whether k is one of the known sort keys.
func (k SortKey) Valid() bool {
	_, ok := validSortKeys[k]
	return ok
}

// ParseSortKey converts raw input into a SortKey. An empty string yields the default key.
func ParseSortKey(raw string) (SortKey, error) {
	if raw == "" {
		return DefaultSortKey, nil
	}
	k := SortKey(raw)
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidArgument, raw)
	}
	return k, nil
}

// SearchResult is a lightweight match returned by the provider search endpoint.
type SearchResult struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Thumb         string `json:"thumb"`
	MarketCapRank *int   `json:"market_cap_rank"`
}
