package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AssetImages holds the image variants of an asset.
type AssetImages struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

// AssetDetail is the single-asset view. It is fetched per view and never cached.
type AssetDetail struct {
	ID                       string              `json:"id"`
	Name                     string              `json:"name"`
	Symbol                   string              `json:"symbol"`
	MarketCapRank            *int                `json:"market_cap_rank"`
	Images                   AssetImages         `json:"image"`
	Description              string              `json:"description"`
	CurrentPrice             decimal.Decimal     `json:"current_price"`
	PriceChangePercentage24h decimal.Decimal     `json:"price_change_percentage_24h"`
	MarketCap                decimal.Decimal     `json:"market_cap"`
	TotalVolume              decimal.Decimal     `json:"total_volume"`
	High24h                  decimal.Decimal     `json:"high_24h"`
	Low24h                   decimal.Decimal     `json:"low_24h"`
	CirculatingSupply        decimal.NullDecimal `json:"circulating_supply"`
	MaxSupply                decimal.NullDecimal `json:"max_supply"`
}

// Summary returns the description up to its first period, period included.
// The split is naive: "e.g." or "Inc." end the summary early.
func (d AssetDetail) Summary() string {
	if d.Description == "" {
		return ""
	}
	first, _, _ := strings.Cut(d.Description, ".")
	return first + "."
}
