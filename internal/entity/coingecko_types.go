package entity

import "github.com/shopspring/decimal"

// CoinGeckoUSDQuote is a per-currency value map narrowed to USD.
type CoinGeckoUSDQuote struct {
	USD decimal.Decimal `json:"usd"`
}

// CoinGeckoCoinDetail is the /coins/{id} payload with only the fields the dashboard reads.
type CoinGeckoCoinDetail struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank *int   `json:"market_cap_rank"`
	Image         struct {
		Thumb string `json:"thumb"`
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"image"`
	Description struct {
		En string `json:"en"`
	} `json:"description"`
	MarketData CoinGeckoMarketData `json:"market_data"`
}

// CoinGeckoMarketData is the market_data block of a coin detail.
type CoinGeckoMarketData struct {
	CurrentPrice             CoinGeckoUSDQuote   `json:"current_price"`
	PriceChangePercentage24h decimal.Decimal     `json:"price_change_percentage_24h"`
	MarketCap                CoinGeckoUSDQuote   `json:"market_cap"`
	TotalVolume              CoinGeckoUSDQuote   `json:"total_volume"`
	High24h                  CoinGeckoUSDQuote   `json:"high_24h"`
	Low24h                   CoinGeckoUSDQuote   `json:"low_24h"`
	CirculatingSupply        decimal.NullDecimal `json:"circulating_supply"`
	MaxSupply                decimal.NullDecimal `json:"max_supply"`
}

// CoinGeckoMarketChart is the /coins/{id}/market_chart payload.
// Each price sample is a [timestamp_ms, price] pair.
type CoinGeckoMarketChart struct {
	Prices       [][]decimal.Decimal `json:"prices"`
	MarketCaps   [][]decimal.Decimal `json:"market_caps"`
	TotalVolumes [][]decimal.Decimal `json:"total_volumes"`
}

// CoinGeckoSearchResponse is the /search payload; only coins are used.
type CoinGeckoSearchResponse struct {
	Coins []CoinGeckoSearchCoin `json:"coins"`
}

// CoinGeckoSearchCoin is one coin match of /search.
type CoinGeckoSearchCoin struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	APISymbol     string `json:"api_symbol"`
	Symbol        string `json:"symbol"`
	MarketCapRank *int   `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
	Large         string `json:"large"`
}
