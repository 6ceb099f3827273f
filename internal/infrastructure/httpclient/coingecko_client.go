package httpclient

import (
	"context"

	"coinboard/internal/domain/entity"
)

// MarketDataClient defines the interface for interacting with the market-data provider.
// Every call hits the network; implementations keep no response cache.
type MarketDataClient interface {
	FetchMarkets(ctx context.Context, page, pageSize int, sortKey entity.SortKey) ([]entity.MarketEntry, error)
	FetchAssetDetail(ctx context.Context, id string) (entity.AssetDetail, error)
	FetchChart(ctx context.Context, id string, rangeDays entity.ChartRange) (entity.ChartSeries, error)
	Search(ctx context.Context, query string) ([]entity.SearchResult, error)
}
