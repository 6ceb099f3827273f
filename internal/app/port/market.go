package port

import (
	"context"

	"coinboard/internal/domain/entity"
)

// MarketService is the market table session plus stateless provider lookups.
type MarketService interface {
	// Page fetches one page and filters it without touching the session.
	Page(ctx context.Context, page, pageSize int, spec entity.FilterSpec) ([]entity.MarketEntry, error)
	Search(ctx context.Context, query string) ([]entity.SearchResult, error)
	AssetDetail(ctx context.Context, id string) (entity.AssetDetail, error)
	Chart(ctx context.Context, id string, rangeDays entity.ChartRange) (entity.ChartSeries, error)

	Snapshot() entity.MarketSnapshot
	SetSearch(text string)
	SetSortKey(ctx context.Context, key entity.SortKey) error
	// UpdateChangeBounds merges update into the current bounds atomically.
	UpdateChangeBounds(update entity.BoundsUpdate)
	ClearFilters(ctx context.Context) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// AssetViewService holds the currently inspected asset and chart range.
type AssetViewService interface {
	SelectAsset(ctx context.Context, id string) error
	SelectRange(ctx context.Context, rangeDays entity.ChartRange) error
	Snapshot() entity.AssetSnapshot
}
