package service

import (
	"context"
	"fmt"

	"coinboard/internal/app/port"
	"coinboard/internal/domain/entity"
	"coinboard/internal/infrastructure/httpclient"
)

type watchlistViewImpl struct {
	client    httpclient.MarketDataClient
	watchlist port.WatchlistStore
	logger    port.Logger
	fetchSize int
}

// NewWatchlistView resolves watched ids against the top fetchSize assets by market cap.
func NewWatchlistView(c httpclient.MarketDataClient, w port.WatchlistStore, l port.Logger, fetchSize int) port.WatchlistViewService {
	if fetchSize <= 0 {
		fetchSize = WatchlistFetchSize
	}
	return &watchlistViewImpl{client: c, watchlist: w, logger: l, fetchSize: fetchSize}
}

// Entries returns the watched assets in provider order. Watched ids outside the fetched set are omitted.
func (v *watchlistViewImpl) Entries(ctx context.Context) ([]entity.MarketEntry, error) {
	if v.watchlist.Len() == 0 {
		return []entity.MarketEntry{}, nil
	}

	all, err := v.client.FetchMarkets(ctx, 1, v.fetchSize, entity.DefaultSortKey)
	if err != nil {
		v.logger.Error("Watchlist error", "error", err)
		return nil, fmt.Errorf("failed to fetch watchlist data: %w", err)
	}

	entries := make([]entity.MarketEntry, 0, v.watchlist.Len())
	for _, e := range all {
		if v.watchlist.Contains(e.ID) {
			entries = append(entries, e)
		}
	}
	if missing := v.watchlist.Len() - len(entries); missing > 0 {
		v.logger.Debug("Some watched assets are outside the fetched market set", "missing", missing, "fetchSize", v.fetchSize)
	}
	return entries, nil
}
