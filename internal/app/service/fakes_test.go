package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"coinboard/internal/domain/entity"

	"github.com/shopspring/decimal"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type marketsCall struct {
	Page     int
	PageSize int
	SortKey  entity.SortKey
}

// fakeClient answers from function fields and records market calls.
type fakeClient struct {
	mu          sync.Mutex
	calls       []marketsCall
	markets     func(ctx context.Context, page, pageSize int, sortKey entity.SortKey) ([]entity.MarketEntry, error)
	detail      func(ctx context.Context, id string) (entity.AssetDetail, error)
	chart       func(ctx context.Context, id string, rangeDays entity.ChartRange) (entity.ChartSeries, error)
	search      func(ctx context.Context, query string) ([]entity.SearchResult, error)
	searchCalls int
}

func (f *fakeClient) FetchMarkets(ctx context.Context, page, pageSize int, sortKey entity.SortKey) ([]entity.MarketEntry, error) {
	f.mu.Lock()
	f.calls = append(f.calls, marketsCall{Page: page, PageSize: pageSize, SortKey: sortKey})
	fn := f.markets
	f.mu.Unlock()
	if fn == nil {
		return generateEntries(page, pageSize, pageSize), nil
	}
	return fn(ctx, page, pageSize, sortKey)
}

func (f *fakeClient) FetchAssetDetail(ctx context.Context, id string) (entity.AssetDetail, error) {
	if f.detail == nil {
		return entity.AssetDetail{ID: id, Name: id}, nil
	}
	return f.detail(ctx, id)
}

func (f *fakeClient) FetchChart(ctx context.Context, id string, rangeDays entity.ChartRange) (entity.ChartSeries, error) {
	if f.chart == nil {
		return entity.ChartSeries{AssetID: id, RangeDays: rangeDays}, nil
	}
	return f.chart(ctx, id, rangeDays)
}

func (f *fakeClient) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()
	if f.search == nil {
		return []entity.SearchResult{}, nil
	}
	return f.search(ctx, query)
}

func (f *fakeClient) marketCalls() []marketsCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]marketsCall(nil), f.calls...)
}

// generateEntries builds n rows for page with ids "coin-<rank>".
func generateEntries(page, pageSize, n int) []entity.MarketEntry {
	entries := make([]entity.MarketEntry, 0, n)
	for i := 0; i < n; i++ {
		rank := (page-1)*pageSize + i + 1
		entries = append(entries, entity.MarketEntry{
			ID:                       fmt.Sprintf("coin-%d", rank),
			Name:                     fmt.Sprintf("Coin %d", rank),
			Symbol:                   fmt.Sprintf("c%d", rank),
			CurrentPrice:             decimal.NewFromInt(int64(rank)),
			PriceChangePercentage24h: decimal.NewFromInt(int64(rank % 10)),
			MarketCapRank:            &rank,
		})
	}
	return entries
}

func entry(id, name, symbol string, change int64) entity.MarketEntry {
	return entity.MarketEntry{
		ID:                       id,
		Name:                     name,
		Symbol:                   symbol,
		PriceChangePercentage24h: decimal.NewFromInt(change),
	}
}

func ids(entries []entity.MarketEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

var errStoreDown = errors.New("store unavailable")

// memKV is a map-backed port.KeyValueStore that can be told to fail writes.
type memKV struct {
	mu       sync.Mutex
	values   map[string]string
	failSets bool
}

func newMemKV() *memKV {
	return &memKV{values: make(map[string]string)}
}

func (m *memKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSets {
		return errStoreDown
	}
	m.values[key] = value
	return nil
}

func (m *memKV) Close() error { return nil }
