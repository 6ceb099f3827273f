package service

import (
	"context"
	"testing"

	"coinboard/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlistViewEmptySkipsFetch(t *testing.T) {
	c := &fakeClient{}
	w := NewWatchlistService(newMemKV(), nopLogger{})
	require.NoError(t, w.Load())

	got, err := NewWatchlistView(c, w, nopLogger{}, 0).Entries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, c.marketCalls())
}

func TestWatchlistViewKeepsProviderOrder(t *testing.T) {
	c := &fakeClient{}
	w := NewWatchlistService(newMemKV(), nopLogger{})
	require.NoError(t, w.Load())
	for _, id := range []string{"coin-200", "coin-3", "coin-999"} {
		require.NoError(t, w.Add(id))
	}

	got, err := NewWatchlistView(c, w, nopLogger{}, 0).Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"coin-3", "coin-200"}, ids(got), "coin-999 is outside the top 250")
	assert.Equal(t, []marketsCall{{Page: 1, PageSize: WatchlistFetchSize, SortKey: entity.SortMarketCapDesc}}, c.marketCalls())
}

func TestWatchlistViewProviderError(t *testing.T) {
	c := &fakeClient{
		markets: func(context.Context, int, int, entity.SortKey) ([]entity.MarketEntry, error) {
			return nil, &entity.RateLimitedError{URL: "/coins/markets"}
		},
	}
	w := NewWatchlistService(newMemKV(), nopLogger{})
	require.NoError(t, w.Load())
	require.NoError(t, w.Add("bitcoin"))

	_, err := NewWatchlistView(c, w, nopLogger{}, 10).Entries(context.Background())
	var rl *entity.RateLimitedError
	assert.ErrorAs(t, err, &rl)
}
