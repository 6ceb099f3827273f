package service

import (
	"context"
	"testing"

	"coinboard/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetViewSelectAsset(t *testing.T) {
	c := &fakeClient{
		detail: func(_ context.Context, id string) (entity.AssetDetail, error) {
			return entity.AssetDetail{ID: id, Name: "Bitcoin", Description: "Bitcoin is the first cryptocurrency. It was created in 2009."}, nil
		},
	}
	v := NewAssetView(c, nopLogger{}, entity.DefaultChartRange)

	require.NoError(t, v.SelectAsset(context.Background(), "bitcoin"))

	snap := v.Snapshot()
	assert.Equal(t, "bitcoin", snap.AssetID)
	assert.Equal(t, entity.ChartRange7D, snap.RangeDays)
	require.NotNil(t, snap.Detail)
	assert.Equal(t, "Bitcoin is the first cryptocurrency.", snap.Summary)
	require.NotNil(t, snap.Chart)
	assert.Equal(t, entity.ChartRange7D, snap.Chart.RangeDays)
	assert.False(t, snap.DetailLoading)
	assert.False(t, snap.ChartLoading)
}

func TestAssetViewRangeResetsOnNewAsset(t *testing.T) {
	v := NewAssetView(&fakeClient{}, nopLogger{}, entity.DefaultChartRange)
	ctx := context.Background()

	require.NoError(t, v.SelectAsset(ctx, "bitcoin"))
	require.NoError(t, v.SelectRange(ctx, entity.ChartRange90D))
	assert.Equal(t, entity.ChartRange90D, v.Snapshot().Chart.RangeDays)

	require.NoError(t, v.SelectAsset(ctx, "ethereum"))
	snap := v.Snapshot()
	assert.Equal(t, entity.ChartRange7D, snap.RangeDays)
	assert.Equal(t, "ethereum", snap.Chart.AssetID)
}

func TestAssetViewSelectRangeValidation(t *testing.T) {
	v := NewAssetView(&fakeClient{}, nopLogger{}, entity.DefaultChartRange)
	ctx := context.Background()

	assert.ErrorIs(t, v.SelectRange(ctx, entity.ChartRange30D), entity.ErrInvalidArgument, "no asset selected")
	require.NoError(t, v.SelectAsset(ctx, "bitcoin"))
	assert.ErrorIs(t, v.SelectRange(ctx, entity.ChartRange(2)), entity.ErrInvalidArgument)
	assert.ErrorIs(t, v.SelectAsset(ctx, " "), entity.ErrInvalidArgument)
}

func TestAssetViewPartialFailure(t *testing.T) {
	c := &fakeClient{
		chart: func(context.Context, string, entity.ChartRange) (entity.ChartSeries, error) {
			return entity.ChartSeries{}, &entity.HTTPError{URL: "/coins/bitcoin/market_chart", StatusCode: 503}
		},
	}
	v := NewAssetView(c, nopLogger{}, entity.DefaultChartRange)

	err := v.SelectAsset(context.Background(), "bitcoin")
	require.Error(t, err)

	snap := v.Snapshot()
	assert.NotNil(t, snap.Detail, "detail survives a chart failure")
	assert.Empty(t, snap.DetailError)
	assert.Nil(t, snap.Chart)
	assert.Contains(t, snap.ChartError, "Failed to load chart data")
}

func TestAssetViewNotFound(t *testing.T) {
	c := &fakeClient{
		detail: func(context.Context, string) (entity.AssetDetail, error) {
			return entity.AssetDetail{}, entity.ErrNotFound
		},
	}
	v := NewAssetView(c, nopLogger{}, entity.DefaultChartRange)

	assert.ErrorIs(t, v.SelectAsset(context.Background(), "nope"), entity.ErrNotFound)
	assert.Contains(t, v.Snapshot().DetailError, "Failed to load coin details")
}

func TestAssetViewDiscardsStaleChart(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	c := &fakeClient{
		chart: func(_ context.Context, id string, r entity.ChartRange) (entity.ChartSeries, error) {
			if r == entity.ChartRange30D {
				close(started)
				<-release
			}
			return entity.ChartSeries{AssetID: id, RangeDays: r}, nil
		},
	}
	v := NewAssetView(c, nopLogger{}, entity.DefaultChartRange)
	ctx := context.Background()
	require.NoError(t, v.SelectAsset(ctx, "bitcoin"))

	done := make(chan error, 1)
	go func() { done <- v.SelectRange(ctx, entity.ChartRange30D) }()
	<-started

	require.NoError(t, v.SelectRange(ctx, entity.ChartRange1D))
	close(release)
	require.NoError(t, <-done)

	snap := v.Snapshot()
	assert.Equal(t, entity.ChartRange1D, snap.RangeDays)
	assert.Equal(t, entity.ChartRange1D, snap.Chart.RangeDays)
}
