package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"coinboard/internal/app/port"
	"coinboard/internal/domain/entity"
	"coinboard/internal/infrastructure/httpclient"

	"golang.org/x/sync/errgroup"
)

const (
	detailLoadFailedMessage = "Failed to load coin details"
	chartLoadFailedMessage  = "Failed to load chart data"
)

// assetViewImpl implements port.AssetViewService.
// Detail and chart fetches are never cancelled; each carries a token and only the latest one is applied.
type assetViewImpl struct {
	client       httpclient.MarketDataClient
	logger       port.Logger
	defaultRange entity.ChartRange

	mu            sync.Mutex
	assetID       string
	rangeDays     entity.ChartRange
	detail        *entity.AssetDetail
	chart         *entity.ChartSeries
	detailLoading bool
	chartLoading  bool
	detailErr     string
	chartErr      string
	detailToken   uint64
	chartToken    uint64
}

// NewAssetView creates an empty asset view. An invalid defaultRange falls back to 7 days.
func NewAssetView(c httpclient.MarketDataClient, l port.Logger, defaultRange entity.ChartRange) port.AssetViewService {
	if !defaultRange.Valid() {
		defaultRange = entity.DefaultChartRange
	}
	return &assetViewImpl{
		client:       c,
		logger:       l,
		defaultRange: defaultRange,
		rangeDays:    defaultRange,
	}
}

// SelectAsset opens id with the default range, loading detail and chart concurrently.
// The returned error is the first failure; both parts record their own error message.
func (v *assetViewImpl) SelectAsset(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: empty asset id", entity.ErrInvalidArgument)
	}

	v.mu.Lock()
	v.assetID = id
	v.rangeDays = v.defaultRange
	v.detail, v.chart = nil, nil
	v.detailErr, v.chartErr = "", ""
	v.detailLoading, v.chartLoading = true, true
	v.detailToken++
	v.chartToken++
	detailToken, chartToken, rangeDays := v.detailToken, v.chartToken, v.rangeDays
	v.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		detail, err := v.client.FetchAssetDetail(ctx, id)
		v.applyDetail(detailToken, detail, err)
		return err
	})
	g.Go(func() error {
		series, err := v.client.FetchChart(ctx, id, rangeDays)
		v.applyChart(chartToken, series, err)
		return err
	})
	return g.Wait()
}

// SelectRange refetches only the chart of the open asset.
func (v *assetViewImpl) SelectRange(ctx context.Context, rangeDays entity.ChartRange) error {
	if !rangeDays.Valid() {
		return fmt.Errorf("%w: unsupported range %d days", entity.ErrInvalidArgument, rangeDays)
	}

	v.mu.Lock()
	if v.assetID == "" {
		v.mu.Unlock()
		return fmt.Errorf("%w: no asset selected", entity.ErrInvalidArgument)
	}
	v.rangeDays = rangeDays
	v.chartLoading = true
	v.chartErr = ""
	v.chartToken++
	token, id := v.chartToken, v.assetID
	v.mu.Unlock()

	series, err := v.client.FetchChart(ctx, id, rangeDays)
	v.applyChart(token, series, err)
	return err
}

// Snapshot implements port.AssetViewService.
func (v *assetViewImpl) Snapshot() entity.AssetSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	snap := entity.AssetSnapshot{
		AssetID:       v.assetID,
		RangeDays:     v.rangeDays,
		DetailLoading: v.detailLoading,
		ChartLoading:  v.chartLoading,
		DetailError:   v.detailErr,
		ChartError:    v.chartErr,
	}
	if v.detail != nil {
		d := *v.detail
		snap.Detail = &d
		snap.Summary = d.Summary()
	}
	if v.chart != nil {
		c := *v.chart
		c.Points = append([]entity.ChartPoint{}, v.chart.Points...)
		snap.Chart = &c
	}
	return snap
}

func (v *assetViewImpl) applyDetail(token uint64, detail entity.AssetDetail, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.detailToken {
		v.logger.Debug("Discarding stale asset detail", "assetId", detail.ID, "token", token, "latest", v.detailToken)
		return
	}
	v.detailLoading = false
	if err != nil {
		v.detailErr = fmt.Sprintf("%s: %v", detailLoadFailedMessage, err)
		v.logger.Error("Coin detail error", "assetId", v.assetID, "error", err)
		return
	}
	v.detail = &detail
}

func (v *assetViewImpl) applyChart(token uint64, series entity.ChartSeries, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.chartToken {
		v.logger.Debug("Discarding stale chart", "assetId", series.AssetID, "rangeDays", int(series.RangeDays), "token", token, "latest", v.chartToken)
		return
	}
	v.chartLoading = false
	if err != nil {
		v.chartErr = fmt.Sprintf("%s: %v", chartLoadFailedMessage, err)
		v.logger.Error("Chart error", "assetId", v.assetID, "rangeDays", int(v.rangeDays), "error", err)
		return
	}
	v.chart = &series
}
