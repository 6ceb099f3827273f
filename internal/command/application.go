package command

import (
	"fmt"

	"coinboard/internal/app/port"
	"coinboard/internal/app/service"
	"coinboard/internal/client"
	"coinboard/internal/domain/entity"
	"coinboard/internal/infrastructure/configloader"
	"coinboard/internal/infrastructure/httpclient"
	"coinboard/internal/infrastructure/kvstore"
	"coinboard/internal/pkg/logger"
	"coinboard/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Application is the wired set of services every command works with.
type Application struct {
	Config        *configloader.Config
	Logger        *zap.Logger
	Store         port.KeyValueStore
	MarketData    httpclient.MarketDataClient
	Market        port.MarketService
	AssetView     port.AssetViewService
	Watchlist     port.WatchlistStore
	WatchlistView port.WatchlistViewService
}

// Close releases the storage handle.
func (a *Application) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

// AppFactory builds an Application from loaded configuration.
type AppFactory interface {
	NewApplication(cfg *configloader.Config, zapLogger *zap.Logger) (*Application, error)
}

// CoinboardAppFactory wires the production services.
type CoinboardAppFactory struct{}

func (CoinboardAppFactory) NewApplication(cfg *configloader.Config, zapLogger *zap.Logger) (*Application, error) {
	if cfg.Metrics.Enabled {
		metrics.MustRegisterMetrics()
	}

	store, err := kvstore.Open(cfg.Storage)
	if err != nil {
		return nil, err
	}
	zapLogger.Info("Storage opened", zap.String("driver", cfg.Storage.Driver), zap.String("path", cfg.Storage.Path))

	marketData := client.NewCoinGeckoClient(client.Options{
		BaseURL:            cfg.CoinGecko.BaseURL,
		APIKey:             cfg.CoinGecko.APIKey,
		Timeout:            cfg.CoinGecko.RequestTimeout(),
		MaxAttempts:        cfg.CoinGecko.MaxAttempts,
		RetryDelay:         cfg.CoinGecko.RetryDelay(),
		RateLimitBaseDelay: cfg.CoinGecko.RateLimitBaseDelay(),
		RequestsPerMinute:  cfg.CoinGecko.RequestsPerMinute,
	}, zapLogger)

	watchlist := service.NewWatchlistService(store, logger.NewSlogAdapter("watchlist"))
	if err := watchlist.Load(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}

	return &Application{
		Config:     cfg,
		Logger:     zapLogger,
		Store:      store,
		MarketData: marketData,
		Market: service.NewMarketService(marketData, logger.NewSlogAdapter("market"), service.MarketServiceOptions{
			PageSize:       cfg.Dashboard.PageSize,
			SearchDebounce: cfg.Dashboard.SearchDebounce(),
		}),
		AssetView:     service.NewAssetView(marketData, logger.NewSlogAdapter("asset_view"), entity.ChartRange(cfg.Dashboard.DefaultChartDays)),
		Watchlist:     watchlist,
		WatchlistView: service.NewWatchlistView(marketData, watchlist, logger.NewSlogAdapter("watchlist_view"), cfg.Dashboard.WatchlistFetchSize),
	}, nil
}
