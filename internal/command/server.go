package command

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"coinboard/internal/infrastructure/restapi"

	clipkg "github.com/urfave/cli"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// RunServer serves the REST API until SIGINT or SIGTERM.
func (cli *Client) RunServer(c *clipkg.Context) error {
	app, err := cli.newApplication()
	if err != nil {
		return cli.errorOut(err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// первая страница грузится в фоне, сервер стартует сразу
	go func() {
		if err := app.Market.Refresh(ctx); err != nil {
			app.Logger.Warn("Initial market page load failed", zap.Error(err))
		}
	}()

	cfg := app.Config
	router := restapi.SetupRouter(restapi.Handlers{
		Market:    restapi.NewMarketHandler(app.Market, cfg.Dashboard.PageSize),
		AssetView: restapi.NewAssetViewHandler(app.AssetView),
		Watchlist: restapi.NewWatchlistHandler(app.Watchlist, app.WatchlistView),
	}, app.Logger, restapi.RouterOptions{
		AllowOrigins:   cfg.Server.AllowOrigins,
		MetricsEnabled: cfg.Metrics.Enabled,
	})

	srv := &http.Server{
		Addr:         listenAddr(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.Logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return cli.errorOut(err)
		}
		return nil
	case <-ctx.Done():
	}

	app.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return cli.errorOut(err)
	}
	app.Logger.Info("Server exiting")
	return nil
}

// listenAddr accepts "8080" as well as "host:8080".
func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
