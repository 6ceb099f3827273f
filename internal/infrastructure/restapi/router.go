package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterOptions controls the ambient parts of the router.
type RouterOptions struct {
	AllowOrigins   []string
	MetricsEnabled bool
}

// Handlers groups the route handlers.
type Handlers struct {
	Market    *MarketHandler
	AssetView *AssetViewHandler
	Watchlist *WatchlistHandler
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(h Handlers, logger *zap.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.AllowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}

	router.Use(cors.New(corsConfig), RequestID(), ZapLogger(logger), gin.Recovery())
	if opts.MetricsEnabled {
		router.Use(Metrics())
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	v1 := router.Group("/api/v1")
	{
		v1.GET("/markets", h.Market.GetMarkets)
		v1.GET("/search", h.Market.Search)
		v1.GET("/assets/:id", h.Market.GetAsset)
		v1.GET("/assets/:id/chart", h.Market.GetChart)

		dashboard := v1.Group("/dashboard")
		dashboard.GET("", h.Market.GetDashboard)
		dashboard.PATCH("/filters", h.Market.PatchFilters)
		dashboard.DELETE("/filters", h.Market.ClearFilters)
		dashboard.POST("/next", h.Market.NextPage)
		dashboard.POST("/prev", h.Market.PrevPage)
		dashboard.POST("/refresh", h.Market.Refresh)

		view := v1.Group("/view/asset")
		view.GET("", h.AssetView.GetView)
		view.POST("", h.AssetView.SelectAsset)
		view.POST("/range", h.AssetView.SelectRange)

		watchlist := v1.Group("/watchlist")
		watchlist.GET("", h.Watchlist.List)
		watchlist.GET("/markets", h.Watchlist.Markets)
		watchlist.PUT("/:id", h.Watchlist.Add)
		watchlist.DELETE("/:id", h.Watchlist.Remove)
		watchlist.POST("/:id/toggle", h.Watchlist.Toggle)
	}

	return router
}
