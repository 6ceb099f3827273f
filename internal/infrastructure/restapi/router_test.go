package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coinboard/internal/app/service"
	"coinboard/internal/domain/entity"
	"coinboard/internal/infrastructure/kvstore"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// stubClient serves a fixed market and fails for the "broken" asset.
type stubClient struct {
	marketsErr error
}

var stubMarket = []entity.MarketEntry{
	{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", PriceChangePercentage24h: decimal.NewFromInt(2)},
	{ID: "ethereum", Name: "Ethereum", Symbol: "eth", PriceChangePercentage24h: decimal.NewFromInt(-4)},
	{ID: "solana", Name: "Solana", Symbol: "sol", PriceChangePercentage24h: decimal.NewFromInt(12)},
}

func (s *stubClient) FetchMarkets(_ context.Context, page, pageSize int, _ entity.SortKey) ([]entity.MarketEntry, error) {
	if s.marketsErr != nil {
		return nil, s.marketsErr
	}
	if page > 1 {
		return []entity.MarketEntry{}, nil
	}
	if pageSize < len(stubMarket) {
		return stubMarket[:pageSize], nil
	}
	return stubMarket, nil
}

func (s *stubClient) FetchAssetDetail(_ context.Context, id string) (entity.AssetDetail, error) {
	switch id {
	case "bitcoin":
		return entity.AssetDetail{ID: id, Name: "Bitcoin", Description: "Peer-to-peer cash. Since 2009."}, nil
	case "broken":
		return entity.AssetDetail{}, &entity.HTTPError{URL: "/coins/broken", StatusCode: 500}
	default:
		return entity.AssetDetail{}, entity.ErrNotFound
	}
}

func (s *stubClient) FetchChart(_ context.Context, id string, r entity.ChartRange) (entity.ChartSeries, error) {
	if id != "bitcoin" {
		return entity.ChartSeries{}, entity.ErrNotFound
	}
	return entity.ChartSeries{AssetID: id, RangeDays: r, Points: []entity.ChartPoint{{Timestamp: 1, Price: decimal.NewFromInt(1)}}}, nil
}

func (s *stubClient) Search(_ context.Context, q string) ([]entity.SearchResult, error) {
	return []entity.SearchResult{{ID: q, Name: q}}, nil
}

func newTestRouter(t *testing.T, c *stubClient) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	wl := service.NewWatchlistService(kvstore.NewMemory(), nopLogger{})
	require.NoError(t, wl.Load())
	h := Handlers{
		Market:    NewMarketHandler(service.NewMarketService(c, nopLogger{}, service.MarketServiceOptions{PageSize: 2}), 50),
		AssetView: NewAssetViewHandler(service.NewAssetView(c, nopLogger{}, entity.DefaultChartRange)),
		Watchlist: NewWatchlistHandler(wl, service.NewWatchlistView(c, wl, nopLogger{}, 250)),
	}
	return SetupRouter(h, zap.NewNop(), RouterOptions{MetricsEnabled: true})
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	}
	return w, decoded
}

func TestGetMarketsFilters(t *testing.T) {
	r := newTestRouter(t, &stubClient{})

	w, body := do(t, r, http.MethodGet, "/api/v1/markets?min_change=0&search=o", "")
	require.Equal(t, http.StatusOK, w.Code)
	entries := body["data"].(map[string]any)["entries"].([]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "bitcoin", entries[0].(map[string]any)["id"])
	assert.Equal(t, "solana", entries[1].(map[string]any)["id"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestGetMarketsBadParams(t *testing.T) {
	r := newTestRouter(t, &stubClient{})
	for _, q := range []string{"sort=volume_desc", "page=0", "per_page=abc", "per_page=251", "per_page=100000", "min_change=lots"} {
		w, body := do(t, r, http.MethodGet, "/api/v1/markets?"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Equal(t, msgBadRequest, body["status_message"], q)
	}

	w, body := do(t, r, http.MethodGet, "/api/v1/markets?per_page=250", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 250, body["data"].(map[string]any)["per_page"])
}

func TestProviderFailureIsBadGateway(t *testing.T) {
	r := newTestRouter(t, &stubClient{marketsErr: &entity.RateLimitedError{URL: "/coins/markets"}})

	w, body := do(t, r, http.MethodPost, "/api/v1/dashboard/refresh", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, msgMarketFetchFailed, body["status_message"])
	assert.Contains(t, body["error"], "rate limited")
}

func TestAssetEndpoints(t *testing.T) {
	r := newTestRouter(t, &stubClient{})

	w, body := do(t, r, http.MethodGet, "/api/v1/assets/bitcoin", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Peer-to-peer cash.", body["data"].(map[string]any)["summary"])

	w, _ = do(t, r, http.MethodGet, "/api/v1/assets/dogecoin-classic", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/assets/broken", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/assets/bitcoin/chart?days=14", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = do(t, r, http.MethodGet, "/api/v1/assets/bitcoin/chart?days=30", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 30, body["data"].(map[string]any)["rangeDays"])
}

func TestDashboardSession(t *testing.T) {
	r := newTestRouter(t, &stubClient{})

	w, body := do(t, r, http.MethodPost, "/api/v1/dashboard/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	snap := body["data"].(map[string]any)
	assert.Len(t, snap["entries"], 2)
	assert.Equal(t, true, snap["canNext"])

	w, body = do(t, r, http.MethodPatch, "/api/v1/dashboard/filters", `{"sortBy":"price_asc","minChange":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	snap = body["data"].(map[string]any)
	assert.Len(t, snap["entries"], 1)
	assert.Equal(t, "price_asc", snap["filters"].(map[string]any)["sortBy"])

	w, _ = do(t, r, http.MethodPatch, "/api/v1/dashboard/filters", `{"sortBy":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = do(t, r, http.MethodDelete, "/api/v1/dashboard/filters", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["data"].(map[string]any)["hasActiveFilters"])

	w, body = do(t, r, http.MethodPost, "/api/v1/dashboard/next", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, body["data"].(map[string]any)["page"])
}

func TestPatchFiltersMergesBounds(t *testing.T) {
	r := newTestRouter(t, &stubClient{})
	w, _ := do(t, r, http.MethodPost, "/api/v1/dashboard/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodPatch, "/api/v1/dashboard/filters", `{"minChange":-5}`)
	require.Equal(t, http.StatusOK, w.Code)
	w, body := do(t, r, http.MethodPatch, "/api/v1/dashboard/filters", `{"maxChange":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	snap := body["data"].(map[string]any)
	filters := snap["filters"].(map[string]any)
	assert.NotNil(t, filters["minChange"])
	assert.NotNil(t, filters["maxChange"])
	entries := snap["entries"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "ethereum", entries[0].(map[string]any)["id"])

	w, body = do(t, r, http.MethodPatch, "/api/v1/dashboard/filters", `{"clearBounds":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"].(map[string]any)["entries"], 2)
	assert.Equal(t, false, body["data"].(map[string]any)["hasActiveFilters"])
}

func TestWatchlistEndpoints(t *testing.T) {
	r := newTestRouter(t, &stubClient{})

	w, _ := do(t, r, http.MethodPut, "/api/v1/watchlist/solana", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, body := do(t, r, http.MethodPost, "/api/v1/watchlist/bitcoin/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["data"].(map[string]any)["inWatchlist"])

	w, body = do(t, r, http.MethodGet, "/api/v1/watchlist/markets", "")
	require.Equal(t, http.StatusOK, w.Code)
	entries := body["data"].([]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "bitcoin", entries[0].(map[string]any)["id"], "provider order wins over insertion order")

	w, body = do(t, r, http.MethodDelete, "/api/v1/watchlist/solana", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["data"].(map[string]any)["count"])
}

func TestAssetViewEndpoints(t *testing.T) {
	r := newTestRouter(t, &stubClient{})

	w, _ := do(t, r, http.MethodPost, "/api/v1/view/asset/range", `{"days":30}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "no asset selected yet")

	w, body := do(t, r, http.MethodPost, "/api/v1/view/asset", `{"id":"bitcoin"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 7, body["data"].(map[string]any)["rangeDays"])

	w, body = do(t, r, http.MethodPost, "/api/v1/view/asset/range", `{"days":90}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 90, body["data"].(map[string]any)["rangeDays"])

	w, _ = do(t, r, http.MethodPost, "/api/v1/view/asset", `{"id":"nothing-here"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, &stubClient{})
	w, _ := do(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
