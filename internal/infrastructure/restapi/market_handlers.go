package restapi

import (
	"fmt"
	"strconv"
	"strings"

	"coinboard/internal/app/port"
	"coinboard/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MarketHandler serves the market table session and the stateless market lookups.
type MarketHandler struct {
	market          port.MarketService
	defaultPageSize int
}

func NewMarketHandler(ms port.MarketService, defaultPageSize int) *MarketHandler {
	return &MarketHandler{market: ms, defaultPageSize: defaultPageSize}
}

// filtersRequest is a partial update: absent fields keep their current value.
type filtersRequest struct {
	Search      *string          `json:"search"`
	SortBy      *string          `json:"sortBy"`
	MinChange   *decimal.Decimal `json:"minChange"`
	MaxChange   *decimal.Decimal `json:"maxChange"`
	ClearBounds bool             `json:"clearBounds"`
}

// GetMarkets fetches and filters one page without touching the session.
func (h *MarketHandler) GetMarkets(c *gin.Context) {
	page, err := intQuery(c, "page", 1, 0)
	if err != nil {
		badRequest(c, err)
		return
	}
	perPage, err := intQuery(c, "per_page", h.defaultPageSize, entity.MaxPageSize)
	if err != nil {
		badRequest(c, err)
		return
	}
	sortKey, err := entity.ParseSortKey(c.Query("sort"))
	if err != nil {
		badRequest(c, err)
		return
	}
	spec := entity.FilterSpec{Search: c.Query("search"), SortKey: sortKey}
	if spec.MinChange, err = decimalQuery(c, "min_change"); err != nil {
		badRequest(c, err)
		return
	}
	if spec.MaxChange, err = decimalQuery(c, "max_change"); err != nil {
		badRequest(c, err)
		return
	}

	entries, err := h.market.Page(c.Request.Context(), page, perPage, spec)
	if err != nil {
		respondError(c, err, msgMarketFetchFailed)
		return
	}
	respondOK(c, gin.H{"page": page, "per_page": perPage, "filters": spec, "entries": entries})
}

func (h *MarketHandler) GetDashboard(c *gin.Context) {
	respondOK(c, h.market.Snapshot())
}

func (h *MarketHandler) PatchFilters(c *gin.Context) {
	var req filtersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if req.SortBy != nil {
		key, err := entity.ParseSortKey(*req.SortBy)
		if err != nil {
			badRequest(c, err)
			return
		}
		if err := h.market.SetSortKey(c.Request.Context(), key); err != nil {
			respondError(c, err, msgMarketFetchFailed)
			return
		}
	}
	h.market.UpdateChangeBounds(entity.BoundsUpdate{Min: req.MinChange, Max: req.MaxChange, Clear: req.ClearBounds})
	if req.Search != nil {
		h.market.SetSearch(*req.Search)
	}
	respondOK(c, h.market.Snapshot())
}

func (h *MarketHandler) ClearFilters(c *gin.Context) {
	if err := h.market.ClearFilters(c.Request.Context()); err != nil {
		respondError(c, err, msgMarketFetchFailed)
		return
	}
	respondOK(c, h.market.Snapshot())
}

func (h *MarketHandler) NextPage(c *gin.Context) {
	if err := h.market.NextPage(c.Request.Context()); err != nil {
		respondError(c, err, msgMarketFetchFailed)
		return
	}
	respondOK(c, h.market.Snapshot())
}

func (h *MarketHandler) PrevPage(c *gin.Context) {
	if err := h.market.PrevPage(c.Request.Context()); err != nil {
		respondError(c, err, msgMarketFetchFailed)
		return
	}
	respondOK(c, h.market.Snapshot())
}

func (h *MarketHandler) Refresh(c *gin.Context) {
	if err := h.market.Refresh(c.Request.Context()); err != nil {
		respondError(c, err, msgMarketFetchFailed)
		return
	}
	respondOK(c, h.market.Snapshot())
}

func (h *MarketHandler) GetAsset(c *gin.Context) {
	detail, err := h.market.AssetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load coin details")
		return
	}
	respondOK(c, gin.H{"asset": detail, "summary": detail.Summary()})
}

func (h *MarketHandler) GetChart(c *gin.Context) {
	rangeDays, err := entity.ParseChartRange(c.Query("days"))
	if err != nil {
		badRequest(c, err)
		return
	}
	series, err := h.market.Chart(c.Request.Context(), c.Param("id"), rangeDays)
	if err != nil {
		respondError(c, err, "Failed to load chart data")
		return
	}
	respondOK(c, series)
}

func (h *MarketHandler) Search(c *gin.Context) {
	results, err := h.market.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, msgMarketFetchFailed)
		return
	}
	respondOK(c, results)
}

// intQuery parses a positive integer query parameter. A limit of 0 means unbounded.
func intQuery(c *gin.Context, name string, def, limit int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", entity.ErrInvalidArgument, name, raw)
	}
	if limit > 0 && v > limit {
		return 0, fmt.Errorf("%w: %s must be at most %d, got %d", entity.ErrInvalidArgument, name, limit, v)
	}
	return v, nil
}

func decimalQuery(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number, got %q", entity.ErrInvalidArgument, name, raw)
	}
	return &d, nil
}
