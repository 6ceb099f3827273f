package restapi

import (
	"coinboard/internal/app/port"
	"coinboard/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// AssetViewHandler serves the single-asset view session.
type AssetViewHandler struct {
	view port.AssetViewService
}

func NewAssetViewHandler(v port.AssetViewService) *AssetViewHandler {
	return &AssetViewHandler{view: v}
}

type selectAssetRequest struct {
	ID string `json:"id" binding:"required"`
}

type selectRangeRequest struct {
	Days int `json:"days" binding:"required"`
}

func (h *AssetViewHandler) GetView(c *gin.Context) {
	respondOK(c, h.view.Snapshot())
}

// SelectAsset answers with the snapshot even when one half failed; the failing half carries its error.
func (h *AssetViewHandler) SelectAsset(c *gin.Context) {
	var req selectAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.view.SelectAsset(c.Request.Context(), req.ID); err != nil {
		snap := h.view.Snapshot()
		if snap.Detail == nil && snap.Chart == nil {
			respondError(c, err, "Failed to load coin details")
			return
		}
		_ = c.Error(err)
	}
	respondOK(c, h.view.Snapshot())
}

func (h *AssetViewHandler) SelectRange(c *gin.Context) {
	var req selectRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.view.SelectRange(c.Request.Context(), entity.ChartRange(req.Days)); err != nil {
		respondError(c, err, "Failed to load chart data")
		return
	}
	respondOK(c, h.view.Snapshot())
}
