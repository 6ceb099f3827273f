package restapi

import (
	"coinboard/internal/app/port"

	"github.com/gin-gonic/gin"
)

// WatchlistHandler serves the persisted watchlist.
type WatchlistHandler struct {
	watchlist port.WatchlistStore
	view      port.WatchlistViewService
}

func NewWatchlistHandler(w port.WatchlistStore, v port.WatchlistViewService) *WatchlistHandler {
	return &WatchlistHandler{watchlist: w, view: v}
}

type watchlistResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

func (h *WatchlistHandler) list() watchlistResponse {
	ids := h.watchlist.IDs()
	return watchlistResponse{IDs: ids, Count: len(ids)}
}

func (h *WatchlistHandler) List(c *gin.Context) {
	respondOK(c, h.list())
}

func (h *WatchlistHandler) Markets(c *gin.Context) {
	entries, err := h.view.Entries(c.Request.Context())
	if err != nil {
		respondError(c, err, msgMarketFetchFailed)
		return
	}
	respondOK(c, entries)
}

func (h *WatchlistHandler) Add(c *gin.Context) {
	if err := h.watchlist.Add(c.Param("id")); err != nil {
		respondError(c, err, msgWatchlistFailed)
		return
	}
	respondOK(c, h.list())
}

func (h *WatchlistHandler) Remove(c *gin.Context) {
	if err := h.watchlist.Remove(c.Param("id")); err != nil {
		respondError(c, err, msgWatchlistFailed)
		return
	}
	respondOK(c, h.list())
}

func (h *WatchlistHandler) Toggle(c *gin.Context) {
	added, err := h.watchlist.Toggle(c.Param("id"))
	if err != nil {
		respondError(c, err, msgWatchlistFailed)
		return
	}
	respondOK(c, gin.H{"id": c.Param("id"), "inWatchlist": added, "watchlist": h.list()})
}
