package restapi

import (
	"context"
	"errors"
	"net/http"

	"coinboard/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

const (
	msgMarketFetchFailed = "Failed to fetch market data. Please try again later."
	msgNotFound          = "Asset not found."
	msgBadRequest        = "Invalid request parameters."
	msgWatchlistFailed   = "Failed to update watchlist."
	msgTimeout           = "Request timed out."
)

// APIErrorResponse is the body of every non-2xx answer.
type APIErrorResponse struct {
	StatusMessage string `json:"status_message"`
	Error         string `json:"error"`
}

// APIResponse wraps successful payloads.
type APIResponse struct {
	Data          any    `json:"data"`
	StatusMessage string `json:"status_message,omitempty"`
}

// respondError maps err onto a status code. fallback is the message for failures that are
// neither caller mistakes nor provider trouble.
func respondError(c *gin.Context, err error, fallback string) {
	status, message := http.StatusInternalServerError, fallback
	switch {
	case errors.Is(err, entity.ErrNotFound):
		status, message = http.StatusNotFound, msgNotFound
	case errors.Is(err, entity.ErrInvalidArgument):
		status, message = http.StatusBadRequest, msgBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusGatewayTimeout, msgTimeout
	case entity.IsProviderError(err):
		status, message = http.StatusBadGateway, msgMarketFetchFailed
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, APIErrorResponse{StatusMessage: message, Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, APIErrorResponse{StatusMessage: msgBadRequest, Error: err.Error()})
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Data: data})
}
