package client

import (
	"context"
	"errors"
	"time"

	"coinboard/internal/domain/entity"
)

// retryDelay returns how long to wait after a failed attempt (1-based) and the metric reason.
// A 429 backs off linearly with the attempt number; everything else waits a flat delay.
func (c *coinGeckoClientImpl) retryDelay(err error, attempt int) (time.Duration, string) {
	var rateLimited *entity.RateLimitedError
	if errors.As(err, &rateLimited) {
		return c.rateLimitBaseDelay * time.Duration(attempt), "rate_limited"
	}
	var httpErr *entity.HTTPError
	if errors.As(err, &httpErr) {
		return c.flatDelay, "http_error"
	}
	var parseErr *entity.ParseError
	if errors.As(err, &parseErr) {
		return c.flatDelay, "parse_error"
	}
	return c.flatDelay, "network_error"
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
