package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the provider does not know the requested asset id.
	ErrNotFound = errors.New("asset not found")
	// ErrInvalidArgument marks caller mistakes that never reach the network.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NetworkError is a transport-level failure: no HTTP response was received.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error requesting %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RateLimitedError is the provider's HTTP 429 answer.
type RateLimitedError struct {
	URL string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited by provider at %s", e.URL)
}

// HTTPError is a non-2xx, non-429 response.
type HTTPError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API error: %d at %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("API error: %d at %s: %s", e.StatusCode, e.URL, e.Body)
}

// ParseError is a malformed response body or persisted value.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// HTTPStatus extracts the status code of an HTTPError anywhere in err's chain.
func HTTPStatus(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}

// IsProviderError reports whether err came from talking to the market-data provider.
func IsProviderError(err error) bool {
	var (
		netErr   *NetworkError
		rlErr    *RateLimitedError
		httpErr  *HTTPError
		parseErr *ParseError
	)
	return errors.As(err, &netErr) || errors.As(err, &rlErr) || errors.As(err, &httpErr) || errors.As(err, &parseErr)
}
