package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"coinboard/internal/domain/entity"
	cgtypes "coinboard/internal/entity"
	"coinboard/internal/infrastructure/httpclient"
	"coinboard/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultBaseURL is the public CoinGecko v3 API.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	apiKeyParam = "x_cg_demo_api_key"
	vsCurrency  = "usd"

	defaultTimeout            = 10 * time.Second
	defaultMaxAttempts        = 3
	defaultRetryDelay         = time.Second
	defaultRateLimitBaseDelay = time.Second

	maxLoggedBody = 512
)

const (
	endpointMarkets = "markets"
	endpointDetail  = "coin_detail"
	endpointChart   = "market_chart"
	endpointSearch  = "search"
)

// Options configures the CoinGecko client. Zero values fall back to defaults.
type Options struct {
	BaseURL            string
	APIKey             string
	Timeout            time.Duration
	MaxAttempts        int
	RetryDelay         time.Duration
	RateLimitBaseDelay time.Duration
	// RequestsPerMinute paces outgoing attempts; 0 disables pacing.
	RequestsPerMinute int
	// Sleep replaces the wait between attempts. Used by tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// coinGeckoClientImpl is the implementation of httpclient.MarketDataClient.
type coinGeckoClientImpl struct {
	client             *fasthttp.Client
	baseURL            string
	apiKey             string
	timeout            time.Duration
	maxAttempts        int
	flatDelay          time.Duration
	rateLimitBaseDelay time.Duration
	limiter            *rate.Limiter
	sleep              func(ctx context.Context, d time.Duration) error
	logger             *zap.Logger
}

// NewCoinGeckoClient creates a new instance of coinGeckoClientImpl.
func NewCoinGeckoClient(opts Options, logger *zap.Logger) httpclient.MarketDataClient {
	c := &coinGeckoClientImpl{
		client:             &fasthttp.Client{Name: "coinboard"},
		baseURL:            strings.TrimRight(opts.BaseURL, "/"),
		apiKey:             opts.APIKey,
		timeout:            opts.Timeout,
		maxAttempts:        opts.MaxAttempts,
		flatDelay:          opts.RetryDelay,
		rateLimitBaseDelay: opts.RateLimitBaseDelay,
		sleep:              opts.Sleep,
		logger:             logger.Named("CoinGeckoClient"),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if c.flatDelay <= 0 {
		c.flatDelay = defaultRetryDelay
	}
	if c.rateLimitBaseDelay <= 0 {
		c.rateLimitBaseDelay = defaultRateLimitBaseDelay
	}
	if c.sleep == nil {
		c.sleep = sleepContext
	}
	if opts.RequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}
	return c
}

// FetchMarkets implements the httpclient.MarketDataClient interface.
func (c *coinGeckoClientImpl) FetchMarkets(ctx context.Context, page, pageSize int, sortKey entity.SortKey) ([]entity.MarketEntry, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: page %d and page size %d must be positive", entity.ErrInvalidArgument, page, pageSize)
	}
	if sortKey == "" {
		sortKey = entity.DefaultSortKey
	}
	params := url.Values{}
	params.Set("vs_currency", vsCurrency)
	params.Set("order", string(sortKey))
	params.Set("per_page", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page))
	params.Set("sparkline", "false")
	params.Set("price_change_percentage", "24h")

	entries, err := getJSON[[]entity.MarketEntry](ctx, c, endpointMarkets, "/coins/markets", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch markets page %d: %w", page, err)
	}
	if len(entries) > pageSize {
		c.logger.Warn("Provider returned more entries than requested, truncating",
			zap.Int("requested", pageSize),
			zap.Int("received", len(entries)))
		entries = entries[:pageSize]
	}
	c.logger.Debug("Fetched markets page",
		zap.Int("page", page),
		zap.Int("pageSize", pageSize),
		zap.String("sortKey", string(sortKey)),
		zap.Int("count", len(entries)))
	return entries, nil
}

// FetchAssetDetail implements the httpclient.MarketDataClient interface.
func (c *coinGeckoClientImpl) FetchAssetDetail(ctx context.Context, id string) (entity.AssetDetail, error) {
	if strings.TrimSpace(id) == "" {
		return entity.AssetDetail{}, fmt.Errorf("empty asset id: %w", entity.ErrNotFound)
	}
	params := url.Values{}
	params.Set("localization", "false")
	params.Set("tickers", "false")
	params.Set("market_data", "true")
	params.Set("community_data", "false")
	params.Set("developer_data", "false")
	params.Set("sparkline", "false")

	raw, err := getJSON[cgtypes.CoinGeckoCoinDetail](ctx, c, endpointDetail, "/coins/"+url.PathEscape(id), params)
	if err != nil {
		if status, ok := entity.HTTPStatus(err); ok && status == fasthttp.StatusNotFound {
			return entity.AssetDetail{}, fmt.Errorf("asset %q: %w", id, entity.ErrNotFound)
		}
		return entity.AssetDetail{}, fmt.Errorf("failed to fetch asset %q: %w", id, err)
	}

	md := raw.MarketData
	return entity.AssetDetail{
		ID:                       raw.ID,
		Name:                     raw.Name,
		Symbol:                   raw.Symbol,
		MarketCapRank:            raw.MarketCapRank,
		Images:                   entity.AssetImages{Thumb: raw.Image.Thumb, Small: raw.Image.Small, Large: raw.Image.Large},
		Description:              raw.Description.En,
		CurrentPrice:             md.CurrentPrice.USD,
		PriceChangePercentage24h: md.PriceChangePercentage24h,
		MarketCap:                md.MarketCap.USD,
		TotalVolume:              md.TotalVolume.USD,
		High24h:                  md.High24h.USD,
		Low24h:                   md.Low24h.USD,
		CirculatingSupply:        md.CirculatingSupply,
		MaxSupply:                md.MaxSupply,
	}, nil
}

// FetchChart implements the httpclient.MarketDataClient interface.
func (c *coinGeckoClientImpl) FetchChart(ctx context.Context, id string, rangeDays entity.ChartRange) (entity.ChartSeries, error) {
	if strings.TrimSpace(id) == "" {
		return entity.ChartSeries{}, fmt.Errorf("empty asset id: %w", entity.ErrNotFound)
	}
	if rangeDays < 1 {
		return entity.ChartSeries{}, fmt.Errorf("%w: chart range %d days", entity.ErrInvalidArgument, rangeDays)
	}
	params := url.Values{}
	params.Set("vs_currency", vsCurrency)
	params.Set("days", strconv.Itoa(int(rangeDays)))
	params.Set("interval", rangeDays.Interval())

	raw, err := getJSON[cgtypes.CoinGeckoMarketChart](ctx, c, endpointChart, "/coins/"+url.PathEscape(id)+"/market_chart", params)
	if err != nil {
		if status, ok := entity.HTTPStatus(err); ok && status == fasthttp.StatusNotFound {
			return entity.ChartSeries{}, fmt.Errorf("asset %q: %w", id, entity.ErrNotFound)
		}
		return entity.ChartSeries{}, fmt.Errorf("failed to fetch %d-day chart for %q: %w", rangeDays, id, err)
	}

	points := make([]entity.ChartPoint, 0, len(raw.Prices))
	for _, sample := range raw.Prices {
		if len(sample) < 2 {
			continue
		}
		points = append(points, entity.ChartPoint{Timestamp: sample[0].IntPart(), Price: sample[1]})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })

	return entity.ChartSeries{AssetID: id, RangeDays: rangeDays, Points: points}, nil
}

// Search implements the httpclient.MarketDataClient interface.
func (c *coinGeckoClientImpl) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)

	raw, err := getJSON[cgtypes.CoinGeckoSearchResponse](ctx, c, endpointSearch, "/search", params)
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", query, err)
	}
	results := make([]entity.SearchResult, 0, len(raw.Coins))
	for _, coin := range raw.Coins {
		results = append(results, entity.SearchResult{
			ID:            coin.ID,
			Name:          coin.Name,
			Symbol:        coin.Symbol,
			Thumb:         coin.Thumb,
			MarketCapRank: coin.MarketCapRank,
		})
	}
	return results, nil
}

// getJSON runs the retry loop for one logical call and decodes the successful body into T.
func getJSON[T any](ctx context.Context, c *coinGeckoClientImpl, endpoint, path string, params url.Values) (T, error) {
	var zero T
	logURL := c.baseURL + path + "?" + params.Encode()
	if c.apiKey != "" {
		params.Set(apiKeyParam, c.apiKey)
	}
	requestURL := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("request to %s cancelled: %w", logURL, err)
		}

		body, err := c.doOnce(ctx, endpoint, requestURL, logURL)
		if err == nil {
			var out T
			decodeErr := json.Unmarshal(body, &out)
			if decodeErr == nil {
				metrics.ProviderRequests.WithLabelValues(endpoint, "ok").Inc()
				return out, nil
			}
			metrics.ProviderRequests.WithLabelValues(endpoint, "parse_error").Inc()
			c.logger.Error("Failed to unmarshal provider response",
				zap.String("url", logURL),
				zap.ByteString("responseBody", truncate(body)),
				zap.Error(decodeErr))
			err = &entity.ParseError{Source: endpoint + " response", Err: decodeErr}
		}
		lastErr = err

		if attempt == c.maxAttempts {
			break
		}
		wait, reason := c.retryDelay(err, attempt)
		metrics.ProviderRetries.WithLabelValues(endpoint, reason).Inc()
		c.logger.Warn("Provider request failed, retrying",
			zap.String("url", logURL),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", c.maxAttempts),
			zap.Duration("wait", wait),
			zap.Error(err))
		if sleepErr := c.sleep(ctx, wait); sleepErr != nil {
			return zero, fmt.Errorf("retry wait for %s interrupted: %w", logURL, errors.Join(sleepErr, lastErr))
		}
	}

	c.logger.Error("Provider request failed after all attempts",
		zap.String("url", logURL),
		zap.Int("attempts", c.maxAttempts),
		zap.Error(lastErr))
	return zero, lastErr
}

// doOnce performs one attempt and returns a copy of the 2xx body.
func (c *coinGeckoClientImpl) doOnce(ctx context.Context, endpoint, requestURL, logURL string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &entity.NetworkError{URL: logURL, Err: err}
		}
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	c.logger.Debug("Requesting provider", zap.String("url", logURL))
	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	metrics.ProviderRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(endpoint, "network_error").Inc()
		return nil, &entity.NetworkError{URL: logURL, Err: err}
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusTooManyRequests:
		metrics.ProviderRequests.WithLabelValues(endpoint, "rate_limited").Inc()
		return nil, &entity.RateLimitedError{URL: logURL}
	case status < 200 || status > 299:
		metrics.ProviderRequests.WithLabelValues(endpoint, "http_"+strconv.Itoa(status)).Inc()
		return nil, &entity.HTTPError{URL: logURL, StatusCode: status, Body: string(truncate(resp.Body()))}
	}

	return append([]byte(nil), resp.Body()...), nil
}

func truncate(body []byte) []byte {
	if len(body) > maxLoggedBody {
		return body[:maxLoggedBody]
	}
	return body
}
