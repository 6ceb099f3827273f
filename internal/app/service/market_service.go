package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"coinboard/internal/app/port"
	"coinboard/internal/domain/entity"
	"coinboard/internal/infrastructure/httpclient"
)

const (
	// DefaultPageSize is the page size of the main market table.
	DefaultPageSize = 50
	// WatchlistFetchSize is how many top assets are fetched to resolve the watchlist.
	WatchlistFetchSize = 250

	marketFetchFailedMessage = "Failed to fetch market data. Please try again later."
)

// MarketServiceOptions tunes the market session.
type MarketServiceOptions struct {
	PageSize       int
	SearchDebounce time.Duration
}

// marketServiceImpl implements port.MarketService.
type marketServiceImpl struct {
	client    httpclient.MarketDataClient
	logger    port.Logger
	pager     *Paginator
	debouncer *Debouncer

	mu sync.Mutex
	// spec is what the view is filtered with; typedSearch runs ahead of spec.Search until the debounce fires.
	spec        entity.FilterSpec
	typedSearch string
	page        []entity.MarketEntry
	view        []entity.MarketEntry
	loading     bool
	errMsg      string
	// token identifies the latest page fetch; older results are dropped.
	token uint64
}

// NewMarketService creates a new market session on page 1 with the default filter.
func NewMarketService(c httpclient.MarketDataClient, l port.Logger, opts MarketServiceOptions) port.MarketService {
	if opts.SearchDebounce <= 0 {
		opts.SearchDebounce = DefaultSearchDebounce
	}
	s := &marketServiceImpl{
		client:    c,
		logger:    l,
		pager:     NewPaginator(opts.PageSize),
		debouncer: NewDebouncer(opts.SearchDebounce),
		spec:      entity.DefaultFilterSpec(),
	}
	l.Info("MarketService initialized", "pageSize", s.pager.PageSize(), "searchDebounce", opts.SearchDebounce.String())
	return s
}

// Page implements port.MarketService.
func (s *marketServiceImpl) Page(ctx context.Context, page, pageSize int, spec entity.FilterSpec) ([]entity.MarketEntry, error) {
	if spec.SortKey == "" {
		spec.SortKey = entity.DefaultSortKey
	}
	if !spec.SortKey.Valid() {
		return nil, fmt.Errorf("%w: unknown sort key %q", entity.ErrInvalidArgument, spec.SortKey)
	}
	entries, err := s.client.FetchMarkets(ctx, page, pageSize, spec.SortKey)
	if err != nil {
		return nil, err
	}
	return ApplyFilter(entries, spec), nil
}

// Search implements port.MarketService.
func (s *marketServiceImpl) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.SearchResult{}, nil
	}
	return s.client.Search(ctx, query)
}

// AssetDetail implements port.MarketService.
func (s *marketServiceImpl) AssetDetail(ctx context.Context, id string) (entity.AssetDetail, error) {
	return s.client.FetchAssetDetail(ctx, id)
}

// Chart implements port.MarketService.
func (s *marketServiceImpl) Chart(ctx context.Context, id string, rangeDays entity.ChartRange) (entity.ChartSeries, error) {
	if !rangeDays.Valid() {
		return entity.ChartSeries{}, fmt.Errorf("%w: unsupported range %d days", entity.ErrInvalidArgument, rangeDays)
	}
	return s.client.FetchChart(ctx, id, rangeDays)
}

// Snapshot implements port.MarketService.
func (s *marketServiceImpl) Snapshot() entity.MarketSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	filters := s.spec
	filters.Search = s.typedSearch
	return entity.MarketSnapshot{
		Entries:          append([]entity.MarketEntry{}, s.view...),
		Filters:          filters,
		HasActiveFilters: filters.HasActiveFilters(),
		Page:             s.pager.CurrentPage(),
		PageSize:         s.pager.PageSize(),
		FetchedCount:     len(s.page),
		CanPrev:          s.pager.CanPrev(),
		CanNext:          s.pager.CanNext(),
		Loading:          s.loading,
		Error:            s.errMsg,
	}
}

// SetSearch records the typed text at once and filters with it after the debounce quiet period.
// It never fetches and never resets the page.
func (s *marketServiceImpl) SetSearch(text string) {
	s.mu.Lock()
	s.typedSearch = text
	s.mu.Unlock()

	s.debouncer.Trigger(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.spec.Search = text
		s.view = ApplyFilter(s.page, s.spec)
		s.logger.Debug("Search filter applied", "search", text, "matches", len(s.view))
	})
}

// SetSortKey implements port.MarketService. The current page is kept and refetched.
func (s *marketServiceImpl) SetSortKey(ctx context.Context, key entity.SortKey) error {
	if !key.Valid() {
		return fmt.Errorf("%w: unknown sort key %q", entity.ErrInvalidArgument, key)
	}
	s.mu.Lock()
	s.spec.SortKey = key
	s.mu.Unlock()
	return s.fetchCurrent(ctx)
}

// UpdateChangeBounds implements port.MarketService. Bounds filter the fetched page, no refetch.
func (s *marketServiceImpl) UpdateChangeBounds(update entity.BoundsUpdate) {
	if update.Empty() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if update.Clear {
		s.spec.MinChange, s.spec.MaxChange = nil, nil
	}
	if update.Min != nil {
		s.spec.MinChange = update.Min
	}
	if update.Max != nil {
		s.spec.MaxChange = update.Max
	}
	s.view = ApplyFilter(s.page, s.spec)
}

// ClearFilters implements port.MarketService.
func (s *marketServiceImpl) ClearFilters(ctx context.Context) error {
	s.debouncer.Stop()
	s.mu.Lock()
	s.spec = entity.DefaultFilterSpec()
	s.typedSearch = ""
	s.mu.Unlock()
	return s.fetchCurrent(ctx)
}

// NextPage implements port.MarketService. It is a no-op after a short page.
func (s *marketServiceImpl) NextPage(ctx context.Context) error {
	if !s.pager.NextPage() {
		s.logger.Debug("Next page unavailable", "page", s.pager.CurrentPage())
		return nil
	}
	return s.fetchCurrent(ctx)
}

// PrevPage implements port.MarketService. It is a no-op on page 1.
func (s *marketServiceImpl) PrevPage(ctx context.Context) error {
	if !s.pager.PrevPage() {
		return nil
	}
	return s.fetchCurrent(ctx)
}

// Refresh implements port.MarketService.
func (s *marketServiceImpl) Refresh(ctx context.Context) error {
	return s.fetchCurrent(ctx)
}

// fetchCurrent loads the current page. On failure the previous entries stay visible with an error message.
func (s *marketServiceImpl) fetchCurrent(ctx context.Context) error {
	s.mu.Lock()
	s.token++
	token := s.token
	s.loading = true
	s.errMsg = ""
	sortKey := s.spec.SortKey
	s.mu.Unlock()

	page := s.pager.CurrentPage()
	entries, err := s.client.FetchMarkets(ctx, page, s.pager.PageSize(), sortKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		s.logger.Debug("Discarding stale market page", "page", page, "token", token, "latest", s.token)
		return nil
	}
	s.loading = false
	if err != nil {
		s.errMsg = fmt.Sprintf("%s %v", marketFetchFailedMessage, err)
		s.logger.Error("API Error", "page", page, "sortKey", string(sortKey), "error", err)
		return err
	}
	s.page = entries
	s.pager.RecordFetch(len(entries))
	s.view = ApplyFilter(entries, s.spec)
	s.logger.Debug("Market page loaded", "page", page, "fetched", len(entries), "shown", len(s.view))
	return nil
}
