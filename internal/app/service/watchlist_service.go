package service

import (
	"fmt"
	"strings"
	"sync"

	"coinboard/internal/app/port"
	"coinboard/internal/domain/entity"
	"coinboard/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WatchlistKey is the storage key holding the JSON array of watched asset ids.
const WatchlistKey = "crypto-watchlist"

// watchlistServiceImpl implements port.WatchlistStore.
type watchlistServiceImpl struct {
	kv     port.KeyValueStore
	logger port.Logger
	mu     sync.RWMutex
	ids    []string
	index  map[string]struct{}
}

// NewWatchlistService creates a watchlist backed by kv. Call Load before use.
func NewWatchlistService(kv port.KeyValueStore, l port.Logger) port.WatchlistStore {
	return &watchlistServiceImpl{
		kv:     kv,
		logger: l,
		index:  make(map[string]struct{}),
	}
}

// Load reads the persisted watchlist. A malformed value is logged and replaced by an empty list;
// only a failing store is reported.
func (s *watchlistServiceImpl) Load() error {
	raw, found, err := s.kv.Get(WatchlistKey)
	if err != nil {
		return fmt.Errorf("failed to read watchlist: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
	s.index = make(map[string]struct{})

	if found && strings.TrimSpace(raw) != "" {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			parseErr := &entity.ParseError{Source: "persisted watchlist", Err: err}
			s.logger.Warn("Error loading watchlist, starting with an empty one", "error", parseErr)
		} else {
			for _, id := range ids {
				if _, dup := s.index[id]; dup || id == "" {
					continue
				}
				s.index[id] = struct{}{}
				s.ids = append(s.ids, id)
			}
		}
	}
	metrics.WatchlistSize.Set(float64(len(s.ids)))
	s.logger.Info("Watchlist loaded", "count", len(s.ids))
	return nil
}

func (s *watchlistServiceImpl) Add(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty asset id", entity.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; ok {
		return nil
	}
	return s.commitLocked(append(append([]string(nil), s.ids...), id))
}

func (s *watchlistServiceImpl) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; !ok {
		return nil
	}
	next := make([]string, 0, len(s.ids))
	for _, existing := range s.ids {
		if existing != id {
			next = append(next, existing)
		}
	}
	return s.commitLocked(next)
}

// Toggle decides from the in-memory state, not from storage.
func (s *watchlistServiceImpl) Toggle(id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: empty asset id", entity.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; ok {
		next := make([]string, 0, len(s.ids))
		for _, existing := range s.ids {
			if existing != id {
				next = append(next, existing)
			}
		}
		return false, s.commitLocked(next)
	}
	if err := s.commitLocked(append(append([]string(nil), s.ids...), id)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *watchlistServiceImpl) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// IDs returns a copy of the watched ids in insertion order.
func (s *watchlistServiceImpl) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.ids...)
}

func (s *watchlistServiceImpl) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// commitLocked persists next and only then swaps it in, so memory and storage never diverge.
func (s *watchlistServiceImpl) commitLocked(next []string) error {
	if next == nil {
		next = []string{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode watchlist: %w", err)
	}
	if err := s.kv.Set(WatchlistKey, string(data)); err != nil {
		s.logger.Error("Failed to persist watchlist", "error", err)
		return fmt.Errorf("failed to persist watchlist: %w", err)
	}
	index := make(map[string]struct{}, len(next))
	for _, id := range next {
		index[id] = struct{}{}
	}
	s.ids = next
	s.index = index
	metrics.WatchlistSize.Set(float64(len(next)))
	return nil
}
