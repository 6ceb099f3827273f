package port

import (
	"context"

	"coinboard/internal/domain/entity"
)

// KeyValueStore is durable string storage addressed by fixed keys.
type KeyValueStore interface {
	// Get returns the stored value and true, or "" and false when the key was never set.
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Close() error
}

// WatchlistStore is the user's persisted set of asset ids.
// Every mutating call persists the full set before it returns.
type WatchlistStore interface {
	Load() error
	Add(id string) error
	Remove(id string) error
	// Toggle adds or removes id and reports whether it is now in the watchlist.
	Toggle(id string) (bool, error)
	Contains(id string) bool
	IDs() []string
	Len() int
}

// WatchlistViewService resolves the watchlist into market rows.
type WatchlistViewService interface {
	Entries(ctx context.Context) ([]entity.MarketEntry, error)
}
