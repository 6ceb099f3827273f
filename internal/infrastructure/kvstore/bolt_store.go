package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/asdine/storm"
	bolt "go.etcd.io/bbolt"
)

const (
	kvBucket        = "kv"
	boltOpenTimeout = time.Second
)

// BoltStore persists values in a single storm bucket on disk.
type BoltStore struct {
	db   *storm.DB
	path string
}

// OpenBolt opens or creates the database file at path, creating parent directories as needed.
func OpenBolt(path string) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}
	db, err := storm.Open(path, storm.BoltOptions(0o600, &bolt.Options{Timeout: boltOpenTimeout}))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage %s: %w", path, err)
	}
	return &BoltStore{db: db, path: path}, nil
}

func (s *BoltStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.Get(kvBucket, key, &value)
	if errors.Is(err, storm.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q from %s: %w", key, s.path, err)
	}
	return value, true, nil
}

func (s *BoltStore) Set(key, value string) error {
	if err := s.db.Set(kvBucket, key, value); err != nil {
		return fmt.Errorf("failed to write key %q to %s: %w", key, s.path, err)
	}
	return nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
