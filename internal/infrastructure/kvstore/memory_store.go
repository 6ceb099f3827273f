package kvstore

import (
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps values for the lifetime of the process.
type MemoryStore struct {
	items *cache.Cache
}

func NewMemory() *MemoryStore {
	return &MemoryStore{items: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := s.items.Get(key)
	if !ok {
		return "", false, nil
	}
	value, _ := v.(string)
	return value, true, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.items.Set(key, value, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Close() error {
	s.items.Flush()
	return nil
}
