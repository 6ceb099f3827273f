package kvstore

import (
	"fmt"

	"coinboard/internal/app/port"
	"coinboard/internal/infrastructure/configloader"
)

// Open returns the store selected by cfg.Driver.
func Open(cfg configloader.StorageConfig) (port.KeyValueStore, error) {
	switch cfg.Driver {
	case configloader.StorageDriverMemory:
		return NewMemory(), nil
	case configloader.StorageDriverBolt, "":
		return OpenBolt(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
