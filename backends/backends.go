// Package backends provides chunk store implementations behind a common
// factory.
package backends

import (
	"errors"

	"github.com/fieldlab/docchunk/backends/inmemory"
	"github.com/fieldlab/docchunk/backends/remote"
	"github.com/fieldlab/docchunk/types"
)

var ErrUnsupportedStore = errors.New("unsupported store type")

// NewStore creates a chunk store of the specified type.
func NewStore(storeType types.StoreType, config types.StoreConfig) (types.ChunkStore, error) {
	switch storeType {
	case types.StoreLRU:
		return NewLRUStore(config)
	case types.StoreRedis:
		return NewRedisStore(config)
	default:
		return nil, ErrUnsupportedStore
	}
}

// NewLRUStore creates a new in-memory LRU store
func NewLRUStore(config types.StoreConfig) (types.ChunkStore, error) {
	return inmemory.NewLRUStore(config)
}

// NewRedisStore creates a new Redis store
func NewRedisStore(config types.StoreConfig) (types.ChunkStore, error) {
	return remote.NewRedisStore(config)
}
