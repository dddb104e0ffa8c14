package inmemory

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fieldlab/docchunk/types"
)

// LRUStore implements ChunkStore in memory with LRU eviction. It keeps a
// separate embedding index so similarity scans don't touch entry recency;
// the eviction callback keeps the index in lockstep with the cache.
type LRUStore struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, types.Entry]
	index map[string][]float32
}

// NewLRUStore creates an in-memory store holding at most config.Capacity
// entries.
func NewLRUStore(config types.StoreConfig) (*LRUStore, error) {
	s := &LRUStore{
		index: make(map[string][]float32),
	}

	// The callback runs under s.mu: evictions only happen inside Add,
	// which is always called with the lock held.
	cache, err := lru.NewWithEvict(config.Capacity, func(key string, _ types.Entry) {
		delete(s.index, key)
	})
	if err != nil {
		return nil, err
	}
	s.cache = cache

	return s, nil
}

// Put stores a chunk entry, evicting the least recently used entry if the
// store is at capacity.
func (s *LRUStore) Put(ctx context.Context, key string, entry types.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Add(key, entry)
	s.index[key] = entry.Embedding
	return nil
}

// Get retrieves an entry by key.
func (s *LRUStore) Get(ctx context.Context, key string) (types.Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entry, ok := s.cache.Get(key); ok {
		return entry, true, nil
	}
	return types.Entry{}, false, nil
}

// Delete removes an entry by key.
func (s *LRUStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Remove(key)
	delete(s.index, key)
	return nil
}

// Contains checks for key presence without affecting recency.
func (s *LRUStore) Contains(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.Contains(key), nil
}

// Flush clears all entries from the store.
func (s *LRUStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Purge()
	s.index = make(map[string][]float32)
	return nil
}

// Len returns the number of entries in the store.
func (s *LRUStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.Len(), nil
}

// Keys returns all keys currently in the store, oldest first.
func (s *LRUStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.Keys(), nil
}

// GetEmbedding retrieves just the embedding for a key, without touching
// entry recency.
func (s *LRUStore) GetEmbedding(ctx context.Context, key string) ([]float32, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	embedding, ok := s.index[key]
	return embedding, ok, nil
}

// Close releases the store's resources.
func (s *LRUStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Purge()
	s.index = nil
	return nil
}
