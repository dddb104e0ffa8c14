package types

import (
	"context"
	"time"

	"github.com/fieldlab/docchunk/chunker"
)

// Entry holds an embedding and the chunk it was computed from.
type Entry struct {
	Embedding []float32
	Chunk     chunker.Chunk
}

// ChunkStore defines the interface for chunk/embedding storage backends.
// This allows for pluggable storage systems including in-memory and Redis.
type ChunkStore interface {
	// Put stores a chunk with its embedding under key
	Put(ctx context.Context, key string, entry Entry) error

	// Get retrieves an entry by key
	Get(ctx context.Context, key string) (Entry, bool, error)

	// Delete removes an entry by key
	Delete(ctx context.Context, key string) error

	// Contains checks if a key exists without retrieving the value
	Contains(ctx context.Context, key string) (bool, error)

	// Keys returns all keys in the store (for similarity search)
	Keys(ctx context.Context) ([]string, error)

	// GetEmbedding retrieves just the embedding for a key
	GetEmbedding(ctx context.Context, key string) ([]float32, bool, error)

	// Flush clears all entries from the store
	Flush(ctx context.Context) error

	// Len returns the number of entries in the store
	Len(ctx context.Context) (int, error)

	// Close closes the store and releases resources
	Close() error
}

// StoreConfig provides configuration options for stores
type StoreConfig struct {
	// For in-memory stores
	Capacity int
	TTL      time.Duration

	// For Redis
	ConnectionString string
	Username         string
	Password         string
	Database         int
	KeyPrefix        string
}

// StoreType represents the type of chunk store
type StoreType string

const (
	StoreLRU   StoreType = "lru"
	StoreRedis StoreType = "redis"
)

// EmbeddingProvider defines the interface all embedding providers must satisfy.
type EmbeddingProvider interface {
	// EmbedText turns a piece of text into its embedding vector.
	EmbedText(text string) ([]float32, error)
	// Close frees any resources held by the provider.
	Close()
}

// TokenCounter counts tokens in a piece of text. Implementations may count
// locally (tiktoken) or via a provider API (Anthropic, Gemini).
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// ProviderType represents the type of embedding provider
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	// Add more providers as needed:
	// ProviderCohere ProviderType = "cohere"
	// ProviderOllama ProviderType = "ollama"
)
