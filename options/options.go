// Package options provides functional options for configuring Indexer instances.
package options

import (
	"errors"

	"go.uber.org/zap"

	"github.com/fieldlab/docchunk/backends"
	"github.com/fieldlab/docchunk/chunker"
	"github.com/fieldlab/docchunk/providers/openai"
	"github.com/fieldlab/docchunk/similarity"
	"github.com/fieldlab/docchunk/types"
)

// Option represents a configuration option for an Indexer
type Option func(*Config) error

// Config holds the configuration for building an Indexer
type Config struct {
	Store      types.ChunkStore
	Provider   types.EmbeddingProvider
	Chunker    chunker.Chunker
	Comparator similarity.Func
	Logger     *zap.Logger

	// Counter and TokenBudget enable the optional per-document token
	// budget check. Documents over budget are still chunked; the excess
	// is logged and reported.
	Counter     types.TokenCounter
	TokenBudget int
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Comparator: similarity.Cosine,
		Logger:     zap.NewNop(),
	}
}

// Apply applies all the given options to the config
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Store == nil {
		return errors.New("store is required - use WithLRUStore, WithRedisStore, etc.")
	}
	if c.Provider == nil {
		return errors.New("embedding provider is required - use WithOpenAIProvider, etc.")
	}
	return nil
}

// WithLRUStore sets up an in-memory LRU chunk store
func WithLRUStore(capacity int) Option {
	return func(cfg *Config) error {
		store, err := backends.NewLRUStore(types.StoreConfig{
			Capacity: capacity,
		})
		if err != nil {
			return err
		}
		cfg.Store = store
		return nil
	}
}

// WithRedisStore sets up a Redis chunk store
func WithRedisStore(addr string, db int) Option {
	return func(cfg *Config) error {
		store, err := backends.NewRedisStore(types.StoreConfig{
			ConnectionString: addr,
			Database:         db,
		})
		if err != nil {
			return err
		}
		cfg.Store = store
		return nil
	}
}

// WithStore allows using a pre-configured chunk store
func WithStore(store types.ChunkStore) Option {
	return func(cfg *Config) error {
		if store == nil {
			return errors.New("store cannot be nil")
		}
		cfg.Store = store
		return nil
	}
}

// WithOpenAIProvider sets up the OpenAI embedding provider
func WithOpenAIProvider(apiKey string, model ...string) Option {
	return func(cfg *Config) error {
		config := openai.Config{
			APIKey: apiKey,
		}
		if len(model) > 0 {
			config.Model = model[0]
		}
		provider, err := openai.NewProvider(config)
		if err != nil {
			return err
		}
		cfg.Provider = provider
		return nil
	}
}

// WithProvider allows using a pre-configured embedding provider
func WithProvider(provider types.EmbeddingProvider) Option {
	return func(cfg *Config) error {
		if provider == nil {
			return errors.New("provider cannot be nil")
		}
		cfg.Provider = provider
		return nil
	}
}

// WithChunker sets a pre-configured chunker. When unset, the Indexer builds
// a FixedOverlapChunker with the default configuration and a cl100k_base
// tiktoken tokenizer.
func WithChunker(c chunker.Chunker) Option {
	return func(cfg *Config) error {
		if c == nil {
			return errors.New("chunker cannot be nil")
		}
		cfg.Chunker = c
		return nil
	}
}

// WithComparator sets the similarity function used by Search
func WithComparator(comparator similarity.Func) Option {
	return func(cfg *Config) error {
		if comparator == nil {
			return errors.New("comparator cannot be nil")
		}
		cfg.Comparator = comparator
		return nil
	}
}

// WithLogger sets the logger used by the Indexer
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.Logger = logger
		return nil
	}
}

// WithTokenBudget enables the per-document token budget check using the
// given counter. Documents exceeding budget tokens are flagged in reports.
func WithTokenBudget(counter types.TokenCounter, budget int) Option {
	return func(cfg *Config) error {
		if counter == nil {
			return errors.New("token counter cannot be nil")
		}
		if budget <= 0 {
			return errors.New("token budget must be positive")
		}
		cfg.Counter = counter
		cfg.TokenBudget = budget
		return nil
	}
}
