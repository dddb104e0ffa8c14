package remote

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fieldlab/docchunk/chunker"
	"github.com/fieldlab/docchunk/types"
)

const defaultKeyPrefix = "docchunk:"

// RedisStore implements ChunkStore on Redis. Entries are stored as JSON
// documents under a configurable key prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// redisDocument is the JSON shape of a stored entry.
type redisDocument struct {
	Key       string        `json:"key"`
	Chunk     chunker.Chunk `json:"chunk"`
	Embedding []float32     `json:"embedding"`
	Timestamp int64         `json:"timestamp"`
}

// parseRedisURL parses a Redis URL and returns redis.Options
func parseRedisURL(connectionString string) (*redis.Options, error) {
	// Handle redis:// or rediss:// URLs
	if strings.HasPrefix(connectionString, "redis://") || strings.HasPrefix(connectionString, "rediss://") {
		parsedURL, err := url.Parse(connectionString)
		if err != nil {
			return nil, fmt.Errorf("invalid Redis URL: %w", err)
		}

		opts := &redis.Options{
			Addr: parsedURL.Host,
		}

		if parsedURL.Scheme == "rediss" {
			opts.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}

		if parsedURL.User != nil {
			opts.Username = parsedURL.User.Username()
			if password, ok := parsedURL.User.Password(); ok {
				opts.Password = password
			}
		}

		// Extract database number from path
		if parsedURL.Path != "" && parsedURL.Path != "/" {
			dbStr := strings.TrimPrefix(parsedURL.Path, "/")
			if db, err := strconv.Atoi(dbStr); err == nil {
				opts.DB = db
			}
		}

		return opts, nil
	}

	// For simple address format (host:port), return minimal options
	return &redis.Options{
		Addr: connectionString,
	}, nil
}

// NewRedisStore creates a Redis-backed chunk store and verifies the
// connection with a ping.
func NewRedisStore(config types.StoreConfig) (*RedisStore, error) {
	opts, err := parseRedisURL(config.ConnectionString)
	if err != nil {
		return nil, err
	}

	// Override with explicit config values if provided
	if config.Username != "" {
		opts.Username = config.Username
	}
	if config.Password != "" {
		opts.Password = config.Password
	}
	if config.Database != 0 {
		opts.DB = config.Database
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    config.TTL,
	}, nil
}

func (s *RedisStore) redisKey(key string) string {
	return s.prefix + key
}

// Put stores a chunk entry as a JSON document.
func (s *RedisStore) Put(ctx context.Context, key string, entry types.Entry) error {
	doc := redisDocument{
		Key:       key,
		Chunk:     entry.Chunk,
		Embedding: entry.Embedding,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if err := s.client.Set(ctx, s.redisKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store entry: %w", err)
	}
	return nil
}

func (s *RedisStore) getDocument(ctx context.Context, key string) (*redisDocument, bool, error) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to retrieve entry: %w", err)
	}

	var doc redisDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return &doc, true, nil
}

// Get retrieves an entry by key.
func (s *RedisStore) Get(ctx context.Context, key string) (types.Entry, bool, error) {
	doc, found, err := s.getDocument(ctx, key)
	if err != nil || !found {
		return types.Entry{}, false, err
	}
	return types.Entry{Embedding: doc.Embedding, Chunk: doc.Chunk}, true, nil
}

// Delete removes an entry by key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.redisKey(key)).Err()
}

// Contains checks if a key exists without retrieving the value.
func (s *RedisStore) Contains(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.redisKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Keys returns all keys in the store.
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	return keys, nil
}

// GetEmbedding retrieves just the embedding for a key.
func (s *RedisStore) GetEmbedding(ctx context.Context, key string) ([]float32, bool, error) {
	doc, found, err := s.getDocument(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	return doc.Embedding, true, nil
}

// Flush removes all entries under the store's key prefix.
func (s *RedisStore) Flush(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Len returns the number of entries under the store's key prefix.
func (s *RedisStore) Len(ctx context.Context) (int, error) {
	count := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
