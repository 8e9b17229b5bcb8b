// Package cache provides optional result memoization for the
// orchestrator, grounded on the teacher's cache.Client interface and
// dual Redis/in-memory implementation (libs/knowledge-engine/internal/
// cache/redis_client.go).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freightlayer/extraction-engine/internal/config"
	"github.com/freightlayer/extraction-engine/internal/model"
)

// ErrMiss indicates a cache miss.
var ErrMiss = errors.New("cache miss")

// Client is the memoization contract the orchestrator consumes.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Key derives a cache key from the source_ref, the catalog/schema-set
// versions and a hash of the input text, so that any change to the
// catalog, the schema set, or the text invalidates the memoized result.
func Key(sourceRef string, catalogVersion, schemaSetVersion int, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("extract:%d:%d:%s:%s", catalogVersion, schemaSetVersion, sourceRef, hex.EncodeToString(sum[:8]))
}

// Lookup fetches a memoized ExtractionRecord for key, returning
// (nil, nil) on a clean miss. Any cache-layer failure is treated the
// same as a miss: memoization is an optimization, never load-bearing
// for correctness (§7).
func Lookup(ctx context.Context, client Client, key string) (*model.ExtractionRecord, error) {
	if client == nil {
		return nil, nil
	}
	raw, err := client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrMiss) {
			return nil, nil
		}
		return nil, nil
	}
	var record model.ExtractionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, nil
	}
	return &record, nil
}

// Store memoizes record under key for ttl. Failures are swallowed by
// the caller's choice; Store itself reports them so a caller can log.
func Store(ctx context.Context, client Client, key string, record *model.ExtractionRecord, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal extraction record: %w", err)
	}
	return client.Set(ctx, key, raw, ttl)
}

// RedisClient implements Client against Redis.
type RedisClient struct {
	client *redis.Client
	prefix string
}

// NewRedisClient dials Redis per cfg and verifies the connection with a
// bounded ping, mirroring the teacher's NewRedisClient.
func NewRedisClient(cfg config.RedisConfig) (*RedisClient, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "extraction:"
	}
	return &RedisClient{client: rc, prefix: prefix}, nil
}

func (c *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

func (c *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	return c.client.Close()
}

// MemoryClient implements Client in-process, for tests and for
// operators who do not want a Redis dependency.
type MemoryClient struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryClient returns an empty in-process cache.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{data: make(map[string]memoryEntry)}
}

func (c *MemoryClient) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.data[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrMiss
	}
	return entry.value, nil
}

func (c *MemoryClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *MemoryClient) Close() error {
	return nil
}

// New builds the configured Client, or nil if caching is disabled.
func New(cfg config.CacheConfig) (Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.Redis.Addr == "" {
		return NewMemoryClient(), nil
	}
	return NewRedisClient(cfg.Redis)
}
