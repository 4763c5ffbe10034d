package arlula

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

const (
	redisDialTimeout = 2 * time.Second
	redisIOTimeout   = time.Second
	redisScanCount   = 100
)

// RedisCacheConfig configures the Redis cache.
type RedisCacheConfig struct {
	// Addr is host:port of the Redis server.
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces keys so Clear only removes this client's entries.
	KeyPrefix string
}

// RedisCache stores responses in Redis with server-side expiry.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(config *RedisCacheConfig) (*RedisCache, error) {
	if config == nil || config.Addr == "" {
		return nil, ErrRedisConfigRequired
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  redisDialTimeout,
		ReadTimeout:  redisIOTimeout,
		WriteTimeout: redisIOTimeout,
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		_ = rdb.Close()

		return nil, fmt.Errorf("redis ping: %w", err)
	}

	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = DefaultCacheOptions().KeyPrefix
	}

	return &RedisCache{rdb: rdb, prefix: prefix + ":"}, nil
}

// Get returns a live entry.
func (c *RedisCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	data, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheKeyNotFound
		}

		return nil, fmt.Errorf("redis GET %q: %w", key, err)
	}

	var entry CacheEntry

	err = json.Unmarshal(data, &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired() {
		return nil, ErrCacheEntryExpired
	}

	return &entry, nil
}

// Set stores an entry that Redis expires at the entry's deadline.
func (c *RedisCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	var ttl time.Duration

	if !entry.ExpiresAt.IsZero() {
		ttl = time.Until(entry.ExpiresAt)
		if ttl <= 0 {
			return c.Delete(ctx, key)
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	err = c.rdb.Set(ctx, c.prefix+key, data, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis SET %q: %w", key, err)
	}

	return nil
}

// Delete removes an entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	err := c.rdb.Del(ctx, c.prefix+key).Err()
	if err != nil {
		return fmt.Errorf("redis DEL %q: %w", key, err)
	}

	return nil
}

// Clear removes every key under the cache prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", redisScanCount).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	err := iter.Err()
	if err != nil {
		return fmt.Errorf("redis SCAN: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	err = c.rdb.Del(ctx, keys...).Err()
	if err != nil {
		return fmt.Errorf("redis DEL %d keys: %w", len(keys), err)
	}

	return nil
}

// Has reports whether a live entry exists.
func (c *RedisCache) Has(ctx context.Context, key string) bool {
	n, err := c.rdb.Exists(ctx, c.prefix+key).Result()

	return err == nil && n > 0
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	err := c.rdb.Close()
	if err != nil {
		return fmt.Errorf("redis close: %w", err)
	}

	return nil
}
