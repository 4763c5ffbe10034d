package arlula

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

// CacheType names a response cache backend.
type CacheType string

// Cache backends.
const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeNATS   CacheType = "nats"
	CacheTypeRedis  CacheType = "redis"
	CacheTypeNone   CacheType = "none"
)

const (
	defaultMemoryCacheSize = 1000
	defaultSweepInterval   = time.Minute
)

// CacheConfig selects and configures the response cache.
type CacheConfig struct {
	Type CacheType

	// Memory sizes the memory backend. Combined with a shared Type (nats or
	// redis) it becomes a local tier read before the shared backend.
	Memory *MemoryCacheConfig

	NATS  *NATSKVConfig
	Redis *RedisCacheConfig

	// Options control TTL, key prefix and entity tags. Nil uses DefaultCacheOptions.
	Options *CacheOptions
}

// MemoryCacheConfig sizes the memory backend.
type MemoryCacheConfig struct {
	MaxSize int

	// SweepInterval is the minimum time between sweeps of expired entries.
	// Sweeps run on writes; zero disables them.
	SweepInterval time.Duration
}

// DefaultCacheConfig returns a memory cache with default size and options.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type:    CacheTypeMemory,
		Memory:  &MemoryCacheConfig{MaxSize: defaultMemoryCacheSize, SweepInterval: defaultSweepInterval},
		Options: DefaultCacheOptions(),
	}
}

// NewCacheFromConfig creates the backend named by config.Type. A nil config
// uses DefaultCacheConfig.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	var shared Cache

	switch config.Type {
	case CacheTypeMemory:
		return NewMemoryCacheFromConfig(config.Memory), nil
	case CacheTypeNone:
		return NewNoOpCache(), nil
	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		cache, err := NewNATSKVCache(config.NATS)
		if err != nil {
			return nil, err
		}

		shared = cache
	case CacheTypeRedis:
		if config.Redis == nil {
			return nil, ErrRedisConfigRequired
		}

		cache, err := NewRedisCache(config.Redis)
		if err != nil {
			return nil, err
		}

		shared = cache
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}

	if config.Memory == nil {
		return shared, nil
	}

	return NewTieredCache(NewMemoryCacheFromConfig(config.Memory), shared), nil
}

// NoOpCache stores nothing.
type NoOpCache struct{}

// NewNoOpCache creates a cache that never hits.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always fails with ErrCacheDisabled.
func (c *NoOpCache) Get(context.Context, string) (*CacheEntry, error) { return nil, ErrCacheDisabled }

// Set discards the entry.
func (c *NoOpCache) Set(context.Context, string, *CacheEntry) error { return nil }

// Delete is a no-op.
func (c *NoOpCache) Delete(context.Context, string) error { return nil }

// Clear is a no-op.
func (c *NoOpCache) Clear(context.Context) error { return nil }

// Has is always false.
func (c *NoOpCache) Has(context.Context, string) bool { return false }

// TieredCache reads its tiers in order and writes to all of them. A hit in a
// later tier is copied into the earlier ones with its original expiry.
type TieredCache struct {
	tiers []Cache
}

// NewTieredCache layers tiers, fastest first.
func NewTieredCache(tiers ...Cache) *TieredCache {
	return &TieredCache{tiers: tiers}
}

// Get returns the entry from the first tier holding it.
func (c *TieredCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	for i, tier := range c.tiers {
		entry, err := tier.Get(ctx, key)
		if err != nil {
			continue
		}

		for _, upper := range c.tiers[:i] {
			_ = upper.Set(ctx, key, entry)
		}

		return entry, nil
	}

	return nil, ErrCacheKeyNotFound
}

// Set stores the entry in every tier.
func (c *TieredCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return c.each(func(tier Cache) error { return tier.Set(ctx, key, entry) })
}

// Delete removes the key from every tier.
func (c *TieredCache) Delete(ctx context.Context, key string) error {
	return c.each(func(tier Cache) error { return tier.Delete(ctx, key) })
}

// Clear empties every tier.
func (c *TieredCache) Clear(ctx context.Context) error {
	return c.each(func(tier Cache) error { return tier.Clear(ctx) })
}

// Has reports whether any tier holds a live entry.
func (c *TieredCache) Has(ctx context.Context, key string) bool {
	return slices.ContainsFunc(c.tiers, func(tier Cache) bool { return tier.Has(ctx, key) })
}

func (c *TieredCache) each(fn func(Cache) error) error {
	errs := make([]error, 0, len(c.tiers))

	for _, tier := range c.tiers {
		errs = append(errs, fn(tier))
	}

	return errors.Join(errs...)
}
