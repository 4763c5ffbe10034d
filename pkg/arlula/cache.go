package arlula

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache stores raw response bodies keyed by request.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheEntry is a cached response body.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	ETag      string    `json:"etag,omitempty"`
}

// Expired reports whether the entry is past its expiry.
func (e *CacheEntry) Expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// CacheOptions are applied to every cache backend.
type CacheOptions struct {
	// TTL is used when a response is stored without an explicit TTL.
	TTL time.Duration
	// MaxSize bounds in-process backends.
	MaxSize int
	// EnableETags keeps response entity tags alongside cached bodies.
	EnableETags bool
	// KeyPrefix namespaces keys in shared backends.
	KeyPrefix string
}

// DefaultCacheOptions returns the options used when none are configured.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		TTL:         5 * time.Minute,
		MaxSize:     1000,
		EnableETags: true,
		KeyPrefix:   "arlula",
	}
}

// MemoryCache is a size-bounded in-process cache. Expired entries are never
// served. They are dropped on lookup and by sweeps that run on writes, so the
// cache starts no goroutines.
type MemoryCache struct {
	entries       *lru.Cache[string, *CacheEntry]
	sweepInterval time.Duration
	lastSweep     atomic.Int64
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 1
	}

	entries, _ := lru.New[string, *CacheEntry](maxSize)

	return &MemoryCache{entries: entries}
}

// NewMemoryCacheFromConfig creates a memory cache that sweeps expired entries
// at most once per SweepInterval. A nil config uses the defaults.
func NewMemoryCacheFromConfig(config *MemoryCacheConfig) *MemoryCache {
	if config == nil {
		config = &MemoryCacheConfig{MaxSize: defaultMemoryCacheSize, SweepInterval: defaultSweepInterval}
	}

	size := config.MaxSize
	if size <= 0 {
		size = defaultMemoryCacheSize
	}

	cache := NewMemoryCache(size)
	cache.sweepInterval = config.SweepInterval
	cache.lastSweep.Store(time.Now().UnixNano())

	return cache
}

// Get returns a live entry.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, ErrCacheKeyNotFound
	}

	if entry.Expired() {
		c.entries.Remove(key)

		return nil, ErrCacheEntryExpired
	}

	return entry, nil
}

// Set stores an entry, evicting the least recently used one when full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.entries.Add(key, entry)
	c.maybeSweep()

	return nil
}

// Delete removes an entry.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.entries.Remove(key)

	return nil
}

// Clear removes every entry.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.entries.Purge()

	return nil
}

// Has reports whether a live entry exists.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	entry, ok := c.entries.Peek(key)

	return ok && !entry.Expired()
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (c *MemoryCache) Len() int {
	return c.entries.Len()
}

// Cleanup drops expired entries.
func (c *MemoryCache) Cleanup() {
	for _, key := range c.entries.Keys() {
		if entry, ok := c.entries.Peek(key); ok && entry.Expired() {
			c.entries.Remove(key)
		}
	}
}

// maybeSweep runs Cleanup when the sweep interval has passed. Only one
// concurrent writer wins the sweep.
func (c *MemoryCache) maybeSweep() {
	if c.sweepInterval <= 0 {
		return
	}

	last := c.lastSweep.Load()
	now := time.Now().UnixNano()

	if now-last < int64(c.sweepInterval) || !c.lastSweep.CompareAndSwap(last, now) {
		return
	}

	c.Cleanup()
}

// CacheStats counts cache manager activity.
type CacheStats struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// GetHitRate returns hits over lookups, or zero before any lookup.
func (s *CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// CacheManager wraps a backend with key derivation and statistics.
type CacheManager struct {
	cache   Cache
	options *CacheOptions

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// NewCacheManager creates a manager over cache. A nil cache disables caching;
// nil options, or a zero TTL, use DefaultCacheOptions.
func NewCacheManager(cache Cache, options *CacheOptions) *CacheManager {
	if cache == nil {
		cache = NewNoOpCache()
	}

	opts := DefaultCacheOptions()
	if options != nil {
		opts = new(CacheOptions)
		*opts = *options

		if opts.TTL <= 0 {
			opts.TTL = DefaultCacheOptions().TTL
		}
	}

	return &CacheManager{cache: cache, options: opts}
}

// GetCacheKey derives a stable key for a request. Parameters are ordered by
// name and hashed so keys stay short.
func (m *CacheManager) GetCacheKey(method, path string, params map[string]string) string {
	key := method + ":" + path
	if len(params) == 0 {
		return key
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}

	sort.Strings(names)

	var sb strings.Builder

	for i, name := range names {
		if i > 0 {
			sb.WriteByte('&')
		}

		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(params[name])
	}

	return fmt.Sprintf("%s:%s:%016x", key, strings.Join(names, ","), xxhash.Sum64String(sb.String()))
}

// GetScopedCacheKey is GetCacheKey for a response only visible to scope, such
// as the credentials that fetched it. Only a hash of scope enters the key.
func (m *CacheManager) GetScopedCacheKey(method, path, scope string, params map[string]string) string {
	key := m.GetCacheKey(method, path, params)
	if scope == "" {
		return key
	}

	return fmt.Sprintf("%s:%016x", key, xxhash.Sum64String(scope))
}

// Get returns cached data for key.
func (m *CacheManager) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := m.cache.Get(ctx, m.prefixed(key))
	if err != nil {
		m.misses.Add(1)

		return nil, err
	}

	m.hits.Add(1)

	return entry.Data, nil
}

// Set stores data under key. A zero ttl uses the default TTL.
func (m *CacheManager) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return m.SetWithETag(ctx, key, data, "", ttl)
}

// SetWithETag stores data and its entity tag under key.
func (m *CacheManager) SetWithETag(ctx context.Context, key string, data []byte, etag string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.options.TTL
	}

	if !m.options.EnableETags {
		etag = ""
	}

	err := m.cache.Set(ctx, m.prefixed(key), &CacheEntry{Data: data, ETag: etag, ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return err
	}

	m.sets.Add(1)

	return nil
}

// Invalidate removes key.
func (m *CacheManager) Invalidate(ctx context.Context, key string) error {
	return m.cache.Delete(ctx, m.prefixed(key))
}

// GetStats returns a snapshot of the counters.
func (m *CacheManager) GetStats() *CacheStats {
	return &CacheStats{Hits: m.hits.Load(), Misses: m.misses.Load(), Sets: m.sets.Load()}
}

func (m *CacheManager) prefixed(key string) string {
	if m.options.KeyPrefix == "" {
		return key
	}

	return m.options.KeyPrefix + ":" + key
}
