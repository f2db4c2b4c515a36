package stats

import (
	"context"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the number of country sets kept by a CachedLoader.
const DefaultCacheSize = 16

// CachedLoader memoizes loads by country set. Entries are evicted least
// recently used first. Concurrent loads of the same set share one read and
// failed loads are not cached.
type CachedLoader struct {
	dataset *Dataset
	source  Source
	logger  *zap.Logger

	mu    sync.Mutex
	cache *lru.Cache
	group singleflight.Group
}

func NewCachedLoader(ds *Dataset, source Source, size int, logger *zap.Logger) *CachedLoader {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &CachedLoader{
		dataset: ds,
		source:  source,
		logger:  logger,
		cache:   lru.New(size),
	}
	c.cache.OnEvicted = func(key lru.Key, _ interface{}) {
		c.logger.Debug("Evicted country set", zap.Any("key", key))
	}

	return c
}

// CacheKey returns the canonical key for a normalized country set.
func CacheKey(set []string) string {
	return strings.Join(set, ",")
}

// Load returns the cached table for the selection or loads it from the
// source. The returned table is shared and must not be modified.
func (c *CachedLoader) Load(ctx context.Context, countries []string) (Table, error) {
	set, err := c.dataset.Normalize(countries)
	if err != nil {
		return nil, err
	}
	key := CacheKey(set)

	if t, ok := c.get(key); ok {
		return t, nil
	}

	// The shared load outlives any single caller; each caller still stops
	// waiting when its own context is done.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		if t, ok := c.get(key); ok {
			return t, nil
		}

		t, err := c.source.Load(loadCtx, set)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache.Add(key, t)
		c.mu.Unlock()

		c.logger.Info("Loaded country set",
			zap.String("key", key),
			zap.Int("rows", len(t)))

		return t, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		c.logger.Debug("Shared in-flight load", zap.String("key", key))
	}

	return res.Val.(Table), nil
}

// Len returns the number of cached country sets.
func (c *CachedLoader) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

func (c *CachedLoader) get(key string) (Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	return v.(Table), true
}
