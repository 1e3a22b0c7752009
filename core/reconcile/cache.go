package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Cache holds pre-built indices for fast targeted reconciliation.
type Cache struct {
	DBIndex      map[string]Entry
	StorageIndex map[string][]string

	Built time.Time
	TTL   time.Duration
}

// IsExpired returns true if this cache has expired based on its TTL.
func (c *Cache) IsExpired() bool {
	if c.TTL == 0 {
		return true
	}
	return time.Since(c.Built) > c.TTL
}

type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*Cache
	sf     singleflight.Group
}

var globalCacheStore = &cacheStore{
	caches: make(map[string]*Cache),
}

// BuildCache loads both indices concurrently. It does not store the result;
// use GetOrBuildCache for that.
func BuildCache(ctx context.Context, spec *Spec) (*Cache, error) {
	var (
		dbIndex      map[string]Entry
		storageIndex map[string][]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dbIndex, err = spec.Adapter.LoadDBIndex(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		storageIndex, err = spec.Adapter.LoadStorageIndex(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Cache{
		DBIndex:      dbIndex,
		StorageIndex: storageIndex,
		Built:        time.Now(),
		TTL:          spec.CacheTTL,
	}, nil
}

// GetOrBuildCache returns the cached indices for spec, rebuilding them when
// missing or expired. Concurrent rebuilds of the same key are collapsed.
func GetOrBuildCache(ctx context.Context, spec *Spec) (*Cache, error) {
	key := spec.CacheKey()

	if cache, ok := globalCacheStore.get(key); ok {
		return cache, nil
	}

	v, err, _ := globalCacheStore.sf.Do(key, func() (any, error) {
		if cache, ok := globalCacheStore.get(key); ok {
			return cache, nil
		}

		cache, err := BuildCache(ctx, spec)
		if err != nil {
			return nil, err
		}

		globalCacheStore.mu.Lock()
		globalCacheStore.caches[key] = cache
		globalCacheStore.mu.Unlock()
		return cache, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Cache), nil
}

// InvalidateCache drops the cached indices of spec.
func InvalidateCache(spec *Spec) {
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, spec.CacheKey())
	globalCacheStore.mu.Unlock()
}

func (s *cacheStore) get(key string) (*Cache, bool) {
	s.mu.RLock()
	cache, ok := s.caches[key]
	s.mu.RUnlock()
	if !ok || cache.IsExpired() {
		return nil, false
	}
	return cache, true
}
