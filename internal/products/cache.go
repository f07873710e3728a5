package products

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	redisclient "github.com/angelmondragon/storefront/pkg/redis"
)

const cacheName = "products"

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// CachedSource is a read-through Redis cache in front of a catalog.Source.
// Cache failures are logged and fall through to the source. Concurrent
// misses on one key share a single source call.
type CachedSource struct {
	source  catalog.Source
	cache   cacheStore
	ttl     time.Duration
	metrics *metrics.CacheMetrics
	logg    *logger.Logger
	loads   singleflight.Group
}

func NewCachedSource(source catalog.Source, cache cacheStore, ttl time.Duration, m *metrics.CacheMetrics, logg *logger.Logger) *CachedSource {
	if logg == nil {
		logg = logger.Nop()
	}
	return &CachedSource{source: source, cache: cache, ttl: ttl, metrics: m, logg: logg}
}

func (c *CachedSource) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return readThrough(ctx, c, c.key("all"), c.source.ListProducts)
}

func (c *CachedSource) GetProductBySlug(ctx context.Context, slug string) (catalog.Product, error) {
	return readThrough(ctx, c, c.key("slug", slug), func(ctx context.Context) (catalog.Product, error) {
		return c.source.GetProductBySlug(ctx, slug)
	})
}

func (c *CachedSource) ListFeaturedProducts(ctx context.Context, limit int) ([]catalog.Product, error) {
	return readThrough(ctx, c, c.key("featured", strconv.Itoa(limit)), func(ctx context.Context) ([]catalog.Product, error) {
		return c.source.ListFeaturedProducts(ctx, limit)
	})
}

// Invalidate drops the list caches; slug entries expire on their own.
func (c *CachedSource) Invalidate(ctx context.Context, featuredLimits ...int) error {
	keys := []string{c.key("all")}
	for _, limit := range featuredLimits {
		keys = append(keys, c.key("featured", strconv.Itoa(limit)))
	}
	return c.cache.Del(ctx, keys...)
}

func (c *CachedSource) key(parts ...string) string {
	return c.cache.CacheKey(append([]string{cacheName}, parts...)...)
}

func (c *CachedSource) warn(ctx context.Context, msg, key string, err error) {
	c.logg.Warn(c.logg.WithFields(ctx, map[string]any{"key": key, "error": err.Error()}), msg)
}

// readThrough serves key from the cache or loads it, caching only successes.
func readThrough[T any](ctx context.Context, c *CachedSource, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	raw, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		if json.Unmarshal([]byte(raw), &cached) == nil {
			c.metrics.Hit(cacheName)
			return cached, nil
		}
		c.metrics.Error(cacheName)
	case redisclient.IsNil(err):
		c.metrics.Miss(cacheName)
	default:
		c.metrics.Error(cacheName)
		c.warn(ctx, "products.cache_read_failed", key, err)
	}

	v, err, _ := c.loads.Do(key, func() (any, error) {
		value, err := load(ctx)
		if err != nil {
			return value, err
		}
		if encoded, jsonErr := json.Marshal(value); jsonErr == nil {
			if setErr := c.cache.Set(ctx, key, string(encoded), c.ttl); setErr != nil {
				c.warn(ctx, "products.cache_write_failed", key, setErr)
			}
		}
		return value, nil
	})
	value, _ := v.(T)
	return value, err
}
