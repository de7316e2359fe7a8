package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"

	"sme_platform/pkg/models"
)

const cacheTTL = 24 * time.Hour

// CachedSource wraps another source with a Redis read-through cache.
// Cache failures degrade to the inner source; they never fail a lookup.
type CachedSource struct {
	client *redis.Client
	inner  Source
}

func NewCachedSource(addr string, inner Source) (*CachedSource, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})
	if _, err := client.Ping().Result(); err != nil {
		return nil, fmt.Errorf("benchmark_cache_connect: %w", err)
	}
	return &CachedSource{client: client, inner: inner}, nil
}

func cacheKey(industry models.Industry) string {
	return "benchmark:" + string(industry)
}

func (c *CachedSource) Lookup(ctx context.Context, industry models.Industry) (*models.IndustryBenchmark, error) {
	if raw, err := c.client.Get(cacheKey(industry)).Result(); err == nil {
		var b models.IndustryBenchmark
		if json.Unmarshal([]byte(raw), &b) == nil {
			return &b, nil
		}
	}

	b, err := c.inner.Lookup(ctx, industry)
	if err != nil || b == nil {
		return b, err
	}

	if raw, err := json.Marshal(b); err == nil {
		c.client.Set(cacheKey(industry), raw, cacheTTL)
	}
	return b, nil
}

func (c *CachedSource) Close() error {
	return c.client.Close()
}
