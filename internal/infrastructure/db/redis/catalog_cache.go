package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/merrbio/marketplace-api/internal/api/metrics"
	"github.com/merrbio/marketplace-api/internal/core/domain"
)

const (
	catalogKey = "catalog:products"
	catalogTTL = time.Minute
)

// CatalogCache keeps a short-lived JSON snapshot of the product catalog in
// Redis so the public listing does not hit PostgreSQL on every request.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// Get returns the cached catalog and whether the entry was present.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.Product, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		// A corrupt entry behaves like a miss; it will be overwritten.
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}

	metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
	return products, true, nil
}

// Set stores the catalog snapshot (expires after catalogTTL).
func (c *CatalogCache) Set(ctx context.Context, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("catalog cache marshal: %w", err)
	}
	return c.client.Set(ctx, catalogKey, raw, catalogTTL).Err()
}

// Invalidate drops the snapshot after any catalog mutation.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
