package service

import (
	"context"
	"sync"

	"storefront-gateway/internal/models"
	"storefront-gateway/internal/util"

	"golang.org/x/sync/singleflight"
)

// resolveCache deduplicates product lookups within a single order-list
// refresh. Concurrent requests for the same product ID share one
// in-flight call, and completed results (including failures) are
// memoized for the remainder of the refresh. A new cache is created per
// refresh, so nothing here outlives the call that built it.
type resolveCache struct {
	inventory InventoryAPI

	group   singleflight.Group
	mu      sync.Mutex
	results map[string]resolved
}

type resolved struct {
	product *models.Product
	err     error
}

func newResolveCache(inventory InventoryAPI) *resolveCache {
	return &resolveCache{
		inventory: inventory,
		results:   make(map[string]resolved),
	}
}

// Get returns the product for the given ID, fetching it at most once
// per cache lifetime.
func (c *resolveCache) Get(ctx context.Context, productID string) (*models.Product, error) {
	util.ProductResolvesTotal.Inc()

	c.mu.Lock()
	if r, ok := c.results[productID]; ok {
		c.mu.Unlock()
		util.ProductResolveCacheHits.Inc()
		return r.product, r.err
	}
	c.mu.Unlock()

	v, err, shared := c.group.Do(productID, func() (any, error) {
		// Resolution spans all catalogs so externally sourced orders
		// still display a product name.
		product, err := c.inventory.GetProduct(ctx, productID, true)

		c.mu.Lock()
		c.results[productID] = resolved{product: product, err: err}
		c.mu.Unlock()

		return product, err
	})
	if shared {
		util.ProductResolveCacheHits.Inc()
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.Product), nil
}
