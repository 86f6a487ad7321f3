// Package cache provides the Redis-backed read-through cache for showcase
// products.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

var _ ports.ProductCache = (*ShowcaseCache)(nil)

// ShowcaseCache stores product projections as JSON under
// "<service>:showcase:<id>" with a fixed TTL.
type ShowcaseCache struct {
	client      *redis.Client
	serviceName string
	ttl         time.Duration
}

func NewShowcaseCache(addr, serviceName string, ttl time.Duration) *ShowcaseCache {
	return &ShowcaseCache{
		client:      redis.NewClient(&redis.Options{Addr: addr}),
		serviceName: serviceName,
		ttl:         ttl,
	}
}

// Get returns the cached product, or ok=false on a miss. Transport errors
// are treated as misses: the repository is the source of truth.
func (c *ShowcaseCache) Get(ctx context.Context, id vo.ID) (*entity.ShowcaseProduct, bool) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err != nil {
		return nil, false
	}
	var product entity.ShowcaseProduct
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		return nil, false
	}
	return &product, true
}

func (c *ShowcaseCache) Set(ctx context.Context, product *entity.ShowcaseProduct) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(product.ID), data, c.ttl).Err()
}

func (c *ShowcaseCache) key(id vo.ID) string {
	return fmt.Sprintf("%s:showcase:%s", c.serviceName, id)
}
