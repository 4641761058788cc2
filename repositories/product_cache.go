package repositories

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"bayka/models"

	"github.com/redis/go-redis/v9"
)

const catalogKeyPrefix = "products_list_"

// ProductCache holds rendered catalog pages keyed by query.
type ProductCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte)
	Invalidate(ctx context.Context)
}

func CatalogCacheKey(filter models.ProductFilter) string {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	return fmt.Sprintf("%sp%d_l%d_c%d_s%s", catalogKeyPrefix, filter.Page, filter.Limit, filter.CategoryID, search)
}

func NewProductCache(client *redis.Client, ttl time.Duration) ProductCache {
	if client == nil {
		return NoopProductCache{}
	}
	return &RedisProductCache{client: client, ttl: ttl}
}

type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func (c *RedisProductCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("catalog cache get error: %v", err)
		}
		return nil, false
	}
	return data, true
}

func (c *RedisProductCache) Set(ctx context.Context, key string, data []byte) {
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("catalog cache set error: %v", err)
	}
}

func (c *RedisProductCache) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, catalogKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("catalog cache invalidate error: %v", err)
	}
}

type NoopProductCache struct{}

func (NoopProductCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (NoopProductCache) Set(context.Context, string, []byte)        {}
func (NoopProductCache) Invalidate(context.Context)                 {}
