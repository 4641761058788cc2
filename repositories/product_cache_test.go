package repositories

import (
	"context"
	"testing"
	"time"

	"bayka/models"

	"github.com/stretchr/testify/assert"
)

func TestCatalogCacheKey(t *testing.T) {
	key := CatalogCacheKey(models.ProductFilter{Page: 2, Limit: 12, CategoryID: 3, Search: "  Latte "})
	assert.Equal(t, "products_list_p2_l12_c3_slatte", key)
}

func TestRedisProductCache_SetGetInvalidate(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewProductCache(client, 5*time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "products_list_p1_l10_c0_s", []byte(`{"success":true}`))
	cache.Set(ctx, "products_list_p2_l10_c0_s", []byte(`{"success":true}`))
	a := assert.New(t)
	a.NoError(mr.Set("cart:keep", "{}"))

	data, ok := cache.Get(ctx, "products_list_p1_l10_c0_s")
	a.True(ok)
	a.JSONEq(`{"success":true}`, string(data))
	a.Equal(5*time.Minute, mr.TTL("products_list_p1_l10_c0_s"))

	cache.Invalidate(ctx)
	_, ok = cache.Get(ctx, "products_list_p1_l10_c0_s")
	a.False(ok)
	a.False(mr.Exists("products_list_p2_l10_c0_s"))
	a.True(mr.Exists("cart:keep"))
}

func TestNoopProductCache(t *testing.T) {
	cache := NewProductCache(nil, time.Minute)
	cache.Set(context.Background(), "k", []byte("v"))
	_, ok := cache.Get(context.Background(), "k")
	assert.False(t, ok)
}
