package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"bayka/models"
	"bayka/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFilter(t *testing.T) {
	f := NormalizeFilter(models.ProductFilter{Page: -1, Limit: 0, CategoryID: -3})
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 12, f.Limit)
	assert.Equal(t, 0, f.CategoryID)

	f = NormalizeFilter(models.ProductFilter{Page: 3, Limit: 500})
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 50, f.Limit)
}

func TestNewProductCard(t *testing.T) {
	card := NewProductCard(coldBrew())
	assert.Equal(t, "/shop/4", card.Href)
	assert.Equal(t, "-20%", card.Ribbon)
	require.NotNil(t, card.SalePrice)
	assert.True(t, dec("4.00").Equal(*card.SalePrice))
	assert.Empty(t, card.ImageSrc)

	card = NewProductCard(latte())
	assert.Nil(t, card.SalePrice)
	assert.Equal(t, "Latte", card.ImageAlt)
}

func TestCatalogService_ListProducts(t *testing.T) {
	svc := NewCatalogService(newStubProducts(latte(), coldBrew()), nil)

	res, err := svc.ListProducts(context.Background(), models.ProductFilter{Search: "brew"})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Cold Brew", res.Products[0].Name)
	assert.Equal(t, "brew", res.Search)
	assert.Equal(t, 1, res.Meta.TotalItems)
	assert.Equal(t, 1, res.Meta.TotalPages)
	assert.Equal(t, 12, res.Meta.Limit)
	assert.NotEmpty(t, res.Filters)
}

func TestCatalogService_Error(t *testing.T) {
	products := newStubProducts(latte())
	products.listErr = errors.New("db down")
	svc := NewCatalogService(products, nil)

	_, err := svc.ListProducts(context.Background(), models.ProductFilter{})
	assert.Error(t, err)
}

func TestCatalogService_CachesUntilInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	products := newStubProducts(latte())
	svc := NewCatalogService(products, repositories.NewProductCache(client, time.Minute))
	ctx := context.Background()

	res, err := svc.ListProducts(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, res.Products, 1)

	key := repositories.CatalogCacheKey(NormalizeFilter(models.ProductFilter{}))
	assert.True(t, mr.Exists(key))

	products.products[4] = coldBrew()
	res, err = svc.ListProducts(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, res.Products, 1, "served from cache")

	svc.Invalidate(ctx)
	assert.False(t, mr.Exists(key))

	res, err = svc.ListProducts(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, res.Products, 2)
}
