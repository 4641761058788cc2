package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"bayka/cart"
	"bayka/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRibbon(t *testing.T) {
	assert.Equal(t, "-20%", Ribbon(coldBrew()))
	assert.Empty(t, Ribbon(latte()))

	p := coldBrew()
	p.SalePrice = decimal.NewNullDecimal(dec("6.00"))
	assert.Empty(t, Ribbon(p), "sale above price is ignored")

	p.SalePrice = decimal.NewNullDecimal(dec("3.33"))
	assert.Equal(t, "-33%", Ribbon(p))
}

func TestInventoryStatus(t *testing.T) {
	tests := []struct {
		stock int
		want  string
	}{
		{0, InventoryOutOfStock},
		{1, InventoryLowStock},
		{5, InventoryLowStock},
		{6, InventoryInStock},
		{120, InventoryInStock},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InventoryStatus(tt.stock), "stock %d", tt.stock)
	}
}

func TestQuantityOptions(t *testing.T) {
	assert.Equal(t, []int{}, QuantityOptions(0))
	assert.Equal(t, []int{1, 2, 3}, QuantityOptions(3))
	assert.Len(t, QuantityOptions(120), 10)
}

func TestBuildDetail_Defaults(t *testing.T) {
	d := BuildDetail(latte(), "", 0)

	assert.Equal(t, "Whole Milk", d.SelectedVariant)
	assert.True(t, dec("4.50").Equal(d.UnitPrice))
	assert.Equal(t, 1, d.SelectedQuantity)
	assert.Equal(t, InventoryInStock, d.Meta.InventoryStatus)
	assert.Equal(t, "BAY-LAT-001", d.Meta.SKU)
	assert.Nil(t, d.Meta.SalePrice)
	require.Len(t, d.Variants, 2)
	assert.True(t, d.Variants[0].Selected)
	assert.False(t, d.Variants[1].Selected)
}

func TestBuildDetail_VariantAndClamp(t *testing.T) {
	d := BuildDetail(latte(), "OAT MILK", 25)
	assert.Equal(t, "Oat Milk", d.SelectedVariant)
	assert.True(t, dec("5.00").Equal(d.UnitPrice))
	assert.Equal(t, 10, d.SelectedQuantity)

	d = BuildDetail(latte(), "Soy", 2)
	assert.Equal(t, "Whole Milk", d.SelectedVariant, "unknown variant falls back to the first")
	assert.Equal(t, 2, d.SelectedQuantity)
}

func TestBuildDetail_SaleAndNoImages(t *testing.T) {
	d := BuildDetail(coldBrew(), "", 9)

	require.NotNil(t, d.Meta.SalePrice)
	assert.True(t, dec("4.00").Equal(*d.Meta.SalePrice))
	assert.True(t, dec("4.00").Equal(d.UnitPrice))
	assert.Equal(t, "-20%", d.Meta.Ribbon)
	assert.Equal(t, InventoryLowStock, d.Meta.InventoryStatus)
	assert.Equal(t, 3, d.SelectedQuantity)
	assert.Empty(t, d.SelectedVariant)
	assert.NotNil(t, d.Images)
	assert.Empty(t, d.Variants)
}

func TestGetDetail(t *testing.T) {
	svc := NewProductDetailService(newStubProducts(latte()))

	d, err := svc.GetDetail(context.Background(), 1, "", 1)
	require.NoError(t, err)
	assert.Equal(t, "Classic Latte", d.Product.Name)

	_, err = svc.GetDetail(context.Background(), 2, "", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateCartItem(t *testing.T) {
	soldOut := &models.Product{ID: 7, Name: "Seasonal Mocha", Price: dec("5.50")}
	svc := NewProductDetailService(newStubProducts(latte(), coldBrew(), soldOut))
	ctx := context.Background()

	item, err := svc.CreateCartItem(ctx, 1, "oat milk", 2)
	require.NoError(t, err)
	assert.Equal(t, cart.LineID("1", "Oat Milk"), item.ID)
	assert.Equal(t, "1", item.ProductID)
	assert.Equal(t, "Oat Milk", item.Variant)
	assert.True(t, dec("5.00").Equal(item.UnitPrice))
	assert.Equal(t, "https://img.example.com/latte.jpg", item.ImageSrc)

	item, err = svc.CreateCartItem(ctx, 1, "", 1)
	require.NoError(t, err)
	assert.Equal(t, "Whole Milk", item.Variant)

	item, err = svc.CreateCartItem(ctx, 4, "", 3)
	require.NoError(t, err)
	assert.Equal(t, "4", item.ID)
	assert.True(t, dec("4.00").Equal(item.UnitPrice))

	_, err = svc.CreateCartItem(ctx, 4, "", 4)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = svc.CreateCartItem(ctx, 7, "", 1)
	assert.ErrorIs(t, err, ErrOutOfStock)

	_, err = svc.CreateCartItem(ctx, 1, "", 0)
	assert.ErrorIs(t, err, cart.ErrInvalidItem)

	_, err = svc.CreateCartItem(ctx, 1, "Soy", 1)
	assert.ErrorIs(t, err, ErrInvalidVariant)

	_, err = svc.CreateCartItem(ctx, 42, "", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// blockingFinder holds every lookup until release is closed, then fails with
// the lookup's own context error if it has one.
type blockingFinder struct {
	product *models.Product
	started chan struct{}
	release chan struct{}
}

func (f *blockingFinder) GetProductByID(ctx context.Context, _ int64) (*models.Product, error) {
	f.started <- struct{}{}
	<-f.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cp := *f.product
	return &cp, nil
}

func TestLoad_CancelledCallerDoesNotFailOthers(t *testing.T) {
	finder := &blockingFinder{product: latte(), started: make(chan struct{}, 2), release: make(chan struct{})}
	svc := NewProductDetailService(finder)

	first, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.GetDetail(first, 1, "", 1)
	}()
	<-finder.started
	cancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[1] = svc.GetDetail(context.Background(), 1, "", 1)
	}()
	time.Sleep(50 * time.Millisecond)
	close(finder.release)
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
}
