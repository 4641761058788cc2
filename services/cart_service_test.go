package services

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"bayka/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService() *CartService {
	return NewCartService(
		repositories.NewMemoryCartStore(time.Hour),
		NewProductDetailService(newStubProducts(latte(), coldBrew())),
	)
}

func TestCartService_AddMergesLines(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	view, err := svc.AddItem(ctx, "sess", 1, "Oat Milk", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Count)

	view, err = svc.AddItem(ctx, "sess", 1, "oat milk", 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.True(t, dec("15.00").Equal(view.Total))

	view, err = svc.AddItem(ctx, "sess", 4, "", 1)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, 4, view.Count)
	assert.True(t, dec("19.00").Equal(view.Total))
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "a", 1, "", 1)
	require.NoError(t, err)

	view, err := svc.Get(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}

func TestCartService_RejectedAddLeavesCart(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", 1, "", 1)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "sess", 4, "", 10)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	view, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
}

func TestCartService_QuantityRemoveClear(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	view, err := svc.AddItem(ctx, "sess", 1, "", 1)
	require.NoError(t, err)
	lineID := view.Items[0].ID
	_, err = svc.AddItem(ctx, "sess", 4, "", 1)
	require.NoError(t, err)

	view, err = svc.UpdateQuantity(ctx, "sess", lineID, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Count)

	view, err = svc.UpdateQuantity(ctx, "sess", "missing", 9)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Count)

	view, err = svc.UpdateQuantity(ctx, "sess", lineID, 0)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	view, err = svc.RemoveItem(ctx, "sess", "4")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = svc.AddItem(ctx, "sess", 4, "", 2)
	require.NoError(t, err)
	view, err = svc.Clear(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.Count)
}

func TestCartService_PanelAndCheckoutItems(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	view, err := svc.SetOpen(ctx, "sess", true)
	require.NoError(t, err)
	assert.True(t, view.IsOpen)

	_, err = svc.AddItem(ctx, "sess", 1, "", 2)
	require.NoError(t, err)

	items, err := svc.CheckoutItems(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, items, 1)
	items[0].Quantity = 99

	view, err = svc.Get(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Count)
	assert.True(t, view.IsOpen)
}

func TestCartService_ConcurrentAdds(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddItem(ctx, "sess", 1, "", 1)
		}()
	}
	wg.Wait()

	view, err := svc.Get(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, 20, view.Count)
}

func TestCartService_StockHeldAcrossAdds(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", 4, "", 2)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "sess", 4, "", 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	view, err := svc.AddItem(ctx, "sess", 4, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Count)

	_, err = svc.AddItem(ctx, "sess", 4, "", 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	view, err = svc.Get(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
}

func TestCartService_UpdateQuantityRespectsStock(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess", 4, "", 1)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, "sess", "4", 500)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	view, err := svc.UpdateQuantity(ctx, "sess", "4", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Count)

	view, err = svc.UpdateQuantity(ctx, "sess", "4", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Count)

	items, err := svc.CheckoutItems(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartService_ReleasesSessionLocks(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.SetOpen(ctx, "visitor-"+strconv.Itoa(i%50), true)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Empty(t, svc.locks)
}
