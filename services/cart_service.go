package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"bayka/cart"
	"bayka/repositories"

	"github.com/shopspring/decimal"
)

type cartItemResolver interface {
	CreateCartItem(ctx context.Context, productID int64, variant string, quantity int) (cart.Item, error)
	AvailableStock(ctx context.Context, productID int64) (int, error)
}

type CartView struct {
	Items  []cart.Item     `json:"items"`
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
	IsOpen bool            `json:"is_open"`
}

func NewCartView(c *cart.Cart) CartView {
	return CartView{
		Items:  c.Items(),
		Total:  c.Total(),
		Count:  c.Count(),
		IsOpen: c.IsOpen(),
	}
}

// CartService applies cart mutations to the visitor's stored cart. Mutations
// for one session are serialised.
type CartService struct {
	store    repositories.CartStore
	resolver cartItemResolver

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock lives in CartService.locks only while refs > 0.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewCartService(store repositories.CartStore, resolver cartItemResolver) *CartService {
	return &CartService{store: store, resolver: resolver, locks: map[string]*sessionLock{}}
}

func (s *CartService) lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		defer s.mu.Unlock()
		if l.refs--; l.refs == 0 {
			delete(s.locks, sessionID)
		}
	}
}

func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(c *cart.Cart) error) (CartView, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	if err := fn(c); err != nil {
		return CartView{}, err
	}
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return CartView{}, err
	}
	return NewCartView(c), nil
}

func (s *CartService) Get(ctx context.Context, sessionID string) (CartView, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	return NewCartView(c), nil
}

// CheckoutItems returns the lines to submit for this session's cart.
func (s *CartService) CheckoutItems(ctx context.Context, sessionID string) ([]cart.Item, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return c.CheckoutItems(), nil
}

// AddItem prices the line from the catalog before adding it.
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID int64, variant string, quantity int) (CartView, error) {
	item, err := s.resolver.CreateCartItem(ctx, productID, variant, quantity)
	if err != nil {
		return CartView{}, err
	}
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		if err := s.checkStock(ctx, c, item.ProductID, item.Quantity); err != nil {
			return err
		}
		return c.Add(item)
	})
}

// UpdateQuantity sets a line's quantity. Raising it is checked against the
// product's stock; lowering it never is.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (CartView, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		if line, ok := c.Get(lineID); ok && quantity > line.Quantity {
			if err := s.checkStock(ctx, c, line.ProductID, quantity-line.Quantity); err != nil {
				return err
			}
		}
		c.UpdateQuantity(lineID, quantity)
		return nil
	})
}

// checkStock rejects adding n units of productID when the cart would then hold
// more than the product's stock across all of its lines.
func (s *CartService) checkStock(ctx context.Context, c *cart.Cart, productID string, n int) error {
	id, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: product %q", cart.ErrInvalidItem, productID)
	}
	stock, err := s.resolver.AvailableStock(ctx, id)
	if err != nil {
		return err
	}
	held := c.ProductQuantity(productID)
	if held+n > stock {
		return fmt.Errorf("%w: %d available, %d already in cart", ErrInsufficientStock, stock, held)
	}
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID, lineID string) (CartView, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.Remove(lineID)
		return nil
	})
}

func (s *CartService) Clear(ctx context.Context, sessionID string) (CartView, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

func (s *CartService) SetOpen(ctx context.Context, sessionID string, open bool) (CartView, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.SetOpen(open)
		return nil
	})
}
