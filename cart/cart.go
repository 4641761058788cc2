// Package cart holds the visitor's shopping cart as a plain value: an ordered
// list of line items plus the side-panel visibility flag. It performs no I/O.
package cart

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidItem = errors.New("invalid cart item")

// Item is one product/quantity pairing. ID identifies the line: the product id,
// suffixed with the variant when one was picked.
type Item struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Variant   string          `json:"variant,omitempty"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageSrc  string          `json:"image_src,omitempty"`
	ImageAlt  string          `json:"image_alt,omitempty"`
}

func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LineID builds the line identity for a product and optional variant.
func LineID(productID, variant string) string {
	variant = strings.TrimSpace(variant)
	if variant == "" {
		return productID
	}
	return productID + ":" + strings.ToLower(strings.ReplaceAll(variant, " ", "-"))
}

type Cart struct {
	items []Item
	open  bool
}

func New() *Cart {
	return &Cart{}
}

// Add inserts item, or increments the quantity of the line with the same ID.
func (c *Cart) Add(item Item) error {
	if item.ID == "" {
		item.ID = LineID(item.ProductID, item.Variant)
	}
	if item.ID == "" || item.Quantity < 1 || item.UnitPrice.IsNegative() {
		return ErrInvalidItem
	}

	if idx := c.indexOf(item.ID); idx >= 0 {
		c.items[idx].Quantity += item.Quantity
		return nil
	}
	c.items = append(c.items, item)
	return nil
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
// Unknown ids are ignored.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	idx := c.indexOf(id)
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		c.removeAt(idx)
		return
	}
	c.items[idx].Quantity = quantity
}

func (c *Cart) Remove(id string) {
	if idx := c.indexOf(id); idx >= 0 {
		c.removeAt(idx)
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// ProductQuantity is the number of units of productID across all its lines.
func (c *Cart) ProductQuantity(productID string) int {
	n := 0
	for _, it := range c.items {
		if it.ProductID == productID {
			n += it.Quantity
		}
	}
	return n
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsOpen() bool {
	return c.open
}

func (c *Cart) SetOpen(open bool) {
	c.open = open
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// CheckoutItems is the ordered list submitted at checkout.
func (c *Cart) CheckoutItems() []Item {
	return c.Items()
}

func (c *Cart) Get(id string) (Item, bool) {
	if idx := c.indexOf(id); idx >= 0 {
		return c.items[idx], true
	}
	return Item{}, false
}

func (c *Cart) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}

// Snapshot is the serialisable form of a Cart.
type Snapshot struct {
	Items []Item `json:"items"`
	Open  bool   `json:"is_open"`
}

func (c *Cart) Snapshot() Snapshot {
	return Snapshot{Items: c.Items(), Open: c.open}
}

// FromSnapshot rebuilds a cart through Add, so stored duplicates merge and
// invalid lines are dropped.
func FromSnapshot(s Snapshot) *Cart {
	c := &Cart{open: s.Open}
	for _, it := range s.Items {
		_ = c.Add(it)
	}
	return c
}
