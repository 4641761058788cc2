package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"bayka/cart"
	"bayka/models"
	"bayka/repositories"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	InventoryInStock    = "in-stock"
	InventoryLowStock   = "low-stock"
	InventoryOutOfStock = "out-of-stock"

	lowStockThreshold  = 5
	maxQuantityOptions = 10
)

type productFinder interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
}

type DetailMeta struct {
	SalePrice         *decimal.Decimal `json:"sale_price,omitempty"`
	Ribbon            string           `json:"ribbon,omitempty"`
	InventoryStatus   string           `json:"inventory_status"`
	InventoryQuantity int              `json:"inventory_quantity"`
	SKU               string           `json:"sku"`
}

type VariantOption struct {
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	Selected        bool            `json:"selected"`
}

type ProductDetail struct {
	Product          *models.Product       `json:"product"`
	Images           []models.ProductImage `json:"images"`
	Variants         []VariantOption       `json:"variants"`
	SelectedVariant  string                `json:"selected_variant,omitempty"`
	SelectedQuantity int                   `json:"selected_quantity"`
	QuantityOptions  []int                 `json:"quantity_options"`
	UnitPrice        decimal.Decimal       `json:"unit_price"`
	Meta             DetailMeta            `json:"meta"`
}

type ProductDetailService struct {
	products productFinder
	sf       singleflight.Group
}

func NewProductDetailService(products productFinder) *ProductDetailService {
	return &ProductDetailService{products: products}
}

// load coalesces concurrent lookups of the same product. The shared lookup
// is not bound to any one caller's cancellation.
func (s *ProductDetailService) load(ctx context.Context, id int64) (*models.Product, error) {
	v, err, _ := s.sf.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		return s.products.GetProductByID(context.WithoutCancel(ctx), id)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	p := *v.(*models.Product)
	return &p, nil
}

func (s *ProductDetailService) GetDetail(ctx context.Context, id int64, variant string, quantity int) (*ProductDetail, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildDetail(p, variant, quantity), nil
}

// CreateCartItem resolves a cart line from the catalog. An empty variant picks
// the product's first variant.
func (s *ProductDetailService) CreateCartItem(ctx context.Context, id int64, variant string, quantity int) (cart.Item, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return cart.Item{}, err
	}

	if variant != "" {
		if _, ok := p.Variant(variant); !ok {
			return cart.Item{}, fmt.Errorf("%w: %q", ErrInvalidVariant, variant)
		}
	}
	if p.Stock == 0 {
		return cart.Item{}, ErrOutOfStock
	}
	if quantity < 1 {
		return cart.Item{}, cart.ErrInvalidItem
	}
	if quantity > p.Stock {
		return cart.Item{}, fmt.Errorf("%w: %d available", ErrInsufficientStock, p.Stock)
	}

	d := BuildDetail(p, variant, quantity)
	img := p.PrimaryImage()
	productID := strconv.FormatInt(p.ID, 10)
	return cart.Item{
		ID:        cart.LineID(productID, d.SelectedVariant),
		ProductID: productID,
		Variant:   d.SelectedVariant,
		Name:      p.Name,
		UnitPrice: d.UnitPrice,
		Quantity:  quantity,
		ImageSrc:  img.Src,
		ImageAlt:  img.Alt,
	}, nil
}

// AvailableStock is the most units of a product one cart may hold, summed
// over its variants.
func (s *ProductDetailService) AvailableStock(ctx context.Context, id int64) (int, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}

// BuildDetail derives the view of a product for the given selection.
func BuildDetail(p *models.Product, variant string, quantity int) *ProductDetail {
	d := &ProductDetail{
		Product:         p,
		Images:          p.Images,
		Variants:        []VariantOption{},
		QuantityOptions: QuantityOptions(p.Stock),
		Meta: DetailMeta{
			Ribbon:            Ribbon(p),
			InventoryStatus:   InventoryStatus(p.Stock),
			InventoryQuantity: p.Stock,
			SKU:               p.SKU,
		},
	}
	if d.Images == nil {
		d.Images = []models.ProductImage{}
	}
	if p.HasValidSale() {
		sale := p.SalePrice.Decimal
		d.Meta.SalePrice = &sale
	}

	selected, ok := p.Variant(variant)
	if !ok && len(p.Variants) > 0 {
		selected, ok = p.Variants[0], true
	}
	for _, v := range p.Variants {
		d.Variants = append(d.Variants, VariantOption{
			Name:            v.Name,
			PriceAdjustment: v.PriceAdjustment,
			Selected:        ok && v.ID == selected.ID,
		})
	}

	d.UnitPrice = p.EffectivePrice()
	if ok {
		d.SelectedVariant = selected.Name
		d.UnitPrice = d.UnitPrice.Add(selected.PriceAdjustment)
	}

	limit := len(d.QuantityOptions)
	switch {
	case limit == 0, quantity < 1:
		d.SelectedQuantity = 1
	case quantity > limit:
		d.SelectedQuantity = limit
	default:
		d.SelectedQuantity = quantity
	}
	return d
}

// Ribbon is "-N%" for a valid sale price, empty otherwise.
func Ribbon(p *models.Product) string {
	if !p.HasValidSale() || !p.Price.IsPositive() {
		return ""
	}
	off := p.Price.Sub(p.SalePrice.Decimal).Div(p.Price).Mul(decimal.NewFromInt(100)).Round(0)
	return "-" + off.String() + "%"
}

func InventoryStatus(stock int) string {
	switch {
	case stock <= 0:
		return InventoryOutOfStock
	case stock <= lowStockThreshold:
		return InventoryLowStock
	default:
		return InventoryInStock
	}
}

// QuantityOptions lists 1..min(10, stock).
func QuantityOptions(stock int) []int {
	n := stock
	if n > maxQuantityOptions {
		n = maxQuantityOptions
	}
	opts := []int{}
	for i := 1; i <= n; i++ {
		opts = append(opts, i)
	}
	return opts
}
