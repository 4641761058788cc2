package services

import (
	"context"
	"encoding/json"
	"log"
	"strconv"

	"bayka/models"
	"bayka/repositories"

	"github.com/shopspring/decimal"
)

const (
	defaultCatalogLimit = 12
	maxCatalogLimit     = 50
)

type catalogReader interface {
	ListCategories(ctx context.Context) ([]models.CategoryCount, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error)
}

type ProductCard struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Price     decimal.Decimal  `json:"price"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
	Ribbon    string           `json:"ribbon,omitempty"`
	Rating    decimal.Decimal  `json:"rating"`
	Category  string           `json:"category"`
	ImageSrc  string           `json:"image_src"`
	ImageAlt  string           `json:"image_alt"`
	Href      string           `json:"href"`
}

type CatalogResult struct {
	Products []ProductCard          `json:"products"`
	Filters  []models.CategoryCount `json:"filters"`
	Search   string                 `json:"search"`
	Meta     models.MetaData        `json:"meta"`
}

type CatalogService struct {
	products catalogReader
	cache    repositories.ProductCache
}

func NewCatalogService(products catalogReader, cache repositories.ProductCache) *CatalogService {
	if cache == nil {
		cache = repositories.NoopProductCache{}
	}
	return &CatalogService{products: products, cache: cache}
}

func NormalizeFilter(filter models.ProductFilter) models.ProductFilter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultCatalogLimit
	}
	if filter.Limit > maxCatalogLimit {
		filter.Limit = maxCatalogLimit
	}
	if filter.CategoryID < 0 {
		filter.CategoryID = 0
	}
	return filter
}

func (s *CatalogService) ListProducts(ctx context.Context, filter models.ProductFilter) (*CatalogResult, error) {
	filter = NormalizeFilter(filter)
	key := repositories.CatalogCacheKey(filter)

	if data, ok := s.cache.Get(ctx, key); ok {
		var cached CatalogResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		log.Printf("catalog cache entry %s unreadable, reloading", key)
	}

	products, total, err := s.products.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	filters, err := s.products.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := &CatalogResult{
		Products: make([]ProductCard, 0, len(products)),
		Filters:  filters,
		Search:   filter.Search,
		Meta:     models.NewMetaData(filter.Page, filter.Limit, total),
	}
	for i := range products {
		result.Products = append(result.Products, NewProductCard(&products[i]))
	}

	if data, err := json.Marshal(result); err == nil {
		s.cache.Set(ctx, key, data)
	}
	return result, nil
}

// Invalidate drops every cached catalog page.
func (s *CatalogService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx)
}

func NewProductCard(p *models.Product) ProductCard {
	img := p.PrimaryImage()
	card := ProductCard{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Ribbon:   Ribbon(p),
		Rating:   p.Rating,
		Category: p.CategoryName,
		ImageSrc: img.Src,
		ImageAlt: img.Alt,
		Href:     "/shop/" + strconv.FormatInt(p.ID, 10),
	}
	if p.HasValidSale() {
		sale := p.SalePrice.Decimal
		card.SalePrice = &sale
	}
	return card
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.CategoryCount, error) {
	return s.products.ListCategories(ctx)
}
