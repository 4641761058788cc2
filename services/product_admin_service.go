package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"bayka/libs"
	"bayka/models"
	"bayka/repositories"

	"github.com/shopspring/decimal"
)

type productWriter interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	AddImage(ctx context.Context, productID int64, img *models.ProductImage) error
}

type imageUploader interface {
	UploadImage(ctx context.Context, file multipart.File, filename, folder string) (string, string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

type catalogInvalidator interface {
	Invalidate(ctx context.Context)
}

// ProductAdminService backs the admin catalog endpoints. Every write drops the
// cached catalog pages.
type ProductAdminService struct {
	products productWriter
	uploader imageUploader
	catalog  catalogInvalidator
}

func NewProductAdminService(products productWriter, uploader imageUploader, catalog catalogInvalidator) *ProductAdminService {
	return &ProductAdminService{products: products, uploader: uploader, catalog: catalog}
}

func (s *ProductAdminService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Stock:       req.Stock,
		SKU:         strings.TrimSpace(req.SKU),
	}
	if req.SalePrice != nil {
		if err := validateSale(req.Price, *req.SalePrice); err != nil {
			return nil, err
		}
		product.SalePrice.Decimal = *req.SalePrice
		product.SalePrice.Valid = true
	}
	if req.ImageURL != "" {
		alt := req.ImageAlt
		if alt == "" {
			alt = product.Name
		}
		product.Images = []models.ProductImage{{Src: req.ImageURL, Alt: alt}}
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{Name: strings.TrimSpace(v.Name), PriceAdjustment: v.PriceAdjustment})
	}

	if err := s.products.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown category %d", ErrInvalidProduct, req.CategoryID)
		}
		return nil, translateWriteError(err)
	}
	s.catalog.Invalidate(ctx)
	return product, nil
}

func (s *ProductAdminService) UpdateProduct(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, translateWriteError(err)
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	switch {
	case req.ClearSale:
		product.SalePrice.Valid = false
	case req.SalePrice != nil:
		product.SalePrice.Decimal = *req.SalePrice
		product.SalePrice.Valid = true
	}
	if product.SalePrice.Valid {
		if err := validateSale(product.Price, product.SalePrice.Decimal); err != nil {
			return nil, err
		}
	}

	if err := s.products.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) && req.CategoryID != nil {
			return nil, fmt.Errorf("%w: unknown category %d", ErrInvalidProduct, *req.CategoryID)
		}
		return nil, translateWriteError(err)
	}
	s.catalog.Invalidate(ctx)
	return product, nil
}

func (s *ProductAdminService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return translateWriteError(err)
	}
	s.catalog.Invalidate(ctx)
	return nil
}

// UploadImage stores file in Cloudinary and attaches it to the product. The
// upload is rolled back if the database write fails.
func (s *ProductAdminService) UploadImage(ctx context.Context, id int64, file multipart.File, filename, alt string) (*models.ProductImage, error) {
	if s.uploader == nil {
		return nil, libs.ErrUploadsDisabled
	}
	if _, err := s.products.GetProductByID(ctx, id); err != nil {
		return nil, translateWriteError(err)
	}

	url, publicID, err := s.uploader.UploadImage(ctx, file, filename, "products")
	if err != nil {
		return nil, err
	}

	img := &models.ProductImage{Src: url, Alt: alt, CloudinaryID: publicID}
	if err := s.products.AddImage(ctx, id, img); err != nil {
		_ = s.uploader.DeleteImage(ctx, publicID)
		return nil, translateWriteError(err)
	}
	s.catalog.Invalidate(ctx)
	return img, nil
}

func validateSale(price, sale decimal.Decimal) error {
	if sale.IsNegative() || !sale.LessThan(price) {
		return fmt.Errorf("%w: sale price must be at least 0 and below the price", ErrInvalidProduct)
	}
	return nil
}

func translateWriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrProductNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return ErrDuplicate
	default:
		return err
	}
}
