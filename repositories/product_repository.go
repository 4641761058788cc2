package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bayka/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListCategories returns active categories with the number of active products in each.
func (r *ProductRepository) ListCategories(ctx context.Context) ([]models.CategoryCount, error) {
	query := `SELECT c.id, c.name, COUNT(p.id)
	          FROM categories c
	          LEFT JOIN products p ON p.category_id = c.id AND p.is_active = true
	          WHERE c.is_active = true
	          GROUP BY c.id, c.name
	          ORDER BY c.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.CategoryCount{}
	for rows.Next() {
		var cat models.CategoryCount
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Count); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func productFilterClause(filter models.ProductFilter) (string, []any) {
	conds := []string{"p.is_active = true"}
	args := []any{}

	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		conds = append(conds, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListProducts returns one page of active products with their primary image.
func (r *ProductRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	where, args := productFilterClause(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := `SELECT p.id, p.name, p.description, COALESCE(p.category_id, 0), COALESCE(c.name, ''),
	                 p.price, p.sale_price, p.rating, p.stock, p.sku, p.is_active, p.created_at, p.updated_at,
	                 img.id, img.src, img.alt
	          FROM products p
	          LEFT JOIN categories c ON c.id = p.category_id
	          LEFT JOIN LATERAL (
	              SELECT id, src, alt FROM product_images
	              WHERE product_id = p.id ORDER BY position, id LIMIT 1
	          ) img ON true` + where +
		fmt.Sprintf(" ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var imgID *int64
		var imgSrc, imgAlt *string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
			&p.Price, &p.SalePrice, &p.Rating, &p.Stock, &p.SKU, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			&imgID, &imgSrc, &imgAlt); err != nil {
			return nil, 0, err
		}
		p.Images = []models.ProductImage{}
		if imgID != nil {
			p.Images = append(p.Images, models.ProductImage{ID: *imgID, Src: *imgSrc, Alt: *imgAlt})
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// GetProductByID loads an active product with all images and variants.
func (r *ProductRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT p.id, p.name, p.description, COALESCE(p.category_id, 0), COALESCE(c.name, ''),
	                 p.price, p.sale_price, p.rating, p.stock, p.sku, p.is_active, p.created_at, p.updated_at
	          FROM products p
	          LEFT JOIN categories c ON c.id = p.category_id
	          WHERE p.id = $1 AND p.is_active = true`

	var p models.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
		&p.Price, &p.SalePrice, &p.Rating, &p.Stock, &p.SKU, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}

	if p.Images, err = r.listImages(ctx, id); err != nil {
		return nil, err
	}
	if p.Variants, err = r.listVariants(ctx, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) listImages(ctx context.Context, productID int64) ([]models.ProductImage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, src, alt, cloudinary_id, position FROM product_images WHERE product_id = $1 ORDER BY position, id`,
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []models.ProductImage{}
	for rows.Next() {
		var img models.ProductImage
		if err := rows.Scan(&img.ID, &img.Src, &img.Alt, &img.CloudinaryID, &img.Position); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *ProductRepository) listVariants(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price_adjustment, position FROM product_variants WHERE product_id = $1 ORDER BY position, id`,
		productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variants := []models.ProductVariant{}
	for rows.Next() {
		var v models.ProductVariant
		if err := rows.Scan(&v.ID, &v.Name, &v.PriceAdjustment, &v.Position); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

// CreateProduct inserts the product with its images and variants in one transaction.
func (r *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO products (name, description, category_id, price, sale_price, stock, sku, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, true, $8, $9)
			RETURNING id, is_active, created_at, updated_at
		`
		now := time.Now()
		err := tx.QueryRow(ctx, query,
			product.Name, product.Description, product.CategoryID, product.Price, product.SalePrice,
			product.Stock, product.SKU, now, now,
		).Scan(&product.ID, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return translate(err)
		}

		for i := range product.Images {
			img := &product.Images[i]
			img.Position = i
			if err := tx.QueryRow(ctx,
				`INSERT INTO product_images (product_id, src, alt, cloudinary_id, position) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				product.ID, img.Src, img.Alt, img.CloudinaryID, img.Position,
			).Scan(&img.ID); err != nil {
				return err
			}
		}

		for i := range product.Variants {
			v := &product.Variants[i]
			v.Position = i
			if err := tx.QueryRow(ctx,
				`INSERT INTO product_variants (product_id, name, price_adjustment, position) VALUES ($1, $2, $3, $4) RETURNING id`,
				product.ID, v.Name, v.PriceAdjustment, v.Position,
			).Scan(&v.ID); err != nil {
				return translate(err)
			}
		}
		return nil
	})
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `UPDATE products SET name = $1, description = $2, category_id = $3, price = $4,
	          sale_price = $5, stock = $6, is_active = $7, updated_at = $8 WHERE id = $9`
	tag, err := r.db.Exec(ctx, query,
		product.Name, product.Description, product.CategoryID, product.Price,
		product.SalePrice, product.Stock, product.IsActive, time.Now(), product.ID,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE products SET is_active = false, updated_at = NOW() WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddImage appends an image after the product's existing ones.
func (r *ProductRepository) AddImage(ctx context.Context, productID int64, img *models.ProductImage) error {
	query := `
		INSERT INTO product_images (product_id, src, alt, cloudinary_id, position)
		SELECT $1, $2, $3, $4, COALESCE(MAX(position) + 1, 0) FROM product_images WHERE product_id = $1
		RETURNING id, position
	`
	err := r.db.QueryRow(ctx, query, productID, img.Src, img.Alt, img.CloudinaryID).Scan(&img.ID, &img.Position)
	return translate(err)
}
