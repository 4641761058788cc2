package repositories

import (
	"context"

	"bayka/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BlogRepository struct {
	db *pgxpool.Pool
}

func NewBlogRepository(db *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogColumns = `id, slug, title, excerpt, body, category, author_name, author_avatar,
	image_src, image_alt, is_published, published_at, created_at`

func scanBlogPost(row interface{ Scan(...any) error }) (models.BlogPost, error) {
	var p models.BlogPost
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Body, &p.Category, &p.AuthorName,
		&p.AuthorAvatar, &p.ImageSrc, &p.ImageAlt, &p.IsPublished, &p.PublishedAt, &p.CreatedAt)
	return p, err
}

// ListPublished returns published posts newest first. limit <= 0 means all.
func (r *BlogRepository) ListPublished(ctx context.Context, limit int) ([]models.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts
	          WHERE is_published = true AND published_at <= NOW()
	          ORDER BY published_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	row := r.db.QueryRow(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE slug = $1 AND is_published = true`, slug)
	p, err := scanBlogPost(row)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *BlogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	query := `
		INSERT INTO blog_posts (slug, title, excerpt, body, category, author_name, author_avatar, image_src, image_alt, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
		RETURNING id, is_published, published_at, created_at
	`
	err := r.db.QueryRow(ctx, query,
		post.Slug, post.Title, post.Excerpt, post.Body, post.Category,
		post.AuthorName, post.AuthorAvatar, post.ImageSrc, post.ImageAlt,
	).Scan(&post.ID, &post.IsPublished, &post.PublishedAt, &post.CreatedAt)
	return translate(err)
}
