package repositories

import (
	"context"
	"strings"

	"bayka/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ContentRepository serves the editorial rows of the landing page.
type ContentRepository struct {
	db *pgxpool.Pool
}

func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	query := `SELECT id, name, role, company, rating, image_src, image_alt
	          FROM testimonials ORDER BY position, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	testimonials := []models.Testimonial{}
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.Name, &t.Role, &t.Company, &t.Rating, &t.ImageSrc, &t.ImageAlt); err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

func (r *ContentRepository) ListFaqs(ctx context.Context, section string) ([]models.Faq, error) {
	query := `SELECT id, section, title, content FROM faqs WHERE section = $1 ORDER BY position, id`

	rows, err := r.db.Query(ctx, query, section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	faqs := []models.Faq{}
	for rows.Next() {
		var f models.Faq
		if err := rows.Scan(&f.ID, &f.Section, &f.Title, &f.Content); err != nil {
			return nil, err
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

// Subscribe stores email once. created is false when it was already present.
func (r *ContentRepository) Subscribe(ctx context.Context, email string) (created bool, err error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO subscribers (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
