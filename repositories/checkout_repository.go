package repositories

import (
	"context"

	"bayka/cart"
	"bayka/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CheckoutRepository struct {
	db *pgxpool.Pool
}

func NewCheckoutRepository(db *pgxpool.Pool) *CheckoutRepository {
	return &CheckoutRepository{db: db}
}

// Create persists a session and its line items atomically.
func (r *CheckoutRepository) Create(ctx context.Context, s *models.CheckoutSession) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO checkout_sessions (id, session_key, provider_ref, status, total, currency,
			                               success_url, cancel_url, redirect_url, customer_email)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at, updated_at
		`
		if err := tx.QueryRow(ctx, query,
			s.ID, s.SessionKey, s.ProviderRef, string(s.Status), s.Total, s.Currency,
			s.SuccessURL, s.CancelURL, s.RedirectURL, s.CustomerEmail,
		).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
			return translate(err)
		}

		batch := &pgx.Batch{}
		for _, it := range s.Items {
			batch.Queue(`
				INSERT INTO checkout_session_items (session_id, line_id, product_id, variant, name, unit_price, quantity)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				s.ID, it.ID, it.ProductID, it.Variant, it.Name, it.UnitPrice, it.Quantity,
			)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

const checkoutColumns = `id, session_key, provider_ref, status, total, currency, success_url,
	cancel_url, redirect_url, customer_email, created_at, updated_at, completed_at`

func (r *CheckoutRepository) scanSession(ctx context.Context, row pgx.Row) (*models.CheckoutSession, error) {
	var s models.CheckoutSession
	var status string
	if err := row.Scan(&s.ID, &s.SessionKey, &s.ProviderRef, &status, &s.Total, &s.Currency, &s.SuccessURL,
		&s.CancelURL, &s.RedirectURL, &s.CustomerEmail, &s.CreatedAt, &s.UpdatedAt, &s.CompletedAt); err != nil {
		return nil, translate(err)
	}
	s.Status = models.CheckoutStatus(status)

	rows, err := r.db.Query(ctx,
		`SELECT line_id, product_id, variant, name, unit_price, quantity
		 FROM checkout_session_items WHERE session_id = $1 ORDER BY id`, s.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s.Items = []cart.Item{}
	for rows.Next() {
		var it cart.Item
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Variant, &it.Name, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, err
		}
		s.Items = append(s.Items, it)
	}
	return &s, rows.Err()
}

func (r *CheckoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CheckoutSession, error) {
	row := r.db.QueryRow(ctx, `SELECT `+checkoutColumns+` FROM checkout_sessions WHERE id = $1`, id)
	return r.scanSession(ctx, row)
}

// UpdateStatus moves an open session to status. It reports false when the
// session had already left the open state.
func (r *CheckoutRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CheckoutStatus) (bool, error) {
	query := `UPDATE checkout_sessions
	          SET status = $2, updated_at = NOW(),
	              completed_at = CASE WHEN $2 = 'completed' THEN NOW() ELSE completed_at END
	          WHERE id = $1 AND status = 'open'`
	tag, err := r.db.Exec(ctx, query, id, string(status))
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM checkout_sessions WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, ErrNotFound
	}
	return false, nil
}
