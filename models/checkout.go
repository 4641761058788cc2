package models

import (
	"time"

	"bayka/cart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutStatus string

const (
	CheckoutStatusOpen      CheckoutStatus = "open"
	CheckoutStatusCompleted CheckoutStatus = "completed"
	CheckoutStatusExpired   CheckoutStatus = "expired"
)

func (s CheckoutStatus) IsValid() bool {
	switch s {
	case CheckoutStatusOpen, CheckoutStatusCompleted, CheckoutStatusExpired:
		return true
	}
	return false
}

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCompleted || s == CheckoutStatusExpired
}

type CheckoutSession struct {
	ID            uuid.UUID       `json:"id"`
	SessionKey    string          `json:"-"`
	ProviderRef   string          `json:"provider_ref"`
	Status        CheckoutStatus  `json:"status"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	SuccessURL    string          `json:"success_url"`
	CancelURL     string          `json:"cancel_url,omitempty"`
	RedirectURL   string          `json:"redirect_url"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	Items         []cart.Item     `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}
