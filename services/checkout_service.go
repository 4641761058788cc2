package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"bayka/cart"
	"bayka/libs"
	"bayka/models"
	"bayka/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

type checkoutStore interface {
	Create(ctx context.Context, s *models.CheckoutSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CheckoutSession, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.CheckoutStatus) (bool, error)
}

type orderMailer interface {
	SendOrderConfirmation(session *models.CheckoutSession) error
}

type CheckoutOptions struct {
	SuccessURL string
	CancelURL  string
	Email      string
}

type CheckoutResult struct {
	ID          uuid.UUID             `json:"id"`
	RedirectURL string                `json:"redirect_url"`
	Total       decimal.Decimal       `json:"total"`
	Currency    string                `json:"currency"`
	Status      models.CheckoutStatus `json:"status"`
}

type CheckoutConfig struct {
	Currency          string
	DefaultSuccessURL string
	WebhookSecret     []byte
}

// CheckoutService turns line items into a hosted payment session. It never
// touches the visitor's cart.
type CheckoutService struct {
	provider libs.PaymentProvider
	store    checkoutStore
	resolver cartItemResolver
	mailer   orderMailer
	cfg      CheckoutConfig
	now      func() time.Time

	sf       singleflight.Group
	mu       sync.Mutex
	inflight map[string]int
}

func NewCheckoutService(provider libs.PaymentProvider, store checkoutStore, resolver cartItemResolver, mailer orderMailer, cfg CheckoutConfig) *CheckoutService {
	return &CheckoutService{
		provider: provider,
		store:    store,
		resolver: resolver,
		mailer:   mailer,
		cfg:      cfg,
		now:      time.Now,
		inflight: map[string]int{},
	}
}

// IsLoading reports whether a checkout for sessionKey is in flight.
func (s *CheckoutService) IsLoading(sessionKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[sessionKey] > 0
}

func (s *CheckoutService) begin(sessionKey string) func() {
	s.mu.Lock()
	s.inflight[sessionKey]++
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.inflight[sessionKey]--; s.inflight[sessionKey] <= 0 {
			delete(s.inflight, sessionKey)
		}
	}
}

// Checkout submits items to the payment provider. An empty list is a no-op and
// returns a nil result.
func (s *CheckoutService) Checkout(ctx context.Context, sessionKey string, items []cart.Item, opts CheckoutOptions) (*CheckoutResult, error) {
	if len(items) == 0 {
		return nil, nil
	}
	for _, it := range items {
		if it.ID == "" || it.Quantity < 1 || it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %q", cart.ErrInvalidItem, it.ID)
		}
	}

	done := s.begin(sessionKey)
	defer done()

	items = append([]cart.Item(nil), items...)
	v, err, _ := s.sf.Do(flightKey(sessionKey, items, opts), func() (interface{}, error) {
		return s.createSession(context.WithoutCancel(ctx), sessionKey, items, opts)
	})
	if err != nil {
		return nil, err
	}
	res := *v.(*CheckoutResult)
	return &res, nil
}

// BuyNow checks out exactly one product line, bypassing the cart.
func (s *CheckoutService) BuyNow(ctx context.Context, sessionKey string, productID int64, variant string, quantity int, opts CheckoutOptions) (*CheckoutResult, error) {
	item, err := s.resolver.CreateCartItem(ctx, productID, variant, quantity)
	if err != nil {
		return nil, err
	}
	return s.Checkout(ctx, sessionKey, []cart.Item{item}, opts)
}

// flightKey identifies a submission; only identical ones share a session.
func flightKey(sessionKey string, items []cart.Item, opts CheckoutOptions) string {
	var b strings.Builder
	b.WriteString(sessionKey)
	for _, o := range []string{opts.SuccessURL, opts.CancelURL, strings.ToLower(opts.Email)} {
		b.WriteString("|")
		b.WriteString(strconv.Quote(o))
	}
	for _, it := range items {
		b.WriteString("|")
		b.WriteString(it.ID)
		b.WriteString("x")
		b.WriteString(strconv.Itoa(it.Quantity))
	}
	return b.String()
}

func (s *CheckoutService) createSession(ctx context.Context, sessionKey string, items []cart.Item, opts CheckoutOptions) (*CheckoutResult, error) {
	id := uuid.New()
	total := decimal.Zero
	lines := make([]libs.PaymentLineItem, 0, len(items))
	for _, it := range items {
		total = total.Add(it.LineTotal())
		lines = append(lines, libs.PaymentLineItem{Name: it.Name, UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}

	successURL := resolveRedirect(opts.SuccessURL, s.cfg.DefaultSuccessURL)
	cancelURL := resolveRedirect(opts.CancelURL, "")

	resp, err := s.provider.CreatePayment(ctx, libs.CreatePaymentRequest{
		Reference:      id.String(),
		Amount:         total,
		Currency:       s.cfg.Currency,
		Items:          lines,
		SuccessURL:     successURL,
		CancelURL:      cancelURL,
		CustomerEmail:  opts.Email,
		IdempotencyKey: id.String(),
	})
	if err != nil {
		log.Printf("checkout %s: provider %s failed: %v", id, s.provider.Name(), err)
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	session := &models.CheckoutSession{
		ID:            id,
		SessionKey:    sessionKey,
		ProviderRef:   resp.ProviderRef,
		Status:        models.CheckoutStatusOpen,
		Total:         total,
		Currency:      s.cfg.Currency,
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
		RedirectURL:   resp.RedirectURL,
		CustomerEmail: opts.Email,
		Items:         items,
	}
	if err := s.store.Create(ctx, session); err != nil {
		log.Printf("checkout %s: persist failed: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	log.Printf("checkout %s: created %s %s session via %s", id, total.StringFixed(2), s.cfg.Currency, s.provider.Name())
	return &CheckoutResult{
		ID:          id,
		RedirectURL: resp.RedirectURL,
		Total:       total,
		Currency:    s.cfg.Currency,
		Status:      session.Status,
	}, nil
}

// resolveRedirect accepts absolute http(s) URLs only.
func resolveRedirect(raw, fallback string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fallback
	}
	return u.String()
}

func (s *CheckoutService) GetSession(ctx context.Context, id uuid.UUID) (*models.CheckoutSession, error) {
	session, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	return session, err
}

type webhookPayload struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// HandleWebhook applies a signed provider notification. Repeated deliveries
// are accepted and change nothing.
func (s *CheckoutService) HandleWebhook(ctx context.Context, signature string, body []byte) error {
	if err := libs.VerifySignature(s.cfg.WebhookSecret, signature, body, s.now()); err != nil {
		return err
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	id, err := uuid.Parse(payload.SessionID)
	if err != nil {
		return fmt.Errorf("%w: session_id", ErrInvalidWebhook)
	}
	status := models.CheckoutStatus(payload.Status)
	if !status.IsTerminal() {
		return fmt.Errorf("%w: status %q", ErrInvalidWebhook, payload.Status)
	}

	changed, err := s.store.UpdateStatus(ctx, id, status)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return err
	}
	if !changed {
		log.Printf("checkout %s: duplicate %s notification ignored", id, status)
		return nil
	}

	log.Printf("checkout %s: marked %s", id, status)
	if status == models.CheckoutStatusCompleted && s.mailer != nil {
		s.sendConfirmation(ctx, id)
	}
	return nil
}

func (s *CheckoutService) sendConfirmation(ctx context.Context, id uuid.UUID) {
	session, err := s.store.GetByID(ctx, id)
	if err != nil {
		log.Printf("checkout %s: load for email failed: %v", id, err)
		return
	}
	if session.CustomerEmail == "" {
		return
	}
	if err := s.mailer.SendOrderConfirmation(session); err != nil {
		log.Printf("checkout %s: confirmation email failed: %v", id, err)
	}
}
