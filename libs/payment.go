package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrProviderUnavailable = errors.New("payment provider unavailable")

type PaymentLineItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

type CreatePaymentRequest struct {
	Reference      string            `json:"reference"`
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency"`
	Items          []PaymentLineItem `json:"items"`
	SuccessURL     string            `json:"success_url"`
	CancelURL      string            `json:"cancel_url,omitempty"`
	CustomerEmail  string            `json:"customer_email,omitempty"`
	IdempotencyKey string            `json:"-"`
}

type CreatePaymentResponse struct {
	ProviderRef string `json:"id"`
	RedirectURL string `json:"url"`
}

// PaymentProvider creates hosted checkout pages.
type PaymentProvider interface {
	Name() string
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (CreatePaymentResponse, error)
}

// NewPaymentProvider returns the HTTP provider when an API URL is configured
// and the local mock otherwise.
func NewPaymentProvider(apiURL, apiKey string, timeout time.Duration) PaymentProvider {
	if apiURL == "" {
		log.Println("PAYMENT_API_URL not set, using mock payment provider")
		return NewMockPaymentProvider()
	}
	return NewHTTPPaymentProvider(apiURL, apiKey, timeout)
}

type HTTPPaymentProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[CreatePaymentResponse]
}

func NewHTTPPaymentProvider(apiURL, apiKey string, timeout time.Duration) *HTTPPaymentProvider {
	return &HTTPPaymentProvider{
		baseURL: strings.TrimRight(apiURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[CreatePaymentResponse](gobreaker.Settings{
			Name:        "payment-provider",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("circuit breaker %s: %s -> %s", name, from, to)
			},
		}),
	}
}

func (p *HTTPPaymentProvider) Name() string { return "http" }

func (p *HTTPPaymentProvider) CreatePayment(ctx context.Context, req CreatePaymentRequest) (CreatePaymentResponse, error) {
	resp, err := p.breaker.Execute(func() (CreatePaymentResponse, error) {
		return p.createPayment(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return CreatePaymentResponse{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return resp, err
}

func (p *HTTPPaymentProvider) createPayment(ctx context.Context, req CreatePaymentRequest) (CreatePaymentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return CreatePaymentResponse{}, fmt.Errorf("marshal payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return CreatePaymentResponse{}, fmt.Errorf("build payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	res, err := p.client.Do(httpReq)
	if err != nil {
		return CreatePaymentResponse{}, fmt.Errorf("payment request failed: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return CreatePaymentResponse{}, fmt.Errorf("read payment response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return CreatePaymentResponse{}, fmt.Errorf("payment provider returned %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out CreatePaymentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return CreatePaymentResponse{}, fmt.Errorf("decode payment response: %w", err)
	}
	if out.ProviderRef == "" || out.RedirectURL == "" {
		return CreatePaymentResponse{}, errors.New("payment response missing id or url")
	}
	return out, nil
}

// MockPaymentProvider sends the shopper straight to the success URL.
type MockPaymentProvider struct{}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

func (p *MockPaymentProvider) Name() string { return "mock" }

func (p *MockPaymentProvider) CreatePayment(_ context.Context, req CreatePaymentRequest) (CreatePaymentResponse, error) {
	redirect, err := url.Parse(req.SuccessURL)
	if err != nil {
		return CreatePaymentResponse{}, fmt.Errorf("invalid success url: %w", err)
	}
	q := redirect.Query()
	q.Set("session_id", req.Reference)
	redirect.RawQuery = q.Encode()

	return CreatePaymentResponse{
		ProviderRef: "mock_" + uuid.NewString(),
		RedirectURL: redirect.String(),
	}, nil
}
