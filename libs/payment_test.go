package libs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentRequest() CreatePaymentRequest {
	return CreatePaymentRequest{
		Reference:      "c0ffee00-0000-0000-0000-000000000000",
		Amount:         decimal.RequireFromString("8.25"),
		Currency:       "USD",
		Items:          []PaymentLineItem{{Name: "Classic Latte", UnitPrice: decimal.RequireFromString("4.50"), Quantity: 1}},
		SuccessURL:     "http://localhost:5173/success",
		IdempotencyKey: "idem-1",
	}
}

func TestHTTPPaymentProvider_CreatePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		assert.Equal(t, "idem-1", r.Header.Get("Idempotency-Key"))

		var body CreatePaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "8.25", body.Amount.StringFixed(2))
		assert.Len(t, body.Items, 1)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_123","url":"https://pay.example.com/cs_123"}`))
	}))
	defer srv.Close()

	p := NewHTTPPaymentProvider(srv.URL+"/", "sk_test", time.Second)
	resp, err := p.CreatePayment(context.Background(), paymentRequest())
	require.NoError(t, err)
	assert.Equal(t, "cs_123", resp.ProviderRef)
	assert.Equal(t, "https://pay.example.com/cs_123", resp.RedirectURL)
}

func TestHTTPPaymentProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewHTTPPaymentProvider(srv.URL, "sk_test", time.Second)
	_, err := p.CreatePayment(context.Background(), paymentRequest())
	require.ErrorContains(t, err, "payment provider returned 500")
}

func TestHTTPPaymentProvider_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewHTTPPaymentProvider(srv.URL, "sk_test", time.Second)
	for i := 0; i < 5; i++ {
		_, err := p.CreatePayment(context.Background(), paymentRequest())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrProviderUnavailable)
	}

	_, err := p.CreatePayment(context.Background(), paymentRequest())
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestHTTPPaymentProvider_MissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":""}`))
	}))
	defer srv.Close()

	p := NewHTTPPaymentProvider(srv.URL, "", time.Second)
	_, err := p.CreatePayment(context.Background(), paymentRequest())
	require.ErrorContains(t, err, "missing id or url")
}

func TestMockPaymentProvider_RedirectsToSuccessURL(t *testing.T) {
	p := NewMockPaymentProvider()
	resp, err := p.CreatePayment(context.Background(), paymentRequest())
	require.NoError(t, err)

	u, err := url.Parse(resp.RedirectURL)
	require.NoError(t, err)
	assert.Equal(t, "/success", u.Path)
	assert.Equal(t, paymentRequest().Reference, u.Query().Get("session_id"))
	assert.Contains(t, resp.ProviderRef, "mock_")
}

func TestNewPaymentProvider_DefaultsToMock(t *testing.T) {
	assert.Equal(t, "mock", NewPaymentProvider("", "", time.Second).Name())
	assert.Equal(t, "http", NewPaymentProvider("http://pay.local", "k", time.Second).Name())
}
