package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRequest() Request {
	return Request{
		CardToken: "tok_visa",
		Billing: BillingDetails{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Phone: "555-0100",
			Address: Address{
				Line1:      "1 Main St",
				City:       "Springfield",
				State:      "IL",
				PostalCode: "62701",
			},
		},
	}
}

func TestStripeClient_CreatePaymentMethod(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/payment_methods", r.URL.Path)
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "card", r.PostForm.Get("type"))
			assert.Equal(t, "tok_visa", r.PostForm.Get("card[token]"))
			assert.Equal(t, "Ada Lovelace", r.PostForm.Get("billing_details[name]"))
			assert.Equal(t, "62701", r.PostForm.Get("billing_details[address][postal_code]"))
			assert.Empty(t, r.PostForm.Get("billing_details[address][line2]"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"pm_123","card":{"brand":"visa","last4":"4242"}}`))
		}))
		defer srv.Close()

		c := NewStripeClient(srv.URL+"/", "sk_test", time.Second)
		pm, err := c.CreatePaymentMethod(context.Background(), testRequest())
		require.NoError(t, err)
		assert.Equal(t, PaymentMethod{ID: "pm_123", Brand: "visa", Last4: "4242"}, pm)
	})

	t.Run("card declined", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
		}))
		defer srv.Close()

		c := NewStripeClient(srv.URL, "sk_test", time.Second)
		_, err := c.CreatePaymentMethod(context.Background(), testRequest())

		var pe *Error
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "Your card was declined.", pe.Message)
		assert.True(t, IsCardError(err))
	})

	t.Run("server error is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := NewStripeClient(srv.URL, "sk_test", time.Second)
		_, err := c.CreatePaymentMethod(context.Background(), testRequest())
		assert.True(t, errors.Is(err, ErrUnavailable))
		assert.False(t, IsCardError(err))
	})

	t.Run("missing id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		c := NewStripeClient(srv.URL, "sk_test", time.Second)
		_, err := c.CreatePaymentMethod(context.Background(), testRequest())
		require.Error(t, err)
	})
}

type fakeTokenizer struct {
	calls int
	err   error
}

func (f *fakeTokenizer) CreatePaymentMethod(context.Context, Request) (PaymentMethod, error) {
	f.calls++
	if f.err != nil {
		return PaymentMethod{}, f.err
	}
	return PaymentMethod{ID: "pm_fake"}, nil
}

func TestBreakerTokenizer(t *testing.T) {
	t.Run("declines do not trip", func(t *testing.T) {
		next := &fakeTokenizer{err: &Error{Type: "card_error", Message: "declined"}}
		b := NewBreakerTokenizer(next, time.Minute, zap.NewNop())

		for i := 0; i < breakerFailureThreshold+2; i++ {
			_, err := b.CreatePaymentMethod(context.Background(), testRequest())
			assert.True(t, IsCardError(err))
		}
		assert.Equal(t, breakerFailureThreshold+2, next.calls)
	})

	t.Run("outages open the breaker", func(t *testing.T) {
		next := &fakeTokenizer{err: ErrUnavailable}
		b := NewBreakerTokenizer(next, time.Minute, zap.NewNop())

		for i := 0; i < breakerFailureThreshold; i++ {
			_, _ = b.CreatePaymentMethod(context.Background(), testRequest())
		}
		_, err := b.CreatePaymentMethod(context.Background(), testRequest())
		assert.True(t, errors.Is(err, ErrUnavailable))
		assert.Equal(t, breakerFailureThreshold, next.calls)
	})

	t.Run("passes results through", func(t *testing.T) {
		b := NewBreakerTokenizer(&fakeTokenizer{}, time.Minute, zap.NewNop())
		pm, err := b.CreatePaymentMethod(context.Background(), testRequest())
		require.NoError(t, err)
		assert.Equal(t, "pm_fake", pm.ID)
	})
}
