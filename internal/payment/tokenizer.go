package payment

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the processor can't be reached or the
// breaker is open.
var ErrUnavailable = errors.New("payment processor unavailable")

// Tokenizer turns client-side card data into a reusable payment method.
type Tokenizer interface {
	CreatePaymentMethod(ctx context.Context, req Request) (PaymentMethod, error)
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country,omitempty"`
}

type BillingDetails struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// Request carries the token produced by the processor's hosted card fields.
type Request struct {
	CardToken string
	Billing   BillingDetails
}

type PaymentMethod struct {
	ID    string `json:"id"`
	Brand string `json:"brand,omitempty"`
	Last4 string `json:"last4,omitempty"`
}

// Error is a structured failure reported by the processor, such as a decline.
type Error struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// IsCardError reports whether err is a problem with the card itself rather
// than with the processor.
func IsCardError(err error) bool {
	var pe *Error
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Type == "card_error" || pe.Type == "invalid_request_error"
}
