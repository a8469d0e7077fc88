package checkout

import (
	"errors"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
)

const (
	msgInvalidEmail    = "please enter a valid email address"
	msgFullName        = "please enter your full name"
	msgAddress         = "please complete your shipping address"
	msgPhone           = "please enter your phone number"
	msgCardholder      = "please enter cardholder name"
	msgCardDetails     = "please enter your card details"
	msgPaymentFailed   = "Payment failed. Please try again."
	msgOrderNotCreated = "Payment successful but failed to create order. Please contact support with your payment confirmation."
)

var (
	ErrWrongStep       = errors.New("checkout: action not allowed at current step")
	ErrEmptyCart       = errors.New("checkout: cart is empty")
	ErrOrderNotCreated = errors.New(msgOrderNotCreated)
)

// ValidationError reports the first field check that failed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PaymentError is a tokenization failure. Message is safe to show the
// visitor: processor text is only passed through for card errors.
type PaymentError struct {
	Message string
	Err     error
}

func (e *PaymentError) Error() string { return e.Message }

func (e *PaymentError) Unwrap() error { return e.Err }

func newPaymentError(err error) *PaymentError {
	msg := msgPaymentFailed
	var pe *payment.Error
	if errors.As(err, &pe) && payment.IsCardError(err) && pe.Message != "" {
		msg = pe.Message
	}
	return &PaymentError{Message: msg, Err: err}
}
