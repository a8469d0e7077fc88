package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const breakerFailureThreshold = 5

// BreakerTokenizer guards a Tokenizer with a circuit breaker. Card declines
// count as successful calls; only processor outages trip it.
type BreakerTokenizer struct {
	next Tokenizer
	cb   *gobreaker.CircuitBreaker[PaymentMethod]
}

func NewBreakerTokenizer(next Tokenizer, openFor time.Duration, logger *zap.Logger) *BreakerTokenizer {
	settings := gobreaker.Settings{
		Name:        "payment-processor",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsCardError(err) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return &BreakerTokenizer{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[PaymentMethod](settings),
	}
}

func (b *BreakerTokenizer) CreatePaymentMethod(ctx context.Context, req Request) (PaymentMethod, error) {
	pm, err := b.cb.Execute(func() (PaymentMethod, error) {
		return b.next.CreatePaymentMethod(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return PaymentMethod{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return pm, err
}
