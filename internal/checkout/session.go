package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/payment"
)

// Cart is the slice of *cart.Store a checkout session needs.
type Cart interface {
	Snapshot() cart.State
	Dispatch(ctx context.Context, a cart.Action) cart.State
}

// OrderCreator persists an order once payment has been tokenized.
type OrderCreator interface {
	PlaceOrder(ctx context.Context, d order.Draft) (*order.Order, error)
}

type Dependencies struct {
	Tokenizer payment.Tokenizer
	Orders    OrderCreator
	Pricing   cart.Pricing
	Logger    *zap.Logger
}

type PaymentDetails struct {
	CardToken      string `json:"cardToken"`
	CardholderName string `json:"cardholderName"`
}

type Result struct {
	OrderID    string `json:"orderId"`
	RedirectTo string `json:"redirectTo"`
}

// View is a point-in-time copy of a session for rendering.
type View struct {
	ID               string          `json:"id"`
	Step             Step            `json:"step"`
	Shipping         ShippingInfo    `json:"shipping"`
	Error            string          `json:"error,omitempty"`
	Items            []cart.LineItem `json:"items"`
	Breakdown        cart.Breakdown  `json:"breakdown"`
	Redirect         bool            `json:"redirect"`
	RedirectTo       string          `json:"redirectTo,omitempty"`
	CompletedOrderID string          `json:"completedOrderId,omitempty"`
}

// Session drives one checkout visit from shipping entry to a placed order.
type Session struct {
	id   string
	cart Cart
	deps Dependencies

	mu               sync.Mutex
	step             Step
	shipping         ShippingInfo
	errMsg           string
	suppressRedirect bool
	completedOrderID string
	paymentMethodID  string
}

func NewSession(id string, c Cart, deps Dependencies) *Session {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Session{
		id:   id,
		cart: c,
		deps: deps,
		step: StepShipping,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) rebind(c Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = c
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completedOrderID != ""
}

func (s *Session) UpdateShipping(info ShippingInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepShipping || s.completedOrderID != "" {
		return ErrWrongStep
	}
	s.shipping = info
	return nil
}

func (s *Session) ContinueToPayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepShipping || s.completedOrderID != "" {
		return ErrWrongStep
	}
	if msg := s.shipping.Validate(); msg != "" {
		s.errMsg = msg
		return &ValidationError{Message: msg}
	}
	s.errMsg = ""
	s.step = StepPayment
	return nil
}

func (s *Session) EditShipping() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepPayment || s.completedOrderID != "" {
		return ErrWrongStep
	}
	s.step = StepShipping
	return nil
}

// SubmitPayment tokenizes the card, then creates the order. The lock is held
// for the whole sequence so one session never places two orders.
func (s *Session) SubmitPayment(ctx context.Context, details PaymentDetails) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepPayment || s.completedOrderID != "" {
		return Result{}, ErrWrongStep
	}
	state := s.cart.Snapshot()
	if state.IsEmpty() {
		return Result{}, ErrEmptyCart
	}
	if strings.TrimSpace(details.CardholderName) == "" {
		return Result{}, s.fail(&ValidationError{Message: msgCardholder})
	}
	if strings.TrimSpace(details.CardToken) == "" {
		return Result{}, s.fail(&ValidationError{Message: msgCardDetails})
	}

	breakdown := s.deps.Pricing.Breakdown(state)
	s.errMsg = ""

	pm, err := s.deps.Tokenizer.CreatePaymentMethod(ctx, payment.Request{
		CardToken: details.CardToken,
		Billing:   s.shipping.billing(details.CardholderName),
	})
	if err != nil {
		s.deps.Logger.Warn("payment tokenization failed",
			zap.String("checkout_id", s.id),
			zap.Error(err),
		)
		return Result{}, s.fail(newPaymentError(err))
	}
	s.paymentMethodID = pm.ID

	o, err := s.deps.Orders.PlaceOrder(ctx, s.draft(state, breakdown, pm.ID))
	if err != nil {
		s.deps.Logger.Error("order creation failed after payment",
			zap.String("checkout_id", s.id),
			zap.String("payment_method_id", pm.ID),
			zap.Error(err),
		)
		s.errMsg = msgOrderNotCreated
		return Result{}, fmt.Errorf("%w: %v", ErrOrderNotCreated, err)
	}

	// Set before clearing so the emptied cart doesn't bounce the visitor home.
	s.suppressRedirect = true
	s.cart.Dispatch(ctx, cart.Clear{})
	s.completedOrderID = o.ID

	s.deps.Logger.Info("checkout completed",
		zap.String("checkout_id", s.id),
		zap.String("order_id", o.ID),
	)
	return Result{OrderID: o.ID, RedirectTo: confirmationPath(o.ID)}, nil
}

func (s *Session) fail(err error) error {
	s.errMsg = err.Error()
	return err
}

func (s *Session) draft(state cart.State, b cart.Breakdown, paymentMethodID string) order.Draft {
	items := make([]order.Item, 0, len(state.Items))
	for _, it := range state.Items {
		items = append(items, order.Item{
			ProductID:    it.ProductID,
			ProductName:  it.Name,
			ProductImage: it.Image,
			Size:         it.Size,
			Quantity:     it.Quantity,
			Price:        it.Price,
		})
	}
	return order.Draft{
		Shipping:        s.shipping.toOrder(),
		Subtotal:        b.Subtotal,
		DiscountCode:    b.DiscountCode,
		DiscountAmount:  b.DiscountAmount,
		ShippingCost:    b.Shipping,
		Tax:             b.Tax,
		Total:           b.GrandTotal,
		PaymentMethodID: paymentMethodID,
		Items:           items,
	}
}

// ShouldRedirect reports whether the visitor should be sent back to the
// storefront because there is nothing to check out.
func (s *Session) ShouldRedirect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shouldRedirect(s.cart.Snapshot())
}

func (s *Session) shouldRedirect(state cart.State) bool {
	return state.IsEmpty() && !s.suppressRedirect && s.completedOrderID == ""
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.cart.Snapshot()
	v := View{
		ID:               s.id,
		Step:             s.step,
		Shipping:         s.shipping,
		Error:            s.errMsg,
		Items:            state.Items,
		Breakdown:        s.deps.Pricing.Breakdown(state),
		CompletedOrderID: s.completedOrderID,
	}
	switch {
	case s.completedOrderID != "":
		v.RedirectTo = confirmationPath(s.completedOrderID)
	case s.shouldRedirect(state):
		v.Redirect = true
		v.RedirectTo = "/"
	}
	return v
}

func confirmationPath(orderID string) string {
	return "/order-confirmation/" + orderID
}
