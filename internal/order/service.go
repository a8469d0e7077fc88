package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Publisher emits order events to the broker.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, o *Order) error
	PublishOrderStatusChanged(ctx context.Context, o *Order, previous Status) error
}

// Listener is notified in-process after an order changes, e.g. the admin feed.
type Listener interface {
	OrderChanged(o *Order)
}

type Service struct {
	repo      Repository
	publisher Publisher
	listeners []Listener
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, publisher Publisher, logger *zap.Logger, listeners ...Listener) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		listeners: listeners,
		logger:    logger,
		now:       time.Now,
	}
}

// PlaceOrder persists a new pending order. Once the row is committed the order
// is returned even if publishing the event fails.
func (s *Service) PlaceOrder(ctx context.Context, d Draft) (*Order, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	now := s.now().UTC()
	o := &Order{
		ID:              uuid.NewString(),
		Shipping:        d.Shipping,
		Subtotal:        d.Subtotal,
		DiscountCode:    d.DiscountCode,
		DiscountAmount:  d.DiscountAmount,
		ShippingCost:    d.ShippingCost,
		Tax:             d.Tax,
		Total:           d.Total,
		Status:          StatusPending,
		PaymentMethodID: d.PaymentMethodID,
		Items:           append([]Item(nil), d.Items...),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.publisher.PublishOrderPlaced(ctx, o); err != nil {
		s.logger.Error("publish order placed failed", zap.String("order_id", o.ID), zap.Error(err))
	}
	s.notify(o)

	s.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return o, nil
}

// Get returns ErrNotFound for unknown ids.
func (s *Service) Get(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	return s.repo.ListByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) UpdateStatus(ctx context.Context, orderID string, status Status) (*Order, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	previous := current.Status

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	current.Status = status
	current.UpdatedAt = s.now().UTC()

	if previous != status {
		if err := s.publisher.PublishOrderStatusChanged(ctx, current, previous); err != nil {
			s.logger.Error("publish status change failed", zap.String("order_id", orderID), zap.Error(err))
		}
		s.notify(current)
	}
	return current, nil
}

type Dashboard struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalOrders     int             `json:"totalOrders"`
	PendingOrders   int             `json:"pendingOrders"`
	CompletedOrders int             `json:"completedOrders"`
	RecentOrders    []Order         `json:"recentOrders"`
}

const recentOrdersLimit = 5

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	orders, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return Dashboard{}, err
	}
	return summarize(orders), nil
}

// summarize expects orders newest first.
func summarize(orders []Order) Dashboard {
	d := Dashboard{TotalRevenue: decimal.Zero, TotalOrders: len(orders), RecentOrders: []Order{}}
	for _, o := range orders {
		d.TotalRevenue = d.TotalRevenue.Add(o.Total)
		switch o.Status {
		case StatusPending:
			d.PendingOrders++
		case StatusCompleted:
			d.CompletedOrders++
		}
	}
	n := len(orders)
	if n > recentOrdersLimit {
		n = recentOrdersLimit
	}
	d.RecentOrders = append(d.RecentOrders, orders[:n]...)
	return d
}

func (s *Service) notify(o *Order) {
	for _, l := range s.listeners {
		l.OrderChanged(o)
	}
}
