package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	createFn       func(ctx context.Context, o *Order) error
	getByIDFn      func(ctx context.Context, id string) (*Order, error)
	listByEmailFn  func(ctx context.Context, email string) ([]Order, error)
	listFn         func(ctx context.Context, f ListFilter) ([]Order, error)
	updateStatusFn func(ctx context.Context, id string, s Status) error
}

func (f *fakeRepo) Create(ctx context.Context, o *Order) error { return f.createFn(ctx, o) }
func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeRepo) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	return f.listByEmailFn(ctx, email)
}
func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	return f.listFn(ctx, filter)
}
func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, s Status) error {
	return f.updateStatusFn(ctx, id, s)
}

type fakePublisher struct {
	placed  []*Order
	changed []Status
	err     error
}

func (f *fakePublisher) PublishOrderPlaced(_ context.Context, o *Order) error {
	f.placed = append(f.placed, o)
	return f.err
}

func (f *fakePublisher) PublishOrderStatusChanged(_ context.Context, o *Order, previous Status) error {
	f.changed = append(f.changed, previous)
	return f.err
}

type recordingListener struct {
	seen []string
}

func (r *recordingListener) OrderChanged(o *Order) {
	r.seen = append(r.seen, o.ID+":"+string(o.Status))
}

func sampleDraft() Draft {
	return Draft{
		Shipping:        Shipping{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"},
		Subtotal:        decimal.RequireFromString("55"),
		Total:           decimal.RequireFromString("59.48"),
		PaymentMethodID: "pm_1",
		Items:           []Item{{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(55)}},
	}
}

func TestServicePlaceOrder(t *testing.T) {
	t.Run("persists publishes and notifies", func(t *testing.T) {
		var stored *Order
		repo := &fakeRepo{createFn: func(_ context.Context, o *Order) error {
			stored = o
			return nil
		}}
		pub := &fakePublisher{}
		listener := &recordingListener{}
		svc := NewService(repo, pub, zap.NewNop(), listener)

		o, err := svc.PlaceOrder(context.Background(), sampleDraft())
		require.NoError(t, err)
		assert.NotEmpty(t, o.ID)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, "pm_1", o.PaymentMethodID)
		assert.Same(t, stored, o)
		require.Len(t, pub.placed, 1)
		assert.Equal(t, []string{o.ID + ":pending"}, listener.seen)
	})

	t.Run("publish failure still returns order", func(t *testing.T) {
		repo := &fakeRepo{createFn: func(context.Context, *Order) error { return nil }}
		svc := NewService(repo, &fakePublisher{err: errors.New("broker down")}, zap.NewNop())

		o, err := svc.PlaceOrder(context.Background(), sampleDraft())
		require.NoError(t, err)
		assert.NotNil(t, o)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &fakeRepo{createFn: func(context.Context, *Order) error { return errors.New("db down") }}
		pub := &fakePublisher{}
		svc := NewService(repo, pub, zap.NewNop())

		_, err := svc.PlaceOrder(context.Background(), sampleDraft())
		require.Error(t, err)
		assert.Empty(t, pub.placed)
	})

	t.Run("rejects empty drafts", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, &fakePublisher{}, zap.NewNop())
		d := sampleDraft()
		d.Items = nil

		_, err := svc.PlaceOrder(context.Background(), d)
		require.Error(t, err)
	})
}

func TestServiceGet(t *testing.T) {
	repo := &fakeRepo{getByIDFn: func(context.Context, string) (*Order, error) { return nil, nil }}
	svc := NewService(repo, &fakePublisher{}, zap.NewNop())

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestServiceUpdateStatus(t *testing.T) {
	existing := &Order{ID: "o1", Status: StatusPending}
	var updatedTo Status
	repo := &fakeRepo{
		getByIDFn: func(context.Context, string) (*Order, error) {
			cp := *existing
			return &cp, nil
		},
		updateStatusFn: func(_ context.Context, _ string, s Status) error {
			updatedTo = s
			return nil
		},
	}
	pub := &fakePublisher{}
	listener := &recordingListener{}
	svc := NewService(repo, pub, zap.NewNop(), listener)

	o, err := svc.UpdateStatus(context.Background(), "o1", StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, o.Status)
	assert.Equal(t, StatusShipped, updatedTo)
	assert.Equal(t, []Status{StatusPending}, pub.changed)
	assert.Equal(t, []string{"o1:shipped"}, listener.seen)

	_, err = svc.UpdateStatus(context.Background(), "o1", Status("lost"))
	require.Error(t, err)
}

func TestDashboard(t *testing.T) {
	now := time.Now()
	var orders []Order
	for i, st := range []Status{StatusPending, StatusCompleted, StatusPending, StatusShipped, StatusCompleted, StatusCancelled} {
		orders = append(orders, Order{
			ID:        string(rune('a' + i)),
			Status:    st,
			Total:     decimal.NewFromInt(int64(10 * (i + 1))),
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	repo := &fakeRepo{listFn: func(_ context.Context, f ListFilter) ([]Order, error) {
		assert.Equal(t, ListFilter{}, f)
		return orders, nil
	}}
	svc := NewService(repo, &fakePublisher{}, zap.NewNop())

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, d.TotalRevenue.Equal(decimal.NewFromInt(210)))
	assert.Equal(t, 6, d.TotalOrders)
	assert.Equal(t, 2, d.PendingOrders)
	assert.Equal(t, 2, d.CompletedOrders)
	require.Len(t, d.RecentOrders, 5)
	assert.Equal(t, "a", d.RecentOrders[0].ID)
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, st)

	_, err = ParseStatus("refunded")
	require.Error(t, err)
}
