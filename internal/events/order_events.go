package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

const (
	orderPlacedEventName    = "OrderPlaced"
	orderPlacedEventVersion = 1

	orderStatusChangedEventName    = "OrderStatusChanged"
	orderStatusChangedEventVersion = 1
)

type OrderLine struct {
	ProductID string          `json:"productId"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderPlacedPayload is the v1 OrderPlaced payload.
type OrderPlacedPayload struct {
	OrderID        string          `json:"orderId"`
	Email          string          `json:"email"`
	Items          []OrderLine     `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountCode   string          `json:"discountCode,omitempty"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	PlacedAt       time.Time       `json:"placedAt"`
}

type OrderPlacedEnvelope = EventEnvelope[OrderPlacedPayload]

type OrderStatusChangedPayload struct {
	OrderID        string    `json:"orderId"`
	PreviousStatus string    `json:"previousStatus"`
	Status         string    `json:"status"`
	ChangedAt      time.Time `json:"changedAt"`
}

type OrderStatusChangedEnvelope = EventEnvelope[OrderStatusChangedPayload]

func newEnvelope[T any](name string, version int, partitionKey string, seq int64, meta EnvelopeMetadata, payload T) EventEnvelope[T] {
	if meta.CorrelationID == "" {
		meta.CorrelationID = uuid.NewString()
	}
	return EventEnvelope[T]{
		EventName:     name,
		EventVersion:  version,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producerName,
		PartitionKey:  partitionKey,
		Sequence:      &seq,
		OccurredAt:    time.Now().UTC(),
		Payload:       payload,
	}
}

// BuildOrderPlacedEnvelope builds an enveloped OrderPlaced event.
func BuildOrderPlacedEnvelope(o *order.Order, seq int64, meta EnvelopeMetadata) OrderPlacedEnvelope {
	lines := make([]OrderLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, OrderLine{
			ProductID: it.ProductID,
			Size:      it.Size,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	return newEnvelope(orderPlacedEventName, orderPlacedEventVersion, o.ID, seq, meta, OrderPlacedPayload{
		OrderID:        o.ID,
		Email:          o.Email,
		Items:          lines,
		Subtotal:       o.Subtotal,
		DiscountCode:   o.DiscountCode,
		DiscountAmount: o.DiscountAmount,
		ShippingCost:   o.ShippingCost,
		Tax:            o.Tax,
		Total:          o.Total,
		PlacedAt:       o.CreatedAt,
	})
}

func BuildOrderStatusChangedEnvelope(o *order.Order, previous order.Status, seq int64, meta EnvelopeMetadata) OrderStatusChangedEnvelope {
	return newEnvelope(orderStatusChangedEventName, orderStatusChangedEventVersion, o.ID, seq, meta, OrderStatusChangedPayload{
		OrderID:        o.ID,
		PreviousStatus: string(previous),
		Status:         string(o.Status),
		ChangedAt:      o.UpdatedAt,
	})
}
