package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

func placedOrder() *order.Order {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &order.Order{
		ID:       "order-123",
		Shipping: order.Shipping{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"},
		Subtotal: decimal.RequireFromString("55.00"),
		Total:    decimal.RequireFromString("59.48"),
		Status:   order.StatusPending,
		Items: []order.Item{
			{ProductID: "p1", Size: "M", Quantity: 2, Price: decimal.RequireFromString("20.00")},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderPlacedEnvelope(t *testing.T) {
	env := BuildOrderPlacedEnvelope(placedOrder(), 3, EnvelopeMetadata{CorrelationID: "corr-1"})

	require.NoError(t, env.ValidateFor(OrderPlacedRoutingKey))
	assert.Equal(t, "order-123", env.PartitionKey)
	assert.Equal(t, "corr-1", env.CorrelationID)
	assert.Equal(t, producerName, env.Producer)
	require.NotNil(t, env.Sequence)
	assert.Equal(t, int64(3), *env.Sequence)
	assert.NotEmpty(t, env.EventID)
	require.Len(t, env.Payload.Items, 1)
	assert.Equal(t, "p1", env.Payload.Items[0].ProductID)

	assert.Error(t, env.ValidateFor(OrderStatusChangedRoutingKey))
	assert.Error(t, env.ValidateFor("order.cancelled.v1"))

	env.EventVersion = 2
	assert.Error(t, env.ValidateFor(OrderPlacedRoutingKey))
	env.EventVersion = orderPlacedEventVersion
	env.Sequence = nil
	assert.Error(t, env.ValidateFor(OrderPlacedRoutingKey))
}

func TestEnvelopeGeneratesCorrelationID(t *testing.T) {
	env := BuildOrderPlacedEnvelope(placedOrder(), 1, EnvelopeMetadata{})
	assert.NotEmpty(t, env.CorrelationID)
}

func TestOrderStatusChangedEnvelope(t *testing.T) {
	o := placedOrder()
	o.Status = order.StatusShipped

	env := BuildOrderStatusChangedEnvelope(o, order.StatusPending, 2, EnvelopeMetadata{CorrelationID: "corr-2"})
	require.NoError(t, env.ValidateFor(OrderStatusChangedRoutingKey))
	assert.Equal(t, "pending", env.Payload.PreviousStatus)
	assert.Equal(t, "shipped", env.Payload.Status)

	env.PartitionKey = ""
	assert.Error(t, env.ValidateFor(OrderStatusChangedRoutingKey))
}

func TestEnvelopeJSONShape(t *testing.T) {
	env := BuildOrderPlacedEnvelope(placedOrder(), 1, EnvelopeMetadata{CorrelationID: "c"})
	body, err := json.Marshal(env)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	for _, key := range []string{"eventName", "eventVersion", "eventId", "producer", "partitionKey", "sequence", "occurredAt", "payload"} {
		assert.Contains(t, raw, key)
	}
	payload := raw["payload"].(map[string]any)
	assert.Equal(t, "59.48", payload["total"])
}
