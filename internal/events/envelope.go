package events

import (
	"errors"
	"fmt"
	"time"
)

// EventEnvelope wraps every order event sent to EventsExchange. PartitionKey
// is the order id and Sequence orders the events of one order.
type EventEnvelope[T any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	CausationID   string    `json:"causationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	Sequence      *int64    `json:"sequence,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
	Payload       T         `json:"payload"`
}

type EnvelopeMetadata struct {
	CorrelationID string
	CausationID   string
}

type eventType struct {
	name    string
	version int
}

// routes lists the only event each routing key may carry.
var routes = map[string]eventType{
	OrderPlacedRoutingKey:        {orderPlacedEventName, orderPlacedEventVersion},
	OrderStatusChangedRoutingKey: {orderStatusChangedEventName, orderStatusChangedEventVersion},
}

// ValidateFor checks that e may be published under routingKey.
func (e EventEnvelope[T]) ValidateFor(routingKey string) error {
	want, ok := routes[routingKey]
	if !ok {
		return fmt.Errorf("unknown routing key %q", routingKey)
	}
	if e.EventName != want.name || e.EventVersion != want.version {
		return fmt.Errorf("%s v%d does not belong on %s", e.EventName, e.EventVersion, routingKey)
	}
	if e.PartitionKey == "" {
		return errors.New("envelope has no partition key")
	}
	if e.Sequence == nil {
		return errors.New("envelope has no sequence")
	}
	return nil
}
