package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventOrderCreated   EventType = "order.created"
	EventOrderCompleted EventType = "order.completed"
	EventOrderFailed    EventType = "order.failed"
	EventOrderCancelled EventType = "order.cancelled"
	EventBalanceChanged EventType = "balance.changed"
)

// Event is a change notification for the presentation layer.
type Event struct {
	Type       EventType       `json:"type"`
	UserID     string          `json:"user_id"`
	OrderID    string          `json:"order_id,omitempty"`
	Status     string          `json:"status,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context) (<-chan Event, error)
}
