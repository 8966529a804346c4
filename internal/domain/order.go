package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusFailed    OrderStatus = "FAILED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Order is a single top-up attempt.
type Order struct {
	ID              string
	UserID          string
	GatewayID       string
	Amount          decimal.Decimal
	Status          OrderStatus
	Description     string
	CustomerName    string
	CustomerEmail   string
	ProviderPayload []byte
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
