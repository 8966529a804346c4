package domain

import (
	"context"
	"time"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	// UpdateStatusIfPending moves a PENDING order to a terminal status.
	// Returns ErrOrderNotPending when the order already left PENDING.
	UpdateStatusIfPending(ctx context.Context, orderID string, newStatus OrderStatus, providerPayload []byte) error
	GetOrdersByUserID(ctx context.Context, userID string, page, limit int) ([]*Order, int64, error)
	FindStalePendingOrders(ctx context.Context, createdBefore time.Time, limit int) ([]*Order, error)
}
