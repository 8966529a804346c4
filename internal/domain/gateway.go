package domain

import (
	"context"
	"time"
)

// Gateway holds the credentials of a payment provider integration.
// At most one gateway is enabled at any time.
type Gateway struct {
	ID            string
	Name          string
	StorePassword string
	IsLive        bool
	Enabled       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type GatewayRepository interface {
	CreateGateway(ctx context.Context, gateway *Gateway) error
	UpdateGateway(ctx context.Context, gateway *Gateway) error
	DeleteGateway(ctx context.Context, gatewayID string) error
	GetGatewayByID(ctx context.Context, gatewayID string) (*Gateway, error)
	ListGateways(ctx context.Context, enabledOnly bool) ([]*Gateway, error)
	GetActiveGateway(ctx context.Context) (*Gateway, error)
	EnableGateway(ctx context.Context, gatewayID string) error
}
