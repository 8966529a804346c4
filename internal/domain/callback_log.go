package domain

import (
	"context"
	"time"
)

// CallbackLog is the server-side record of one provider redirect.
type CallbackLog struct {
	ID              string
	OrderID         string
	Status          string
	Outcome         string
	Detail          string
	ProviderPayload []byte
	ReceivedAt      time.Time
}

type CallbackLogger interface {
	LogCallback(ctx context.Context, entry CallbackLog) error
}
