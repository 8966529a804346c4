package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type User struct {
	ID       string
	Email    string
	Balance  decimal.Decimal
	IsBanned bool
}

type UserRepository interface {
	GetUserByID(ctx context.Context, userID string) (*User, error)
}
