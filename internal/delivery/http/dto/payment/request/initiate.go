package request

import "github.com/shopspring/decimal"

type InitiateRequest struct {
	UserID string          `json:"userId"`
	Amount decimal.Decimal `json:"amount"`
}
