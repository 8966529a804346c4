package request

import "github.com/shopspring/decimal"

type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}
