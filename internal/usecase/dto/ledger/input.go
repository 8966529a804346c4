package ledgerdto

import "github.com/shopspring/decimal"

// CreateTransactionInput is a user-submitted ledger request. Positive
// amounts are deposits credited on approval; negative amounts are withdrawal requests.
type CreateTransactionInput struct {
	UserID      string
	Amount      decimal.Decimal
	Description string
}

type ListInput struct {
	UserID string
	Page   int
	Limit  int
}
