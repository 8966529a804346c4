package ledgerdto

import (
	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/shopspring/decimal"
)

type BalanceOutput struct {
	UserID  string
	Balance decimal.Decimal
}

type TransactionsOutput struct {
	Transactions []*domain.Transaction
	Pagination   Pagination
}

type OrdersOutput struct {
	Orders     []*domain.Order
	Pagination Pagination
}

type Pagination struct {
	CurrentPage  int
	TotalPages   int
	TotalItems   int64
	ItemsPerPage int
}
