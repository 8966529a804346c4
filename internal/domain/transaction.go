package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "Pending"
	TransactionCompleted TransactionStatus = "Completed"
	TransactionFailed    TransactionStatus = "Failed"
)

// Transaction is an append-only ledger entry. Positive amounts are credits.
type Transaction struct {
	ID          string
	UserID      string
	OrderID     string
	Amount      decimal.Decimal
	Description string
	Status      TransactionStatus
	CreatedAt   time.Time
}

// TopUpCommit describes the all-or-nothing settlement of a verified order.
type TopUpCommit struct {
	OrderID         string
	UserID          string
	Amount          decimal.Decimal
	Description     string
	ProviderPayload []byte
}

type LedgerRepository interface {
	// CommitTopUp completes the order, credits the balance and appends a
	// Completed transaction in one database transaction.
	CommitTopUp(ctx context.Context, commit TopUpCommit) (*Transaction, error)
	// CreatePendingTransaction appends a Pending entry awaiting operator review.
	CreatePendingTransaction(ctx context.Context, tx *Transaction) error
	GetTransactionByID(ctx context.Context, transactionID string) (*Transaction, error)
	GetTransactionsByUserID(ctx context.Context, userID string, page, limit int) ([]*Transaction, int64, error)
	// ResolvePendingTransaction moves a Pending entry to newStatus; a Completed
	// credit is applied to the user balance atomically.
	ResolvePendingTransaction(ctx context.Context, transactionID string, newStatus TransactionStatus) (*Transaction, error)
}
