package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	ledgerdto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/ledger"
	"github.com/google/uuid"
)

const (
	defaultPageLimit     = 20
	maxPageLimit         = 100
	maxDescriptionLength = 255
)

type LedgerUsecase interface {
	GetBalance(ctx context.Context, userID string) (*ledgerdto.BalanceOutput, error)
	GetTransactions(ctx context.Context, input *ledgerdto.ListInput) (*ledgerdto.TransactionsOutput, error)
	GetOrders(ctx context.Context, input *ledgerdto.ListInput) (*ledgerdto.OrdersOutput, error)
	CreateTransaction(ctx context.Context, input *ledgerdto.CreateTransactionInput) (*domain.Transaction, error)
	ApproveTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	RejectTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

type DefaultLedgerUsecase struct {
	userRepo   domain.UserRepository
	orderRepo  domain.OrderRepository
	ledgerRepo domain.LedgerRepository
	publisher  domain.EventPublisher
}

func NewDefaultLedgerUsecase(
	userRepo domain.UserRepository,
	orderRepo domain.OrderRepository,
	ledgerRepo domain.LedgerRepository,
	publisher domain.EventPublisher,
) *DefaultLedgerUsecase {
	return &DefaultLedgerUsecase{
		userRepo:   userRepo,
		orderRepo:  orderRepo,
		ledgerRepo: ledgerRepo,
		publisher:  publisher,
	}
}

func (uc *DefaultLedgerUsecase) GetBalance(ctx context.Context, userID string) (*ledgerdto.BalanceOutput, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is missing", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ledgerdto.BalanceOutput{UserID: user.ID, Balance: user.Balance}, nil
}

func (uc *DefaultLedgerUsecase) GetTransactions(ctx context.Context, input *ledgerdto.ListInput) (*ledgerdto.TransactionsOutput, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, fmt.Errorf("%w: user id is missing", domain.ErrInvalidInput)
	}
	page, limit := normalizePage(input.Page, input.Limit)
	txs, total, err := uc.ledgerRepo.GetTransactionsByUserID(ctx, input.UserID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ledgerdto.TransactionsOutput{
		Transactions: txs,
		Pagination:   paginate(page, limit, total),
	}, nil
}

func (uc *DefaultLedgerUsecase) GetOrders(ctx context.Context, input *ledgerdto.ListInput) (*ledgerdto.OrdersOutput, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, fmt.Errorf("%w: user id is missing", domain.ErrInvalidInput)
	}
	page, limit := normalizePage(input.Page, input.Limit)
	orders, total, err := uc.orderRepo.GetOrdersByUserID(ctx, input.UserID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ledgerdto.OrdersOutput{
		Orders:     orders,
		Pagination: paginate(page, limit, total),
	}, nil
}

// CreateTransaction records a Pending ledger entry for operator review.
func (uc *DefaultLedgerUsecase) CreateTransaction(ctx context.Context, input *ledgerdto.CreateTransactionInput) (*domain.Transaction, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, fmt.Errorf("%w: user id is missing", domain.ErrInvalidInput)
	}
	amount := input.Amount.Round(2)
	if amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must not be zero", domain.ErrInvalidInput)
	}
	description := strings.TrimSpace(input.Description)
	if len(description) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description is too long", domain.ErrInvalidInput)
	}
	if description == "" {
		description = "Deposit request"
		if amount.IsNegative() {
			description = "Withdrawal request"
		}
	}

	user, err := uc.userRepo.GetUserByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, fmt.Errorf("%w: user is banned", domain.ErrInvalidInput)
	}

	tx := &domain.Transaction{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Amount:      amount,
		Description: description,
		Status:      domain.TransactionPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.ledgerRepo.CreatePendingTransaction(ctx, tx); err != nil {
		return nil, err
	}
	slog.Info("transaction submitted", "transaction_id", tx.ID, "user_id", tx.UserID, "amount", tx.Amount.String())
	return tx, nil
}

// ApproveTransaction completes a Pending ledger entry; positive amounts are credited.
func (uc *DefaultLedgerUsecase) ApproveTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	tx, err := uc.ledgerRepo.ResolvePendingTransaction(ctx, transactionID, domain.TransactionCompleted)
	if err != nil {
		return nil, err
	}
	slog.Info("transaction approved", "transaction_id", tx.ID, "user_id", tx.UserID, "amount", tx.Amount.String())
	if tx.Amount.IsPositive() {
		uc.publishBalance(ctx, tx)
	}
	return tx, nil
}

func (uc *DefaultLedgerUsecase) RejectTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	tx, err := uc.ledgerRepo.ResolvePendingTransaction(ctx, transactionID, domain.TransactionFailed)
	if err != nil {
		return nil, err
	}
	slog.Info("transaction rejected", "transaction_id", tx.ID, "user_id", tx.UserID)
	return tx, nil
}

func (uc *DefaultLedgerUsecase) publishBalance(ctx context.Context, tx *domain.Transaction) {
	if uc.publisher == nil {
		return
	}
	err := uc.publisher.Publish(ctx, domain.Event{
		Type:       domain.EventBalanceChanged,
		UserID:     tx.UserID,
		Status:     string(tx.Status),
		Amount:     tx.Amount,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to publish balance event", "transaction_id", tx.ID, "error", err)
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func paginate(page, limit int, total int64) ledgerdto.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return ledgerdto.Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
