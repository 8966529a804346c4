package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DefaultLedgerRepository struct {
	DB *gorm.DB
}

func NewDefaultLedgerRepository(db *gorm.DB) *DefaultLedgerRepository {
	return &DefaultLedgerRepository{DB: db}
}

func (r *DefaultLedgerRepository) CommitTopUp(ctx context.Context, commit domain.TopUpCommit) (*domain.Transaction, error) {
	if !commit.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: top-up amount must be positive", domain.ErrInvalidInput)
	}

	entry := &domain.Transaction{
		ID:          uuid.New().String(),
		UserID:      commit.UserID,
		OrderID:     commit.OrderID,
		Amount:      commit.Amount,
		Description: commit.Description,
		Status:      domain.TransactionCompleted,
		CreatedAt:   time.Now().UTC(),
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := transitionPendingOrder(tx, commit.OrderID, domain.StatusCompleted, commit.ProviderPayload); err != nil {
			return err
		}
		if err := creditBalance(tx, commit.UserID, commit.Amount); err != nil {
			return err
		}
		if err := tx.Create(mappers.ToGORMTransaction(entry)).Error; err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *DefaultLedgerRepository) CreatePendingTransaction(ctx context.Context, entry *domain.Transaction) error {
	if entry.OrderID != "" {
		return fmt.Errorf("%w: order-backed entries are written by the top-up commit", domain.ErrInvalidInput)
	}
	entry.Status = domain.TransactionPending
	model := mappers.ToGORMTransaction(entry)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("create pending transaction: %w", err)
	}
	entry.CreatedAt = model.CreatedAt
	return nil
}

func (r *DefaultLedgerRepository) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var model models.TransactionModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return mappers.ToDomainTransaction(&model), nil
}

func (r *DefaultLedgerRepository) GetTransactionsByUserID(ctx context.Context, userID string, page, limit int) ([]*domain.Transaction, int64, error) {
	var transactionModels []models.TransactionModel
	var total int64

	page, limit = normalizePage(page, limit)
	baseQuery := r.DB.WithContext(ctx).Model(&models.TransactionModel{}).Where("user_id = ?", userID)

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	offset := (page - 1) * limit
	if err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactionModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find transactions: %w", err)
	}

	transactions := make([]*domain.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = mappers.ToDomainTransaction(&transactionModels[i])
	}
	return transactions, total, nil
}

func (r *DefaultLedgerRepository) ResolvePendingTransaction(ctx context.Context, transactionID string, newStatus domain.TransactionStatus) (*domain.Transaction, error) {
	if newStatus != domain.TransactionCompleted && newStatus != domain.TransactionFailed {
		return nil, fmt.Errorf("%w: cannot resolve transaction to %s", domain.ErrInvalidInput, newStatus)
	}

	var model models.TransactionModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, "id = ?", transactionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTransactionNotFound
			}
			return fmt.Errorf("get transaction: %w", err)
		}

		res := tx.Model(&models.TransactionModel{}).
			Where("id = ? AND status = ?", transactionID, domain.TransactionPending).
			Updates(map[string]any{"status": newStatus, "updated_at": time.Now().UTC()})
		if res.Error != nil {
			return fmt.Errorf("update transaction status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: transaction %s is %s", domain.ErrInvalidInput, transactionID, model.Status)
		}

		if newStatus == domain.TransactionCompleted && model.Amount.IsPositive() {
			if err := creditBalance(tx, model.UserID, model.Amount); err != nil {
				return err
			}
		}
		model.Status = newStatus
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mappers.ToDomainTransaction(&model), nil
}

func creditBalance(tx *gorm.DB, userID string, amount decimal.Decimal) error {
	res := tx.Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("credit balance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
