package mappers

import (
	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	tx := &domain.Transaction{
		ID:          model.ID,
		UserID:      model.UserID,
		Amount:      model.Amount,
		Description: model.Description,
		Status:      model.Status,
		CreatedAt:   model.CreatedAt,
	}
	if model.OrderID != nil {
		tx.OrderID = *model.OrderID
	}
	return tx
}

func ToGORMTransaction(tx *domain.Transaction) *models.TransactionModel {
	model := &models.TransactionModel{
		ID:          tx.ID,
		UserID:      tx.UserID,
		Amount:      tx.Amount,
		Description: tx.Description,
		Status:      tx.Status,
		CreatedAt:   tx.CreatedAt,
	}
	if tx.OrderID != "" {
		orderID := tx.OrderID
		model.OrderID = &orderID
	}
	return model
}

func ToDomainUser(model *models.UserModel) *domain.User {
	return &domain.User{
		ID:       model.ID,
		Email:    model.Email,
		Balance:  model.Balance,
		IsBanned: model.IsBanned,
	}
}
