package models

import (
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionModel struct {
	ID          string                   `gorm:"primaryKey;type:varchar(64)"`
	UserID      string                   `gorm:"type:varchar(128);not null;index:idx_transactions_user_created"`
	OrderID     *string                  `gorm:"type:varchar(64);uniqueIndex:idx_transactions_order"`
	Amount      decimal.Decimal          `gorm:"type:numeric(20,2);not null"`
	Description string
	Status      domain.TransactionStatus `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time                `gorm:"index:idx_transactions_user_created"`
	UpdatedAt   time.Time
}

func (TransactionModel) TableName() string {
	return "transactions"
}
