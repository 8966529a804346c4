package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserModel struct {
	ID        string          `gorm:"primaryKey;type:varchar(128)"`
	Email     string          `gorm:"not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	IsBanned  bool            `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return "users"
}
