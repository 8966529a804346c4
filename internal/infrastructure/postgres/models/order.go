package models

import (
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderModel struct {
	ID              string             `gorm:"primaryKey;type:varchar(64)"`
	UserID          string             `gorm:"type:varchar(128);not null;index:idx_orders_user_created"`
	GatewayID       string             `gorm:"type:varchar(64);not null"`
	Amount          decimal.Decimal    `gorm:"type:numeric(20,2);not null"`
	Status          domain.OrderStatus `gorm:"type:varchar(16);not null;index:idx_orders_status_created"`
	Description     string
	CustomerName    string
	CustomerEmail   string
	ProviderPayload datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"index:idx_orders_user_created;index:idx_orders_status_created"`
	UpdatedAt       time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}
