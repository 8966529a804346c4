package models

import (
	"time"

	"gorm.io/datatypes"
)

type CallbackLogModel struct {
	ID              string `gorm:"primaryKey;type:varchar(64)"`
	OrderID         string `gorm:"type:varchar(64);index"`
	Status          string `gorm:"type:varchar(32)"`
	Outcome         string `gorm:"type:varchar(32);not null"`
	Detail          string
	ProviderPayload datatypes.JSON `gorm:"type:jsonb"`
	ReceivedAt      time.Time      `gorm:"not null;index"`
}

func (CallbackLogModel) TableName() string {
	return "payment_callback_logs"
}
