package models

import "time"

type GatewayModel struct {
	ID            string `gorm:"primaryKey;type:varchar(64)"`
	Name          string `gorm:"not null"`
	StorePassword string `gorm:"not null"`
	IsLive        bool   `gorm:"not null;default:false"`
	// A partial unique index keeps at most one enabled row.
	Enabled   bool `gorm:"not null;default:false;uniqueIndex:idx_gateways_single_active,where:enabled = true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (GatewayModel) TableName() string {
	return "gateways"
}
