package logger

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PGCallbackLogger keeps every provider redirect for later diagnosis.
type PGCallbackLogger struct {
	db *gorm.DB
}

func NewPGCallbackLogger(db *gorm.DB) *PGCallbackLogger {
	return &PGCallbackLogger{db: db}
}

func (l *PGCallbackLogger) LogCallback(ctx context.Context, entry domain.CallbackLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.ReceivedAt.IsZero() {
		entry.ReceivedAt = time.Now().UTC()
	}
	return l.db.WithContext(ctx).Create(&models.CallbackLogModel{
		ID:              entry.ID,
		OrderID:         entry.OrderID,
		Status:          entry.Status,
		Outcome:         entry.Outcome,
		Detail:          entry.Detail,
		ProviderPayload: mappers.JSONPayload(entry.ProviderPayload),
		ReceivedAt:      entry.ReceivedAt,
	}).Error
}
