package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultGatewayRepository struct {
	DB *gorm.DB
}

func NewDefaultGatewayRepository(db *gorm.DB) *DefaultGatewayRepository {
	return &DefaultGatewayRepository{DB: db}
}

func (r *DefaultGatewayRepository) CreateGateway(ctx context.Context, gateway *domain.Gateway) error {
	gatewayModel := mappers.ToGORMGateway(gateway)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if gatewayModel.Enabled {
			if err := disableGateways(tx, ""); err != nil {
				return err
			}
		}
		return tx.Create(gatewayModel).Error
	})
	if err != nil {
		return fmt.Errorf("create gateway: %w", err)
	}
	gateway.CreatedAt = gatewayModel.CreatedAt
	gateway.UpdatedAt = gatewayModel.UpdatedAt
	return nil
}

func (r *DefaultGatewayRepository) UpdateGateway(ctx context.Context, gateway *domain.Gateway) error {
	gatewayModel := mappers.ToGORMGateway(gateway)
	if gatewayModel.UpdatedAt.IsZero() {
		gatewayModel.UpdatedAt = time.Now().UTC()
	}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := gatewayExists(tx, gateway.ID); err != nil {
			return err
		}
		if gatewayModel.Enabled {
			if err := disableGateways(tx, gateway.ID); err != nil {
				return err
			}
		}
		if err := tx.Model(&models.GatewayModel{ID: gateway.ID}).
			Select("name", "store_password", "is_live", "enabled", "updated_at").
			Updates(gatewayModel).Error; err != nil {
			return fmt.Errorf("update gateway: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	gateway.UpdatedAt = gatewayModel.UpdatedAt
	return nil
}

func (r *DefaultGatewayRepository) DeleteGateway(ctx context.Context, gatewayID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := gatewayExists(tx, gatewayID); err != nil {
			return err
		}
		// Pending orders still need the credentials to be verified.
		var pending int64
		if err := tx.Model(&models.OrderModel{}).
			Where("gateway_id = ? AND status = ?", gatewayID, domain.StatusPending).
			Count(&pending).Error; err != nil {
			return fmt.Errorf("count pending orders: %w", err)
		}
		if pending > 0 {
			return fmt.Errorf("%w: gateway has %d pending orders", domain.ErrInvalidInput, pending)
		}
		if err := tx.Delete(&models.GatewayModel{}, "id = ?", gatewayID).Error; err != nil {
			return fmt.Errorf("delete gateway: %w", err)
		}
		return nil
	})
}

func (r *DefaultGatewayRepository) GetGatewayByID(ctx context.Context, gatewayID string) (*domain.Gateway, error) {
	var gateway models.GatewayModel
	if err := r.DB.WithContext(ctx).First(&gateway, "id = ?", gatewayID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGatewayNotFound
		}
		return nil, fmt.Errorf("get gateway: %w", err)
	}
	return mappers.ToDomainGateway(&gateway), nil
}

func (r *DefaultGatewayRepository) ListGateways(ctx context.Context, enabledOnly bool) ([]*domain.Gateway, error) {
	var gatewayModels []models.GatewayModel
	query := r.DB.WithContext(ctx).Model(&models.GatewayModel{})
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	if err := query.Order("created_at DESC").Find(&gatewayModels).Error; err != nil {
		return nil, fmt.Errorf("list gateways: %w", err)
	}

	gateways := make([]*domain.Gateway, len(gatewayModels))
	for i := range gatewayModels {
		gateways[i] = mappers.ToDomainGateway(&gatewayModels[i])
	}
	return gateways, nil
}

func (r *DefaultGatewayRepository) GetActiveGateway(ctx context.Context) (*domain.Gateway, error) {
	var gateway models.GatewayModel
	if err := r.DB.WithContext(ctx).
		Where("enabled = ?", true).
		Order("created_at ASC").
		First(&gateway).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoGatewayAvailable
		}
		return nil, fmt.Errorf("get active gateway: %w", err)
	}
	return mappers.ToDomainGateway(&gateway), nil
}

func (r *DefaultGatewayRepository) EnableGateway(ctx context.Context, gatewayID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := gatewayExists(tx, gatewayID); err != nil {
			return err
		}
		if err := disableGateways(tx, gatewayID); err != nil {
			return err
		}
		if err := tx.Model(&models.GatewayModel{}).
			Where("id = ?", gatewayID).
			Update("enabled", true).Error; err != nil {
			return fmt.Errorf("enable gateway: %w", err)
		}
		return nil
	})
}

// disableGateways turns off every enabled gateway except exceptID.
func disableGateways(tx *gorm.DB, exceptID string) error {
	query := tx.Model(&models.GatewayModel{}).Where("enabled = ?", true)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Update("enabled", false).Error; err != nil {
		return fmt.Errorf("disable gateways: %w", err)
	}
	return nil
}

func gatewayExists(tx *gorm.DB, gatewayID string) error {
	var count int64
	if err := tx.Model(&models.GatewayModel{}).Where("id = ?", gatewayID).Count(&count).Error; err != nil {
		return fmt.Errorf("check gateway: %w", err)
	}
	if count == 0 {
		return domain.ErrGatewayNotFound
	}
	return nil
}
