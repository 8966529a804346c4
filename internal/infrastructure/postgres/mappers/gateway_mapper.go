package mappers

import (
	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/models"
)

func ToDomainGateway(model *models.GatewayModel) *domain.Gateway {
	return &domain.Gateway{
		ID:            model.ID,
		Name:          model.Name,
		StorePassword: model.StorePassword,
		IsLive:        model.IsLive,
		Enabled:       model.Enabled,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMGateway(gateway *domain.Gateway) *models.GatewayModel {
	return &models.GatewayModel{
		ID:            gateway.ID,
		Name:          gateway.Name,
		StorePassword: gateway.StorePassword,
		IsLive:        gateway.IsLive,
		Enabled:       gateway.Enabled,
		CreatedAt:     gateway.CreatedAt,
		UpdatedAt:     gateway.UpdatedAt,
	}
}
