package mappers

import (
	"encoding/json"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/models"
	"gorm.io/datatypes"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:              model.ID,
		UserID:          model.UserID,
		GatewayID:       model.GatewayID,
		Amount:          model.Amount,
		Status:          model.Status,
		Description:     model.Description,
		CustomerName:    model.CustomerName,
		CustomerEmail:   model.CustomerEmail,
		ProviderPayload: []byte(model.ProviderPayload),
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:              order.ID,
		UserID:          order.UserID,
		GatewayID:       order.GatewayID,
		Amount:          order.Amount,
		Status:          order.Status,
		Description:     order.Description,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		ProviderPayload: JSONPayload(order.ProviderPayload),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// JSONPayload keeps only well-formed JSON; anything else is stored as NULL.
func JSONPayload(raw []byte) datatypes.JSON {
	if len(raw) == 0 || !json.Valid(raw) {
		return nil
	}
	return datatypes.JSON(raw)
}
