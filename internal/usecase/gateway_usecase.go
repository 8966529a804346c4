package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	gatewaydto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/gateway"
	"github.com/google/uuid"
)

type GatewayUsecase interface {
	CreateGateway(ctx context.Context, input *gatewaydto.CreateGatewayInput) (*domain.Gateway, error)
	UpdateGateway(ctx context.Context, input *gatewaydto.UpdateGatewayInput) (*domain.Gateway, error)
	DeleteGateway(ctx context.Context, gatewayID string) error
	GetGatewayByID(ctx context.Context, gatewayID string) (*domain.Gateway, error)
	ListGateways(ctx context.Context, enabledOnly bool) ([]*domain.Gateway, error)
	GetActiveGateway(ctx context.Context) (*domain.Gateway, error)
	EnableGateway(ctx context.Context, gatewayID string) (*domain.Gateway, error)
}

type DefaultGatewayUsecase struct {
	gatewayRepo domain.GatewayRepository
}

func NewDefaultGatewayUsecase(gatewayRepo domain.GatewayRepository) *DefaultGatewayUsecase {
	return &DefaultGatewayUsecase{gatewayRepo: gatewayRepo}
}

func (uc *DefaultGatewayUsecase) CreateGateway(ctx context.Context, input *gatewaydto.CreateGatewayInput) (*domain.Gateway, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: gateway name is required", domain.ErrInvalidInput)
	}
	if input.StorePassword == "" {
		return nil, fmt.Errorf("%w: store password is required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	gateway := &domain.Gateway{
		ID:            uuid.New().String(),
		Name:          name,
		StorePassword: input.StorePassword,
		IsLive:        input.IsLive,
		Enabled:       input.Enabled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.gatewayRepo.CreateGateway(ctx, gateway); err != nil {
		return nil, err
	}
	return gateway, nil
}

func (uc *DefaultGatewayUsecase) UpdateGateway(ctx context.Context, input *gatewaydto.UpdateGatewayInput) (*domain.Gateway, error) {
	gateway, err := uc.gatewayRepo.GetGatewayByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		gateway.Name = name
	}
	if input.StorePassword != "" {
		gateway.StorePassword = input.StorePassword
	}
	if input.IsLive != nil {
		gateway.IsLive = *input.IsLive
	}
	if input.Enabled != nil {
		gateway.Enabled = *input.Enabled
	}
	gateway.UpdatedAt = time.Now().UTC()

	if err := uc.gatewayRepo.UpdateGateway(ctx, gateway); err != nil {
		return nil, err
	}
	return gateway, nil
}

func (uc *DefaultGatewayUsecase) DeleteGateway(ctx context.Context, gatewayID string) error {
	return uc.gatewayRepo.DeleteGateway(ctx, gatewayID)
}

func (uc *DefaultGatewayUsecase) GetGatewayByID(ctx context.Context, gatewayID string) (*domain.Gateway, error) {
	return uc.gatewayRepo.GetGatewayByID(ctx, gatewayID)
}

func (uc *DefaultGatewayUsecase) ListGateways(ctx context.Context, enabledOnly bool) ([]*domain.Gateway, error) {
	return uc.gatewayRepo.ListGateways(ctx, enabledOnly)
}

func (uc *DefaultGatewayUsecase) GetActiveGateway(ctx context.Context) (*domain.Gateway, error) {
	return uc.gatewayRepo.GetActiveGateway(ctx)
}

func (uc *DefaultGatewayUsecase) EnableGateway(ctx context.Context, gatewayID string) (*domain.Gateway, error) {
	if err := uc.gatewayRepo.EnableGateway(ctx, gatewayID); err != nil {
		return nil, err
	}
	return uc.gatewayRepo.GetGatewayByID(ctx, gatewayID)
}
