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

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.WithContext(ctx).Create(orderModel).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	order.CreatedAt = orderModel.CreatedAt
	order.UpdatedAt = orderModel.UpdatedAt
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) UpdateStatusIfPending(ctx context.Context, orderID string, newStatus domain.OrderStatus, providerPayload []byte) error {
	if !newStatus.IsTerminal() {
		return fmt.Errorf("%w: %s is not a terminal order status", domain.ErrInvalidInput, newStatus)
	}
	return transitionPendingOrder(r.DB.WithContext(ctx), orderID, newStatus, providerPayload)
}

func (r *DefaultOrderRepository) GetOrdersByUserID(ctx context.Context, userID string, page, limit int) ([]*domain.Order, int64, error) {
	var orderModels []models.OrderModel
	var total int64

	page, limit = normalizePage(page, limit)
	baseQuery := r.DB.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID)

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * limit
	if err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orderModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}

	return orders, total, nil
}

func (r *DefaultOrderRepository) FindStalePendingOrders(ctx context.Context, createdBefore time.Time, limit int) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	if err := r.DB.WithContext(ctx).
		Where("status = ?", domain.StatusPending).
		Where("created_at < ?", createdBefore).
		Order("created_at ASC").
		Limit(limit).
		Find(&orderModels).Error; err != nil {
		return nil, fmt.Errorf("find stale orders: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}

	return orders, nil
}

// transitionPendingOrder is the only place an order status is written.
// The status predicate makes check-and-set a single statement.
func transitionPendingOrder(db *gorm.DB, orderID string, newStatus domain.OrderStatus, providerPayload []byte) error {
	updates := map[string]any{
		"status":     newStatus,
		"updated_at": time.Now().UTC(),
	}
	if payload := mappers.JSONPayload(providerPayload); payload != nil {
		updates["provider_payload"] = payload
	}

	res := db.Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, domain.StatusPending).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update order status: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&models.OrderModel{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
		return fmt.Errorf("check order: %w", err)
	}
	if count == 0 {
		return domain.ErrOrderNotFound
	}
	return domain.ErrOrderNotPending
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
