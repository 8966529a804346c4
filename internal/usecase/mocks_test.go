package usecase

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type gatewayRepoMock struct{ mock.Mock }

func (m *gatewayRepoMock) CreateGateway(ctx context.Context, g *domain.Gateway) error {
	return m.Called(ctx, g).Error(0)
}

func (m *gatewayRepoMock) UpdateGateway(ctx context.Context, g *domain.Gateway) error {
	return m.Called(ctx, g).Error(0)
}

func (m *gatewayRepoMock) DeleteGateway(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *gatewayRepoMock) GetGatewayByID(ctx context.Context, id string) (*domain.Gateway, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*domain.Gateway)
	return g, args.Error(1)
}

func (m *gatewayRepoMock) ListGateways(ctx context.Context, enabledOnly bool) ([]*domain.Gateway, error) {
	args := m.Called(ctx, enabledOnly)
	g, _ := args.Get(0).([]*domain.Gateway)
	return g, args.Error(1)
}

func (m *gatewayRepoMock) GetActiveGateway(ctx context.Context) (*domain.Gateway, error) {
	args := m.Called(ctx)
	g, _ := args.Get(0).(*domain.Gateway)
	return g, args.Error(1)
}

func (m *gatewayRepoMock) EnableGateway(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) CreateOrder(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *orderRepoMock) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) UpdateStatusIfPending(ctx context.Context, orderID string, status domain.OrderStatus, payload []byte) error {
	return m.Called(ctx, orderID, status, payload).Error(0)
}

func (m *orderRepoMock) GetOrdersByUserID(ctx context.Context, userID string, page, limit int) ([]*domain.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	o, _ := args.Get(0).([]*domain.Order)
	return o, args.Get(1).(int64), args.Error(2)
}

func (m *orderRepoMock) FindStalePendingOrders(ctx context.Context, createdBefore time.Time, limit int) ([]*domain.Order, error) {
	args := m.Called(ctx, createdBefore, limit)
	o, _ := args.Get(0).([]*domain.Order)
	return o, args.Error(1)
}

type ledgerRepoMock struct{ mock.Mock }

func (m *ledgerRepoMock) CommitTopUp(ctx context.Context, commit domain.TopUpCommit) (*domain.Transaction, error) {
	args := m.Called(ctx, commit)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

func (m *ledgerRepoMock) CreatePendingTransaction(ctx context.Context, tx *domain.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *ledgerRepoMock) GetTransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

func (m *ledgerRepoMock) GetTransactionsByUserID(ctx context.Context, userID string, page, limit int) ([]*domain.Transaction, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	tx, _ := args.Get(0).([]*domain.Transaction)
	return tx, args.Get(1).(int64), args.Error(2)
}

func (m *ledgerRepoMock) ResolvePendingTransaction(ctx context.Context, id string, status domain.TransactionStatus) (*domain.Transaction, error) {
	args := m.Called(ctx, id, status)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

type publisherMock struct{ mock.Mock }

func (m *publisherMock) Publish(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}
