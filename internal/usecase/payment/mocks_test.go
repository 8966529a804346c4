package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) CreateOrder(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *orderRepoMock) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*domain.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) UpdateStatusIfPending(ctx context.Context, orderID string, newStatus domain.OrderStatus, payload []byte) error {
	return m.Called(ctx, orderID, newStatus, payload).Error(0)
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

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

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

type providerMock struct{ mock.Mock }

func (m *providerMock) Checkout(ctx context.Context, creds domain.ProviderCredentials, req domain.CheckoutRequest) (*domain.CheckoutResponse, error) {
	args := m.Called(ctx, creds, req)
	r, _ := args.Get(0).(*domain.CheckoutResponse)
	return r, args.Error(1)
}

func (m *providerMock) Verify(ctx context.Context, apiKey, transactionID string) (*domain.VerifyResult, error) {
	args := m.Called(ctx, apiKey, transactionID)
	r, _ := args.Get(0).(*domain.VerifyResult)
	return r, args.Error(1)
}

type publisherMock struct{ mock.Mock }

func (m *publisherMock) Publish(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

type callbackLoggerMock struct{ mock.Mock }

func (m *callbackLoggerMock) LogCallback(ctx context.Context, entry domain.CallbackLog) error {
	return m.Called(ctx, entry).Error(0)
}

type deps struct {
	orders    *orderRepoMock
	users     *userRepoMock
	gateways  *gatewayRepoMock
	ledger    *ledgerRepoMock
	provider  *providerMock
	publisher *publisherMock
	callbacks *callbackLoggerMock
}

func newDeps() *deps {
	d := &deps{
		orders:    new(orderRepoMock),
		users:     new(userRepoMock),
		gateways:  new(gatewayRepoMock),
		ledger:    new(ledgerRepoMock),
		provider:  new(providerMock),
		publisher: new(publisherMock),
		callbacks: new(callbackLoggerMock),
	}
	d.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	d.callbacks.On("LogCallback", mock.Anything, mock.Anything).Return(nil).Maybe()
	return d
}

func (d *deps) usecase(t *testing.T) *DefaultPaymentUsecase {
	t.Helper()
	uc, err := NewDefaultPaymentUsecase(d.orders, d.users, d.gateways, d.ledger, d.provider, d.publisher, d.callbacks, nil, Options{
		MinAmount:     decimal.NewFromInt(10),
		CustomerPhone: "01000000000",
	})
	require.NoError(t, err)
	return uc
}

func (d *deps) assertExpectations(t *testing.T) {
	t.Helper()
	d.orders.AssertExpectations(t)
	d.users.AssertExpectations(t)
	d.gateways.AssertExpectations(t)
	d.ledger.AssertExpectations(t)
	d.provider.AssertExpectations(t)
}

func activeGateway() *domain.Gateway {
	return &domain.Gateway{ID: "gw-1", Name: "RupantorPay", StorePassword: "secret", Enabled: true}
}

func pendingOrder(id string, amount int64) *domain.Order {
	return &domain.Order{
		ID:        id,
		UserID:    "user-1",
		GatewayID: "gw-1",
		Amount:    decimal.NewFromInt(amount),
		Status:    domain.StatusPending,
		CreatedAt: time.Now().Add(-time.Minute),
	}
}
