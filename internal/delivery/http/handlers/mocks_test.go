package handlers

import (
	"context"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	gatewaydto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/gateway"
	ledgerdto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/ledger"
	paymentdto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/payment"
	"github.com/stretchr/testify/mock"
)

type paymentUsecaseMock struct{ mock.Mock }

func (m *paymentUsecaseMock) Initiate(ctx context.Context, input *paymentdto.InitiateInput) (*paymentdto.InitiateOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*paymentdto.InitiateOutput)
	return out, args.Error(1)
}

func (m *paymentUsecaseMock) HandleCallback(ctx context.Context, input *paymentdto.CallbackInput) *paymentdto.CallbackResult {
	return m.Called(ctx, input).Get(0).(*paymentdto.CallbackResult)
}

func (m *paymentUsecaseMock) ReconcilePending(ctx context.Context, input *paymentdto.ReconcileInput) (*paymentdto.ReconcileOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*paymentdto.ReconcileOutput)
	return out, args.Error(1)
}

type ledgerUsecaseMock struct{ mock.Mock }

func (m *ledgerUsecaseMock) GetBalance(ctx context.Context, userID string) (*ledgerdto.BalanceOutput, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).(*ledgerdto.BalanceOutput)
	return out, args.Error(1)
}

func (m *ledgerUsecaseMock) GetTransactions(ctx context.Context, input *ledgerdto.ListInput) (*ledgerdto.TransactionsOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*ledgerdto.TransactionsOutput)
	return out, args.Error(1)
}

func (m *ledgerUsecaseMock) GetOrders(ctx context.Context, input *ledgerdto.ListInput) (*ledgerdto.OrdersOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*ledgerdto.OrdersOutput)
	return out, args.Error(1)
}

func (m *ledgerUsecaseMock) CreateTransaction(ctx context.Context, input *ledgerdto.CreateTransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, input)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

func (m *ledgerUsecaseMock) ApproveTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

func (m *ledgerUsecaseMock) RejectTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

type gatewayUsecaseMock struct{ mock.Mock }

func (m *gatewayUsecaseMock) CreateGateway(ctx context.Context, input *gatewaydto.CreateGatewayInput) (*domain.Gateway, error) {
	args := m.Called(ctx, input)
	g, _ := args.Get(0).(*domain.Gateway)
	return g, args.Error(1)
}

func (m *gatewayUsecaseMock) UpdateGateway(ctx context.Context, input *gatewaydto.UpdateGatewayInput) (*domain.Gateway, error) {
	args := m.Called(ctx, input)
	g, _ := args.Get(0).(*domain.Gateway)
	return g, args.Error(1)
}

func (m *gatewayUsecaseMock) DeleteGateway(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *gatewayUsecaseMock) GetGatewayByID(ctx context.Context, id string) (*domain.Gateway, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*domain.Gateway)
	return g, args.Error(1)
}

func (m *gatewayUsecaseMock) ListGateways(ctx context.Context, enabledOnly bool) ([]*domain.Gateway, error) {
	args := m.Called(ctx, enabledOnly)
	g, _ := args.Get(0).([]*domain.Gateway)
	return g, args.Error(1)
}

func (m *gatewayUsecaseMock) GetActiveGateway(ctx context.Context) (*domain.Gateway, error) {
	args := m.Called(ctx)
	g, _ := args.Get(0).(*domain.Gateway)
	return g, args.Error(1)
}

func (m *gatewayUsecaseMock) EnableGateway(ctx context.Context, id string) (*domain.Gateway, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*domain.Gateway)
	return g, args.Error(1)
}
