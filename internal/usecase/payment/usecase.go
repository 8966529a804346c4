package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/metrics"
	paymentdto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/payment"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

const orderIDPrefix = "TRN-"

type PaymentUsecase interface {
	Initiate(ctx context.Context, input *paymentdto.InitiateInput) (*paymentdto.InitiateOutput, error)
	HandleCallback(ctx context.Context, input *paymentdto.CallbackInput) *paymentdto.CallbackResult
	ReconcilePending(ctx context.Context, input *paymentdto.ReconcileInput) (*paymentdto.ReconcileOutput, error)
}

type Options struct {
	MinAmount     decimal.Decimal
	CustomerPhone string
}

type DefaultPaymentUsecase struct {
	orderRepo      domain.OrderRepository
	userRepo       domain.UserRepository
	gatewayRepo    domain.GatewayRepository
	ledgerRepo     domain.LedgerRepository
	provider       domain.PaymentProvider
	publisher      domain.EventPublisher
	callbackLogger domain.CallbackLogger
	metrics        *metrics.PaymentMetrics

	minAmount     decimal.Decimal
	customerPhone string
	newID         func() string
}

func NewDefaultPaymentUsecase(
	orderRepo domain.OrderRepository,
	userRepo domain.UserRepository,
	gatewayRepo domain.GatewayRepository,
	ledgerRepo domain.LedgerRepository,
	provider domain.PaymentProvider,
	publisher domain.EventPublisher,
	callbackLogger domain.CallbackLogger,
	m *metrics.PaymentMetrics,
	opts Options,
) (*DefaultPaymentUsecase, error) {
	idGenerator, err := nanoid.Standard(16)
	if err != nil {
		return nil, err
	}
	return &DefaultPaymentUsecase{
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		gatewayRepo:    gatewayRepo,
		ledgerRepo:     ledgerRepo,
		provider:       provider,
		publisher:      publisher,
		callbackLogger: callbackLogger,
		metrics:        m,
		minAmount:      opts.MinAmount,
		customerPhone:  opts.CustomerPhone,
		newID: func() string {
			return orderIDPrefix + idGenerator()
		},
	}, nil
}

// publish is best effort: the database is the source of truth.
func (uc *DefaultPaymentUsecase) publish(ctx context.Context, eventType domain.EventType, order *domain.Order, status domain.OrderStatus) {
	if uc.publisher == nil {
		return
	}
	event := domain.Event{
		Type:       eventType,
		UserID:     order.UserID,
		OrderID:    order.ID,
		Status:     string(status),
		Amount:     order.Amount,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		slog.Error("failed to publish event", "type", eventType, "order_id", order.ID, "error", err)
	}
}
