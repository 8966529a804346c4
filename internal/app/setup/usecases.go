package setup

import (
	"fmt"

	"github.com/LavaJover/shvark-topup-service/internal/usecase"
	paymentusecase "github.com/LavaJover/shvark-topup-service/internal/usecase/payment"
	"github.com/shopspring/decimal"
)

type UseCases struct {
	PaymentUsecase paymentusecase.PaymentUsecase
	GatewayUsecase usecase.GatewayUsecase
	LedgerUsecase  usecase.LedgerUsecase
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	minAmount, err := decimal.NewFromString(deps.Config.Payment.MinAmount)
	if err != nil {
		return nil, fmt.Errorf("payment.min_amount: %w", err)
	}

	paymentUsecase, err := paymentusecase.NewDefaultPaymentUsecase(
		deps.Repositories.OrderRepo,
		deps.Repositories.UserRepo,
		deps.Repositories.GatewayRepo,
		deps.Repositories.LedgerRepo,
		deps.Provider,
		deps.Publisher,
		deps.CallbackLogger,
		deps.Metrics,
		paymentusecase.Options{
			MinAmount:     minAmount,
			CustomerPhone: deps.Config.RupantorPay.CustomerPhone,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("payment usecase: %w", err)
	}

	return &UseCases{
		PaymentUsecase: paymentUsecase,
		GatewayUsecase: usecase.NewDefaultGatewayUsecase(deps.Repositories.GatewayRepo),
		LedgerUsecase: usecase.NewDefaultLedgerUsecase(
			deps.Repositories.UserRepo,
			deps.Repositories.OrderRepo,
			deps.Repositories.LedgerRepo,
			deps.Publisher,
		),
	}, nil
}
