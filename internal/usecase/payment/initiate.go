package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	paymentdto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/payment"
)

func (uc *DefaultPaymentUsecase) Initiate(ctx context.Context, input *paymentdto.InitiateInput) (*paymentdto.InitiateOutput, error) {
	if input == nil || strings.TrimSpace(input.UserID) == "" {
		return nil, fmt.Errorf("%w: user id is missing", domain.ErrInvalidInput)
	}
	if !input.Amount.IsPositive() || input.Amount.LessThan(uc.minAmount) {
		return nil, fmt.Errorf("%w: amount must be at least %s", domain.ErrInvalidInput, uc.minAmount.String())
	}
	if _, err := url.ParseRequestURI(input.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: base url: %v", domain.ErrInternal, err)
	}

	user, err := uc.userRepo.GetUserByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, fmt.Errorf("%w: user is banned", domain.ErrInvalidInput)
	}

	gateway, err := uc.gatewayRepo.GetActiveGateway(ctx)
	if err != nil {
		return nil, err
	}
	if gateway.StorePassword == "" {
		return nil, fmt.Errorf("%w: gateway %s has no secret", domain.ErrNoGatewayAvailable, gateway.Name)
	}

	customerName := customerNameFromEmail(user.Email)
	order := &domain.Order{
		ID:            uc.newID(),
		UserID:        user.ID,
		GatewayID:     gateway.ID,
		Amount:        input.Amount.Round(2),
		Status:        domain.StatusPending,
		Description:   fmt.Sprintf("Wallet Top-up of ৳%s", input.Amount.StringFixed(2)),
		CustomerName:  customerName,
		CustomerEmail: user.Email,
	}
	if err := uc.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	uc.metrics.RecordInitiated()
	uc.publish(ctx, domain.EventOrderCreated, order, domain.StatusPending)

	base := strings.TrimRight(input.BaseURL, "/")
	resp, err := uc.provider.Checkout(ctx,
		domain.ProviderCredentials{APIKey: gateway.StorePassword, Client: input.ClientHost},
		domain.CheckoutRequest{
			TransactionID: order.ID,
			Amount:        order.Amount,
			SuccessURL:    callbackURL(base, order.ID, "success"),
			FailURL:       callbackURL(base, order.ID, "fail"),
			CancelURL:     callbackURL(base, order.ID, "cancel"),
			CustomerName:  customerName,
			CustomerEmail: user.Email,
			CustomerPhone: uc.customerPhone,
		})
	if err != nil {
		slog.Error("payment initiation failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		if markErr := uc.orderRepo.UpdateStatusIfPending(ctx, order.ID, domain.StatusFailed, nil); markErr != nil {
			slog.Error("failed to mark order as failed", "order_id", order.ID, "error", markErr)
		} else {
			uc.metrics.RecordFailed("initiation")
			uc.publish(ctx, domain.EventOrderFailed, order, domain.StatusFailed)
		}
		if errors.Is(err, domain.ErrGateway) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}

	slog.Info("payment initiated", "order_id", order.ID, "user_id", order.UserID, "amount", order.Amount.String())
	return &paymentdto.InitiateOutput{
		OrderID:    order.ID,
		PaymentURL: resp.PaymentURL,
	}, nil
}

func callbackURL(base, orderID, status string) string {
	q := url.Values{}
	q.Set("transaction_id", orderID)
	q.Set("status", status)
	return base + "/api/payment/callback?" + q.Encode()
}

func customerNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
