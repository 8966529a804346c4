package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	paymentdto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/payment"
)

const outcomePending = "pending"

type settlement struct {
	outcome string
	detail  string
	payload []byte
}

// settle verifies a PENDING order with the provider and applies the result.
// With failUnverified unset, a verified-but-not-completed payment leaves the order PENDING.
func (uc *DefaultPaymentUsecase) settle(ctx context.Context, order *domain.Order, failUnverified bool) settlement {
	gateway, err := uc.gatewayRepo.GetGatewayByID(ctx, order.GatewayID)
	if err != nil {
		if errors.Is(err, domain.ErrGatewayNotFound) {
			return settlement{outcome: paymentdto.OutcomeError, detail: "gatewaynotfound"}
		}
		slog.Error("failed to load gateway", "order_id", order.ID, "gateway_id", order.GatewayID, "error", err)
		return settlement{outcome: paymentdto.OutcomeError, detail: "internal"}
	}

	result, err := uc.provider.Verify(ctx, gateway.StorePassword, order.ID)
	if err != nil {
		slog.Error("payment verification request failed", "order_id", order.ID, "error", err)
		return settlement{outcome: paymentdto.OutcomeError, detail: "gateway"}
	}

	if verr := confirmVerification(order, result); verr != nil {
		reason := verr.Error()
		if !failUnverified {
			return settlement{outcome: outcomePending, detail: reason, payload: result.Raw}
		}
		err := uc.orderRepo.UpdateStatusIfPending(ctx, order.ID, domain.StatusFailed, result.Raw)
		switch {
		case errors.Is(err, domain.ErrOrderNotPending):
			return settlement{outcome: paymentdto.OutcomeAlreadyProcessed, payload: result.Raw}
		case err != nil:
			slog.Error("failed to mark order as failed", "order_id", order.ID, "error", err)
			return settlement{outcome: paymentdto.OutcomeError, detail: "internal", payload: result.Raw}
		}
		uc.metrics.RecordFailed("verification")
		uc.publish(ctx, domain.EventOrderFailed, order, domain.StatusFailed)
		slog.Warn("payment verification failed", "order_id", order.ID, "provider_status", result.Status, "reason", reason)
		return settlement{outcome: paymentdto.OutcomeVerificationFailed, detail: reason, payload: result.Raw}
	}

	tx, err := uc.ledgerRepo.CommitTopUp(ctx, domain.TopUpCommit{
		OrderID:         order.ID,
		UserID:          order.UserID,
		Amount:          order.Amount,
		Description:     fmt.Sprintf("Wallet Top-up via %s", gateway.Name),
		ProviderPayload: result.Raw,
	})
	switch {
	case errors.Is(err, domain.ErrOrderNotPending):
		return settlement{outcome: paymentdto.OutcomeAlreadyProcessed, payload: result.Raw}
	case errors.Is(err, domain.ErrUserNotFound):
		slog.Error("verified payment for missing user", "order_id", order.ID, "user_id", order.UserID)
		if markErr := uc.orderRepo.UpdateStatusIfPending(ctx, order.ID, domain.StatusFailed, result.Raw); markErr != nil {
			slog.Error("failed to mark order as failed", "order_id", order.ID, "error", markErr)
		} else {
			uc.metrics.RecordFailed("user_not_found")
		}
		return settlement{outcome: paymentdto.OutcomeFailed, detail: "usernotfound", payload: result.Raw}
	case err != nil:
		slog.Error("failed to commit top-up", "order_id", order.ID, "error", err)
		return settlement{outcome: paymentdto.OutcomeError, detail: "internal", payload: result.Raw}
	}

	uc.metrics.RecordCompleted(order.Amount)
	uc.publish(ctx, domain.EventOrderCompleted, order, domain.StatusCompleted)
	uc.publish(ctx, domain.EventBalanceChanged, order, domain.StatusCompleted)
	slog.Info("top-up committed", "order_id", order.ID, "user_id", order.UserID, "transaction_id", tx.ID, "amount", order.Amount.String())
	return settlement{outcome: paymentdto.OutcomeCompleted, payload: result.Raw}
}

// confirmVerification returns an ErrVerificationFailed error when the provider result does not confirm this order.
func confirmVerification(order *domain.Order, result *domain.VerifyResult) error {
	if !result.Completed() {
		return fmt.Errorf("%w: status %s", domain.ErrVerificationFailed, result.Status)
	}
	if result.TransactionID != "" && result.TransactionID != order.ID {
		return fmt.Errorf("%w: transaction id %s", domain.ErrVerificationFailed, result.TransactionID)
	}
	if result.Amount.Valid && !result.Amount.Decimal.Equal(order.Amount) {
		return fmt.Errorf("%w: amount %s, expected %s", domain.ErrVerificationFailed, result.Amount.Decimal, order.Amount)
	}
	return nil
}
