package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	paymentdto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/payment"
)

const (
	successPath = "/payment/success"
	failPath    = "/payment/fail"
	cancelPath  = "/payment/cancel"
)

// HandleCallback processes a provider redirect. Every path ends in a redirect for the payer.
func (uc *DefaultPaymentUsecase) HandleCallback(ctx context.Context, input *paymentdto.CallbackInput) *paymentdto.CallbackResult {
	var s settlement
	orderID := strings.TrimSpace(input.OrderID)
	status := strings.ToLower(strings.TrimSpace(input.Status))

	switch {
	case orderID == "":
		s = settlement{outcome: paymentdto.OutcomeError, detail: "notransactionid"}
	case status == "cancel":
		s = uc.closeWithoutVerify(ctx, orderID, domain.StatusCancelled)
	case status == "fail":
		s = uc.closeWithoutVerify(ctx, orderID, domain.StatusFailed)
	default:
		s = uc.verifyAndSettle(ctx, orderID)
	}

	result := &paymentdto.CallbackResult{
		Redirect: redirectFor(s),
		Outcome:  s.outcome,
		Detail:   s.detail,
	}

	uc.metrics.RecordCallback(s.outcome)
	slog.Info("payment callback handled",
		"order_id", orderID,
		"status", status,
		"provider_transaction_id", input.ProviderTransactionID,
		"outcome", s.outcome,
		"detail", s.detail,
	)
	if uc.callbackLogger != nil {
		entry := domain.CallbackLog{
			OrderID:         orderID,
			Status:          status,
			Outcome:         s.outcome,
			Detail:          s.detail,
			ProviderPayload: s.payload,
			ReceivedAt:      time.Now().UTC(),
		}
		if err := uc.callbackLogger.LogCallback(ctx, entry); err != nil {
			slog.Error("failed to store callback log", "order_id", orderID, "error", err)
		}
	}
	return result
}

func (uc *DefaultPaymentUsecase) closeWithoutVerify(ctx context.Context, orderID string, target domain.OrderStatus) settlement {
	outcome := paymentdto.OutcomeFailed
	if target == domain.StatusCancelled {
		outcome = paymentdto.OutcomeCancelled
	}

	order, err := uc.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return settlement{outcome: paymentdto.OutcomeError, detail: "ordernotfound"}
		}
		slog.Error("failed to load order", "order_id", orderID, "error", err)
		return settlement{outcome: paymentdto.OutcomeError, detail: "internal"}
	}

	err = uc.orderRepo.UpdateStatusIfPending(ctx, orderID, target, nil)
	switch {
	case errors.Is(err, domain.ErrOrderNotPending):
		return settlement{outcome: outcome, detail: "notpending"}
	case err != nil:
		slog.Error("failed to close order", "order_id", orderID, "status", target, "error", err)
		return settlement{outcome: paymentdto.OutcomeError, detail: "internal"}
	}

	if target == domain.StatusCancelled {
		uc.metrics.RecordCancelled()
		uc.publish(ctx, domain.EventOrderCancelled, order, target)
	} else {
		uc.metrics.RecordFailed("payer")
		uc.publish(ctx, domain.EventOrderFailed, order, target)
	}
	return settlement{outcome: outcome}
}

func (uc *DefaultPaymentUsecase) verifyAndSettle(ctx context.Context, orderID string) settlement {
	order, err := uc.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return settlement{outcome: paymentdto.OutcomeError, detail: "ordernotfound"}
		}
		slog.Error("failed to load order", "order_id", orderID, "error", err)
		return settlement{outcome: paymentdto.OutcomeError, detail: "internal"}
	}
	if order.Status != domain.StatusPending {
		return settlement{outcome: paymentdto.OutcomeAlreadyProcessed}
	}
	if order.GatewayID == "" {
		return settlement{outcome: paymentdto.OutcomeError, detail: "nogateway"}
	}
	return uc.settle(ctx, order, true)
}

func redirectFor(s settlement) string {
	switch s.outcome {
	case paymentdto.OutcomeCompleted:
		return successPath
	case paymentdto.OutcomeAlreadyProcessed:
		return successPath + "?status=alreadyprocessed"
	case paymentdto.OutcomeCancelled:
		return cancelPath
	case paymentdto.OutcomeVerificationFailed:
		return failPath + "?status=verificationfailed"
	case paymentdto.OutcomeFailed:
		if s.detail == "" || s.detail == "notpending" {
			return failPath + "?status=fail"
		}
		return failPath + "?error=" + s.detail
	default:
		if s.detail == "" {
			return failPath + "?error=internal"
		}
		return failPath + "?error=" + s.detail
	}
}
