package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	paymentdto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/payment"
)

// ReconcilePending re-verifies stale PENDING orders and expires the ones past ExpireBefore.
func (uc *DefaultPaymentUsecase) ReconcilePending(ctx context.Context, input *paymentdto.ReconcileInput) (*paymentdto.ReconcileOutput, error) {
	orders, err := uc.orderRepo.FindStalePendingOrders(ctx, input.OlderThan, input.Limit)
	if err != nil {
		return nil, err
	}

	out := &paymentdto.ReconcileOutput{}
	for _, order := range orders {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		out.Checked++

		s := uc.settle(ctx, order, false)
		switch s.outcome {
		case paymentdto.OutcomeCompleted:
			out.Completed++
			uc.metrics.RecordReconciled("completed")
			continue
		case paymentdto.OutcomeVerificationFailed, paymentdto.OutcomeFailed:
			out.Failed++
			uc.metrics.RecordReconciled("failed")
			continue
		case paymentdto.OutcomeAlreadyProcessed:
			continue
		}

		if input.ExpireBefore.IsZero() || !order.CreatedAt.Before(input.ExpireBefore) {
			out.Pending++
			continue
		}
		err := uc.orderRepo.UpdateStatusIfPending(ctx, order.ID, domain.StatusFailed, s.payload)
		if err != nil {
			if !errors.Is(err, domain.ErrOrderNotPending) {
				slog.Error("failed to expire order", "order_id", order.ID, "error", err)
			}
			continue
		}
		out.Expired++
		uc.metrics.RecordFailed("expired")
		uc.metrics.RecordReconciled("expired")
		uc.publish(ctx, domain.EventOrderFailed, order, domain.StatusFailed)
		slog.Info("expired stale order", "order_id", order.ID, "created_at", order.CreatedAt, "detail", s.detail)
	}
	return out, nil
}
