package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/config"
	"github.com/LavaJover/shvark-topup-service/internal/domain"
	paymentdto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/payment"
	"github.com/LavaJover/shvark-topup-service/internal/usecase/notify"
	paymentusecase "github.com/LavaJover/shvark-topup-service/internal/usecase/payment"
)

type BackgroundTasks struct {
	PaymentUsecase paymentusecase.PaymentUsecase
	Subscriber     domain.EventSubscriber
	Hub            *notify.Hub
	Reconcile      config.Reconcile
}

func NewBackgroundTasks(paymentUC paymentusecase.PaymentUsecase, subscriber domain.EventSubscriber, hub *notify.Hub, reconcile config.Reconcile) *BackgroundTasks {
	return &BackgroundTasks{
		PaymentUsecase: paymentUC,
		Subscriber:     subscriber,
		Hub:            hub,
		Reconcile:      reconcile,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startReconcilePending(ctx)
	if bt.Subscriber != nil {
		go bt.startEventFanout(ctx)
	}
}

func (bt *BackgroundTasks) startReconcilePending(ctx context.Context) {
	interval := bt.Reconcile.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.ReconcileOnce(ctx)
		}
	}
}

func (bt *BackgroundTasks) ReconcileOnce(ctx context.Context) {
	now := time.Now()
	out, err := bt.PaymentUsecase.ReconcilePending(ctx, &paymentdto.ReconcileInput{
		OlderThan:    now.Add(-bt.Reconcile.MinAge),
		ExpireBefore: now.Add(-bt.Reconcile.MaxAge),
		Limit:        bt.Reconcile.Batch,
	})
	if err != nil {
		slog.Error("reconcile pending orders failed", "error", err)
		return
	}
	if out.Checked > 0 {
		slog.Info("reconciled pending orders",
			"checked", out.Checked,
			"completed", out.Completed,
			"failed", out.Failed,
			"expired", out.Expired,
			"pending", out.Pending,
		)
	}
}

// startEventFanout feeds events from the broker into the hub, resubscribing after reader failures.
func (bt *BackgroundTasks) startEventFanout(ctx context.Context) {
	for {
		events, err := bt.Subscriber.Subscribe(ctx)
		if err != nil {
			slog.Error("failed to subscribe to events", "error", err)
		} else {
			bt.Hub.Run(ctx, events)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}
