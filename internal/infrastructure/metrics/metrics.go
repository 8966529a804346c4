package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// PaymentMetrics holds the top-up collectors.
type PaymentMetrics struct {
	OrdersInitiatedTotal    prometheus.Counter
	OrdersCompletedTotal    prometheus.Counter
	OrdersFailedTotal       *prometheus.CounterVec
	OrdersCancelledTotal    prometheus.Counter
	CreditedAmountTotal     prometheus.Counter
	CallbackOutcomesTotal   *prometheus.CounterVec
	ProviderRequestDuration *prometheus.HistogramVec
	ReconciledOrdersTotal   *prometheus.CounterVec
}

// NewPaymentMetrics registers the collectors on reg. A nil reg falls back to the default registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PaymentMetrics{
		OrdersInitiatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "topup_orders_initiated_total",
			Help: "Top-up orders created in PENDING state",
		}),
		OrdersCompletedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "topup_orders_completed_total",
			Help: "Top-up orders committed as COMPLETED",
		}),
		OrdersFailedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "topup_orders_failed_total",
			Help: "Top-up orders moved to FAILED",
		}, []string{"reason"}),
		OrdersCancelledTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "topup_orders_cancelled_total",
			Help: "Top-up orders cancelled by the payer",
		}),
		CreditedAmountTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "topup_credited_amount_total",
			Help: "Sum of amounts credited to user balances",
		}),
		CallbackOutcomesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "topup_callback_outcomes_total",
			Help: "Provider callbacks by outcome",
		}, []string{"outcome"}),
		ProviderRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "topup_provider_request_duration_seconds",
			Help:    "Duration of payment provider requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"operation", "result"}),
		ReconciledOrdersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "topup_reconciled_orders_total",
			Help: "Stale pending orders handled by reconciliation",
		}, []string{"outcome"}),
	}
}

func (m *PaymentMetrics) RecordInitiated() {
	if m == nil {
		return
	}
	m.OrdersInitiatedTotal.Inc()
}

func (m *PaymentMetrics) RecordCompleted(amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.OrdersCompletedTotal.Inc()
	m.CreditedAmountTotal.Add(amount.InexactFloat64())
}

func (m *PaymentMetrics) RecordFailed(reason string) {
	if m == nil {
		return
	}
	m.OrdersFailedTotal.WithLabelValues(reason).Inc()
}

func (m *PaymentMetrics) RecordCancelled() {
	if m == nil {
		return
	}
	m.OrdersCancelledTotal.Inc()
}

func (m *PaymentMetrics) RecordCallback(outcome string) {
	if m == nil {
		return
	}
	m.CallbackOutcomesTotal.WithLabelValues(outcome).Inc()
}

func (m *PaymentMetrics) RecordReconciled(outcome string) {
	if m == nil {
		return
	}
	m.ReconciledOrdersTotal.WithLabelValues(outcome).Inc()
}

func (m *PaymentMetrics) ObserveProviderRequest(operation string, err error, started time.Time) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ProviderRequestDuration.WithLabelValues(operation, result).Observe(time.Since(started).Seconds())
}
