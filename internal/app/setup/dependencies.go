package setup

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-topup-service/internal/config"
	"github.com/LavaJover/shvark-topup-service/internal/domain"
	publisher "github.com/LavaJover/shvark-topup-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/rupantorpay"
	"github.com/LavaJover/shvark-topup-service/internal/usecase/notify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config         *config.TopUpConfig
	DB             *gorm.DB
	Registry       *prometheus.Registry
	Metrics        *metrics.PaymentMetrics
	Hub            *notify.Hub
	Publisher      domain.EventPublisher
	Subscriber     domain.EventSubscriber
	Provider       domain.PaymentProvider
	CallbackLogger domain.CallbackLogger
	Repositories   *Repositories

	closers []func() error
}

type Repositories struct {
	OrderRepo   domain.OrderRepository
	UserRepo    domain.UserRepository
	GatewayRepo domain.GatewayRepository
	LedgerRepo  domain.LedgerRepository
}

// InitializeDependencies wires storage, provider, metrics and the change-event transport.
// With Kafka disabled the in-process hub doubles as the publisher.
func InitializeDependencies(cfg *config.TopUpConfig, db *gorm.DB) (*Dependencies, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewPaymentMetrics(reg)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql db: %w", err)
	}
	reg.MustRegister(collectors.NewDBStatsCollector(sqlDB, "topup"))

	deps := &Dependencies{
		Config:         cfg,
		DB:             db,
		Registry:       reg,
		Metrics:        m,
		Hub:            notify.NewHub(),
		Provider:       rupantorpay.NewClient(cfg.RupantorPay.CheckoutURL, cfg.RupantorPay.VerifyURL, cfg.RupantorPay.Timeout, m),
		CallbackLogger: logger.NewPGCallbackLogger(db),
		Repositories: &Repositories{
			OrderRepo:   repository.NewDefaultOrderRepository(db),
			UserRepo:    repository.NewDefaultUserRepository(db),
			GatewayRepo: repository.NewDefaultGatewayRepository(db),
			LedgerRepo:  repository.NewDefaultLedgerRepository(db),
		},
	}

	if cfg.KafkaService.Enabled {
		if len(cfg.KafkaService.Brokers) == 0 {
			return nil, fmt.Errorf("kafka enabled without brokers")
		}
		pub := publisher.NewKafkaEventPublisher(cfg.KafkaService.Brokers, cfg.KafkaService.Topic)
		deps.Publisher = pub
		deps.Subscriber = publisher.NewKafkaEventSubscriber(cfg.KafkaService.Brokers, cfg.KafkaService.Topic, cfg.KafkaService.GroupID)
		deps.closers = append(deps.closers, pub.Close)
	} else {
		deps.Publisher = deps.Hub
	}

	return deps, nil
}

func (d *Dependencies) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Dependencies) Close() error {
	var firstErr error
	for _, c := range d.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
