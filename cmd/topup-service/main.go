package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/app/background"
	"github.com/LavaJover/shvark-topup-service/internal/app/setup"
	"github.com/LavaJover/shvark-topup-service/internal/config"
	"github.com/LavaJover/shvark-topup-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-topup-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres"
	"github.com/joho/godotenv"
	"google.golang.org/grpc"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	slog.SetDefault(logger.NewSlogLogger(cfg.LogConfig, nil))

	// Init database
	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.TopUpDB.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v\n", err)
	}

	deps, err := setup.InitializeDependencies(cfg, db)
	if err != nil {
		log.Fatalf("failed to init dependencies: %v\n", err)
	}
	defer deps.Close()

	ucs, err := setup.InitializeUseCases(deps)
	if err != nil {
		log.Fatalf("failed to init usecases: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	background.NewBackgroundTasks(ucs.PaymentUsecase, deps.Subscriber, deps.Hub, cfg.Reconcile).StartAll(ctx)

	// gRPC health
	grpcServer := grpc.NewServer()
	healthChecker := grpcapi.NewHealthChecker(deps.Ping, 10*time.Second)
	healthChecker.Register(grpcServer)
	go healthChecker.Run(ctx)

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	go func() {
		slog.Info("gRPC server started", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("gRPC server stopped", "error", err)
		}
	}()

	// HTTP
	router := handlers.NewRouter(handlers.RouterDeps{
		Payment:  handlers.NewPaymentHandler(ucs.PaymentUsecase, cfg.Payment.PublicBaseURL),
		Wallet:   handlers.NewWalletHandler(ucs.LedgerUsecase),
		Gateways: handlers.NewGatewayHandler(ucs.GatewayUsecase),
		Events:   handlers.NewEventsHandler(deps.Hub, 25*time.Second),
		Gatherer: deps.Registry,
		Ping:     deps.Ping,
	})
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:           router,
		ReadTimeout:       cfg.HTTPServer.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
	}
	go func() {
		slog.Info("HTTP server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to serve http: %v\n", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown", "error", err)
	}
	grpcServer.GracefulStop()
}
