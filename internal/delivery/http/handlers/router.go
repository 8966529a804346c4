package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Payment  *PaymentHandler
	Wallet   *WalletHandler
	Gateways *GatewayHandler
	Events   *EventsHandler
	Gatherer prometheus.Gatherer
	// Ping reports storage health for /healthz.
	Ping func(ctx context.Context) error
}

func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if deps.Ping != nil {
			if err := deps.Ping(req.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/payment/initiate", deps.Payment.Initiate).Methods(http.MethodPost)
	api.HandleFunc("/payment/callback", deps.Payment.Callback).Methods(http.MethodGet, http.MethodPost)

	users := api.PathPrefix("/users/{userID}").Subrouter()
	users.HandleFunc("/balance", deps.Wallet.Balance).Methods(http.MethodGet)
	users.HandleFunc("/transactions", deps.Wallet.Transactions).Methods(http.MethodGet)
	users.HandleFunc("/transactions", deps.Wallet.CreateTransaction).Methods(http.MethodPost)
	users.HandleFunc("/orders", deps.Wallet.Orders).Methods(http.MethodGet)
	if deps.Events != nil {
		users.HandleFunc("/events", deps.Events.Stream).Methods(http.MethodGet)
	}

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/gateways", deps.Gateways.List).Methods(http.MethodGet)
	admin.HandleFunc("/gateways", deps.Gateways.Create).Methods(http.MethodPost)
	admin.HandleFunc("/gateways/active", deps.Gateways.Active).Methods(http.MethodGet)
	admin.HandleFunc("/gateways/{id}", deps.Gateways.Get).Methods(http.MethodGet)
	admin.HandleFunc("/gateways/{id}", deps.Gateways.Update).Methods(http.MethodPut)
	admin.HandleFunc("/gateways/{id}", deps.Gateways.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/gateways/{id}/enable", deps.Gateways.Enable).Methods(http.MethodPost)
	admin.HandleFunc("/transactions/{id}/approve", deps.Wallet.ApproveTransaction).Methods(http.MethodPost)
	admin.HandleFunc("/transactions/{id}/reject", deps.Wallet.RejectTransaction).Methods(http.MethodPost)

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
