package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/models"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-topup-service/internal/infrastructure/rupantorpay"
	"github.com/LavaJover/shvark-topup-service/internal/usecase"
	"github.com/LavaJover/shvark-topup-service/internal/usecase/notify"
	paymentusecase "github.com/LavaJover/shvark-topup-service/internal/usecase/payment"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeRupantor struct {
	verifyStatus atomic.Value
	verifyCalls  atomic.Int32
}

func (f *fakeRupantor) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/checkout":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":      1,
				"payment_url": "https://pay.example/" + body["transaction_id"].(string),
			})
		case "/verify":
			f.verifyCalls.Add(1)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":         f.verifyStatus.Load().(string),
				"transaction_id": body["transaction_id"],
				"amount":         "500",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

type flowEnv struct {
	db       *gorm.DB
	server   *httptest.Server
	client   *http.Client
	hub      *notify.Hub
	provider *fakeRupantor
}

func newFlowEnv(t *testing.T) *flowEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "flow.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	fake := &fakeRupantor{}
	fake.verifyStatus.Store("COMPLETED")
	providerSrv := httptest.NewServer(fake.handler(t))
	t.Cleanup(providerSrv.Close)

	reg := prometheus.NewRegistry()
	m := metrics.NewPaymentMetrics(reg)
	hub := notify.NewHub()

	orderRepo := repository.NewDefaultOrderRepository(db)
	userRepo := repository.NewDefaultUserRepository(db)
	gatewayRepo := repository.NewDefaultGatewayRepository(db)
	ledgerRepo := repository.NewDefaultLedgerRepository(db)

	paymentUc, err := paymentusecase.NewDefaultPaymentUsecase(
		orderRepo, userRepo, gatewayRepo, ledgerRepo,
		rupantorpay.NewClient(providerSrv.URL+"/checkout", providerSrv.URL+"/verify", 2*time.Second, m),
		hub,
		logger.NewPGCallbackLogger(db),
		m,
		paymentusecase.Options{MinAmount: decimal.NewFromInt(10), CustomerPhone: "01000000000"},
	)
	require.NoError(t, err)

	router := NewRouter(RouterDeps{
		Payment:  NewPaymentHandler(paymentUc, ""),
		Wallet:   NewWalletHandler(usecase.NewDefaultLedgerUsecase(userRepo, orderRepo, ledgerRepo, hub)),
		Gateways: NewGatewayHandler(usecase.NewDefaultGatewayUsecase(gatewayRepo)),
		Events:   NewEventsHandler(hub, time.Second),
		Gatherer: reg,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	require.NoError(t, db.Create(&models.UserModel{ID: "user-1", Email: "alice@example.com", Balance: decimal.Zero}).Error)

	return &flowEnv{
		db:     db,
		server: srv,
		client: &http.Client{
			Timeout: 5 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		hub:      hub,
		provider: fake,
	}
}

func (e *flowEnv) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := e.client.Post(e.server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *flowEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := e.client.Get(e.server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *flowEnv) put(t *testing.T, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, e.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *flowEnv) initiate(t *testing.T, amount string) string {
	t.Helper()
	resp := e.post(t, "/api/payment/initiate", `{"userId":"user-1","amount":`+amount+`}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		PaymentURL string `json:"payment_url"`
		OrderID    string `json:"order_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "https://pay.example/"+out.OrderID, out.PaymentURL)
	return out.OrderID
}

func (e *flowEnv) balance(t *testing.T) string {
	t.Helper()
	resp := e.get(t, "/api/users/user-1/balance")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Balance decimal.Decimal `json:"balance"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Balance.String()
}

func (e *flowEnv) countTransactions(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.TransactionModel{}).Where("user_id = ?", "user-1").Count(&n).Error)
	return n
}

func (e *flowEnv) orderStatus(t *testing.T, id string) string {
	t.Helper()
	var o models.OrderModel
	require.NoError(t, e.db.First(&o, "id = ?", id).Error)
	return string(o.Status)
}

func TestFlow_TopUpFiveHundred(t *testing.T) {
	env := newFlowEnv(t)

	resp := env.post(t, "/api/payment/initiate", `{"userId":"user-1","amount":500}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = env.post(t, "/api/admin/gateways", `{"name":"RupantorPay","storePassword":"secret","enabled":true}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.post(t, "/api/payment/initiate", `{"userId":"user-1","amount":5}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var orders int64
	require.NoError(t, env.db.Model(&models.OrderModel{}).Count(&orders).Error)
	require.Zero(t, orders)

	orderID := env.initiate(t, "500")
	require.Equal(t, "PENDING", env.orderStatus(t, orderID))

	resp = env.get(t, "/api/payment/callback?transaction_id="+orderID+"&status=success")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, env.server.URL+"/payment/success", resp.Header.Get("Location"))
	require.Equal(t, "COMPLETED", env.orderStatus(t, orderID))
	require.Equal(t, "500", env.balance(t))
	require.EqualValues(t, 1, env.countTransactions(t))

	resp = env.get(t, "/api/payment/callback?transaction_id="+orderID+"&status=success")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, env.server.URL+"/payment/success?status=alreadyprocessed", resp.Header.Get("Location"))
	require.Equal(t, "500", env.balance(t))
	require.EqualValues(t, 1, env.countTransactions(t))
	require.EqualValues(t, 1, env.provider.verifyCalls.Load())

	var logs int64
	require.NoError(t, env.db.Model(&models.CallbackLogModel{}).Where("order_id = ?", orderID).Count(&logs).Error)
	require.EqualValues(t, 2, logs)
}

func TestFlow_CancelAndVerificationFailure(t *testing.T) {
	env := newFlowEnv(t)
	env.post(t, "/api/admin/gateways", `{"name":"RupantorPay","storePassword":"secret","enabled":true}`)

	cancelled := env.initiate(t, "500")
	resp := env.get(t, "/api/payment/callback?transaction_id="+cancelled+"&status=cancel")
	require.Equal(t, env.server.URL+"/payment/cancel", resp.Header.Get("Location"))
	require.Equal(t, "CANCELLED", env.orderStatus(t, cancelled))

	resp = env.get(t, "/api/payment/callback?transaction_id="+cancelled+"&status=success")
	require.Equal(t, env.server.URL+"/payment/success?status=alreadyprocessed", resp.Header.Get("Location"))
	require.Equal(t, "CANCELLED", env.orderStatus(t, cancelled))

	env.provider.verifyStatus.Store("FAILED")
	failed := env.initiate(t, "500")
	resp = env.get(t, "/api/payment/callback?transaction_id="+failed+"&status=success")
	require.Equal(t, env.server.URL+"/payment/fail?status=verificationfailed", resp.Header.Get("Location"))
	require.Equal(t, "FAILED", env.orderStatus(t, failed))

	resp = env.get(t, "/api/payment/callback?transaction_id=TRN-unknown&status=success")
	require.Equal(t, env.server.URL+"/payment/fail?error=ordernotfound", resp.Header.Get("Location"))
	resp = env.get(t, "/api/payment/callback?transaction_id=TRN-unknown&status=cancel")
	require.Equal(t, env.server.URL+"/payment/fail?error=ordernotfound", resp.Header.Get("Location"))

	require.Equal(t, "0", env.balance(t))
	require.Zero(t, env.countTransactions(t))
}

func TestFlow_EventsStream(t *testing.T) {
	env := newFlowEnv(t)
	env.post(t, "/api/admin/gateways", `{"name":"RupantorPay","storePassword":"secret","enabled":true}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, env.server.URL+"/api/users/user-1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return env.hub.Subscribers("user-1") == 1 }, 2*time.Second, 10*time.Millisecond)

	orderID := env.initiate(t, "500")
	env.get(t, "/api/payment/callback?transaction_id="+orderID+"&status=success")

	want := []string{"event: order.created", "event: order.completed", "event: balance.changed"}
	scanner := bufio.NewScanner(resp.Body)
	var got []string
	for len(got) < len(want) && scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "event: ") {
			got = append(got, scanner.Text())
		}
	}
	require.Equal(t, want, got)
}

func TestFlow_RenameActiveGatewayKeepsItEnabled(t *testing.T) {
	env := newFlowEnv(t)

	resp := env.post(t, "/api/admin/gateways", `{"name":"RupantorPay","storePassword":"secret","enabled":true}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[struct {
		ID string `json:"id"`
	}](t, resp)

	resp = env.put(t, "/api/admin/gateways/"+created.ID, `{"name":"RupantorPay Live"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	renamed := decodeBody[struct {
		Name      string `json:"name"`
		Enabled   bool   `json:"enabled"`
		HasSecret bool   `json:"hasSecret"`
	}](t, resp)
	require.Equal(t, "RupantorPay Live", renamed.Name)
	require.True(t, renamed.Enabled)
	require.True(t, renamed.HasSecret)

	orderID := env.initiate(t, "500")
	require.Equal(t, "PENDING", env.orderStatus(t, orderID))

	resp = env.put(t, "/api/admin/gateways/"+created.ID, `{"enabled":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.post(t, "/api/payment/initiate", `{"userId":"user-1","amount":500}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestFlow_PendingTransactionApproval(t *testing.T) {
	env := newFlowEnv(t)

	resp := env.post(t, "/api/users/user-1/transactions", `{"amount":250,"description":"bank deposit"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	deposit := decodeBody[struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}](t, resp)
	require.Equal(t, "Pending", deposit.Status)
	require.Equal(t, "0", env.balance(t))

	resp = env.post(t, "/api/admin/transactions/"+deposit.ID+"/approve", ``)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "250", env.balance(t))

	resp = env.post(t, "/api/admin/transactions/"+deposit.ID+"/approve", ``)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "250", env.balance(t))

	resp = env.post(t, "/api/users/user-1/transactions", `{"amount":-100}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	withdrawal := decodeBody[struct {
		ID string `json:"id"`
	}](t, resp)
	resp = env.post(t, "/api/admin/transactions/"+withdrawal.ID+"/reject", ``)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "250", env.balance(t))

	resp = env.post(t, "/api/users/user-1/transactions", `{"amount":0}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = env.post(t, "/api/users/ghost/transactions", `{"amount":10}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.EqualValues(t, 2, env.countTransactions(t))
}
