package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	paymentRequest "github.com/LavaJover/shvark-topup-service/internal/delivery/http/dto/payment/request"
	paymentResponse "github.com/LavaJover/shvark-topup-service/internal/delivery/http/dto/payment/response"
	"github.com/LavaJover/shvark-topup-service/internal/domain"
	paymentdto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/payment"
	usecase "github.com/LavaJover/shvark-topup-service/internal/usecase/payment"
)

type PaymentHandler struct {
	uc            usecase.PaymentUsecase
	publicBaseURL string
}

// NewPaymentHandler uses publicBaseURL for provider redirects. An empty value
// derives it from the request host, which config only allows in the local env.
func NewPaymentHandler(uc usecase.PaymentUsecase, publicBaseURL string) *PaymentHandler {
	return &PaymentHandler{
		uc:            uc,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest.InitiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	base := h.baseURL(r)
	out, err := h.uc.Initiate(r.Context(), &paymentdto.InitiateInput{
		UserID:     req.UserID,
		Amount:     req.Amount,
		BaseURL:    base,
		ClientHost: hostOf(base),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, paymentResponse.InitiateResponse{
		PaymentURL: out.PaymentURL,
		OrderID:    out.OrderID,
	})
}

// Callback accepts the provider redirect as query string or form body and always answers with a redirect.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		// The query string is still parsed; a broken body only loses form fields.
		slog.Warn("malformed callback body", "error", err, "query", r.URL.RawQuery)
	}

	res := h.uc.HandleCallback(r.Context(), &paymentdto.CallbackInput{
		OrderID:               r.Form.Get("transaction_id"),
		Status:                r.Form.Get("status"),
		ProviderTransactionID: r.Form.Get("payment_id"),
	})
	http.Redirect(w, r, h.baseURL(r)+res.Redirect, http.StatusFound)
}

func (h *PaymentHandler) baseURL(r *http.Request) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + r.Host
}

func hostOf(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return u.Host
}
