package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	walletResponse "github.com/LavaJover/shvark-topup-service/internal/delivery/http/dto/wallet/response"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, walletResponse.ErrorResponse{Message: message})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrGatewayNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrOrderNotPending):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrNoGatewayAvailable):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrGateway):
		var gwErr *domain.GatewayError
		if errors.As(err, &gwErr) && gwErr.Message != "" {
			return http.StatusBadGateway, gwErr.Message
		}
		return http.StatusBadGateway, "Payment initiation failed"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
