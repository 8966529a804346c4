package handlers

import (
	"encoding/json"
	"net/http"

	walletRequest "github.com/LavaJover/shvark-topup-service/internal/delivery/http/dto/wallet/request"
	walletResponse "github.com/LavaJover/shvark-topup-service/internal/delivery/http/dto/wallet/response"
	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/LavaJover/shvark-topup-service/internal/usecase"
	ledgerdto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/ledger"
	"github.com/gorilla/mux"
)

type WalletHandler struct {
	uc usecase.LedgerUsecase
}

func NewWalletHandler(uc usecase.LedgerUsecase) *WalletHandler {
	return &WalletHandler{uc: uc}
}

func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.GetBalance(r.Context(), mux.Vars(r)["userID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, walletResponse.BalanceResponse{UserID: out.UserID, Balance: out.Balance})
}

func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.GetTransactions(r.Context(), listInput(r))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := walletResponse.TransactionsResponse{
		Transactions: make([]walletResponse.TransactionResponse, 0, len(out.Transactions)),
		Pagination:   walletResponse.Pagination(out.Pagination),
	}
	for _, tx := range out.Transactions {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req walletRequest.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	tx, err := h.uc.CreateTransaction(r.Context(), &ledgerdto.CreateTransactionInput{
		UserID:      mux.Vars(r)["userID"],
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (h *WalletHandler) Orders(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.GetOrders(r.Context(), listInput(r))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := walletResponse.OrdersResponse{
		Orders:     make([]walletResponse.OrderResponse, 0, len(out.Orders)),
		Pagination: walletResponse.Pagination(out.Pagination),
	}
	for _, o := range out.Orders {
		resp.Orders = append(resp.Orders, walletResponse.OrderResponse{
			ID:          o.ID,
			Amount:      o.Amount,
			Status:      string(o.Status),
			Description: o.Description,
			GatewayID:   o.GatewayID,
			CreatedAt:   o.CreatedAt,
			UpdatedAt:   o.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) ApproveTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.uc.ApproveTransaction(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (h *WalletHandler) RejectTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.uc.RejectTransaction(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func listInput(r *http.Request) *ledgerdto.ListInput {
	return &ledgerdto.ListInput{
		UserID: mux.Vars(r)["userID"],
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 20),
	}
}

func toTransactionResponse(tx *domain.Transaction) walletResponse.TransactionResponse {
	return walletResponse.TransactionResponse{
		ID:          tx.ID,
		OrderID:     tx.OrderID,
		Amount:      tx.Amount,
		Description: tx.Description,
		Status:      string(tx.Status),
		CreatedAt:   tx.CreatedAt,
	}
}
