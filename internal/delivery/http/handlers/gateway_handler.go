package handlers

import (
	"encoding/json"
	"net/http"

	gatewayRequest "github.com/LavaJover/shvark-topup-service/internal/delivery/http/dto/gateway/request"
	gatewayResponse "github.com/LavaJover/shvark-topup-service/internal/delivery/http/dto/gateway/response"
	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/LavaJover/shvark-topup-service/internal/usecase"
	gatewaydto "github.com/LavaJover/shvark-topup-service/internal/usecase/dto/gateway"
	"github.com/gorilla/mux"
)

type GatewayHandler struct {
	uc usecase.GatewayUsecase
}

func NewGatewayHandler(uc usecase.GatewayUsecase) *GatewayHandler {
	return &GatewayHandler{uc: uc}
}

func (h *GatewayHandler) List(w http.ResponseWriter, r *http.Request) {
	enabledOnly := r.URL.Query().Get("enabled") == "true"
	gateways, err := h.uc.ListGateways(r.Context(), enabledOnly)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := gatewayResponse.GatewaysResponse{Gateways: make([]gatewayResponse.GatewayResponse, 0, len(gateways))}
	for _, g := range gateways {
		resp.Gateways = append(resp.Gateways, toGatewayResponse(g))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *GatewayHandler) Active(w http.ResponseWriter, r *http.Request) {
	g, err := h.uc.GetActiveGateway(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGatewayResponse(g))
}

func (h *GatewayHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.uc.GetGatewayByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGatewayResponse(g))
}

func (h *GatewayHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req gatewayRequest.CreateGatewayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	g, err := h.uc.CreateGateway(r.Context(), &gatewaydto.CreateGatewayInput{
		Name:          req.Name,
		StorePassword: req.StorePassword,
		IsLive:        req.IsLive,
		Enabled:       req.Enabled,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGatewayResponse(g))
}

func (h *GatewayHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req gatewayRequest.UpdateGatewayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	g, err := h.uc.UpdateGateway(r.Context(), &gatewaydto.UpdateGatewayInput{
		ID:            mux.Vars(r)["id"],
		Name:          req.Name,
		StorePassword: req.StorePassword,
		IsLive:        req.IsLive,
		Enabled:       req.Enabled,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGatewayResponse(g))
}

func (h *GatewayHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteGateway(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GatewayHandler) Enable(w http.ResponseWriter, r *http.Request) {
	g, err := h.uc.EnableGateway(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGatewayResponse(g))
}

func toGatewayResponse(g *domain.Gateway) gatewayResponse.GatewayResponse {
	return gatewayResponse.GatewayResponse{
		ID:        g.ID,
		Name:      g.Name,
		IsLive:    g.IsLive,
		Enabled:   g.Enabled,
		HasSecret: g.StorePassword != "",
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
