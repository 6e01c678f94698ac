package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/crosslock/fusion-gateway/internal/swap"
	"github.com/crosslock/fusion-gateway/pkg/types"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// SwapService is the slice of the swap service the HTTP layer needs.
type SwapService interface {
	PrepareOrder(ctx context.Context, walletAddress string, params types.OrderParams) (*swap.PrepareResponse, error)
	SubmitSignedOrder(ctx context.Context, req *types.SignedOrderRequest) (*swap.SubmitResponse, error)
	OrderStatus(ctx context.Context, orderHash string) (*types.OrderStatus, error)
}

// SwapHandler exposes the prepare/submit/status operations over HTTP.
type SwapHandler struct {
	service SwapService
	logger  *zap.Logger
}

// NewSwapHandler creates a new swap handler.
func NewSwapHandler(service SwapService, logger *zap.Logger) *SwapHandler {
	return &SwapHandler{
		service: service,
		logger:  logger,
	}
}

type prepareRequest struct {
	WalletAddress string `json:"walletAddress"`
	types.OrderParams
}

// HandlePrepare serves POST /api/orders/prepare.
func (h *SwapHandler) HandlePrepare(w http.ResponseWriter, r *http.Request) {
	var req prepareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, types.WrapError(types.KindValidation, err, "decode request body"))
		return
	}

	resp, err := h.service.PrepareOrder(r.Context(), req.WalletAddress, req.OrderParams)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HandleSubmit serves POST /api/orders/submit.
func (h *SwapHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req types.SignedOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, types.WrapError(types.KindValidation, err, "decode request body"))
		return
	}

	resp, err := h.service.SubmitSignedOrder(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// HandleStatus serves GET /api/orders/{orderHash}/status.
func (h *SwapHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	orderHash := chi.URLParam(r, "orderHash")

	status, err := h.service.OrderStatus(r.Context(), orderHash)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, status)
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (h *SwapHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{
		Kind:    "INTERNAL",
		Message: "internal error",
	}

	var se *types.SwapError
	if errors.As(err, &se) {
		resp.Kind = string(se.Kind)
		resp.Message = se.Message
		status = statusForKind(se.Kind)
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request-failed", zap.Error(err))
	} else {
		h.logger.Debug("request-rejected",
			zap.String("kind", resp.Kind),
			zap.String("message", resp.Message))
	}

	h.writeJSON(w, status, resp)
}

func statusForKind(kind types.ErrorKind) int {
	switch kind {
	case types.KindValidation, types.KindUnresolvedToken:
		return http.StatusBadRequest
	case types.KindSignature:
		return http.StatusUnauthorized
	case types.KindWalletMismatch:
		return http.StatusForbidden
	case types.KindReplay:
		return http.StatusConflict
	case types.KindQuoteFetch, types.KindSubmission, types.KindStatusFetch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *SwapHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("write-response-failed", zap.Error(err))
	}
}
