package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"tokomart-be/internal/authz"
	"tokomart-be/internal/httpx"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the authenticated order routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.place)
	r.Get("/{orderId}", h.detail)
	r.Post("/{orderId}/cancel", h.cancel)
}

// RegisterPayment mounts the payment callback. It is mounted outside the JWT
// middleware: the caller is the payment gateway, not a logged-in user, and the
// order id plus amount check gate the transition.
func (h *Handler) RegisterPayment(r chi.Router) {
	r.Post("/{orderId}/pay", h.pay)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	page, limit := httpx.Pagination(r)
	orders, total, err := h.svc.GetAll(r.Context(), id.UserID, page, limit)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"meta":   httpx.NewMeta(total, page, limit),
	})
}

func (h *Handler) place(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var params PlaceOrderParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	o, err := h.svc.PlaceOrder(r.Context(), id.UserID, params)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"order": o})
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	d, err := h.svc.GetDetail(r.Context(), id.UserID, chi.URLParam(r, "orderId"))
	if err != nil {
		writeOrderError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	o, err := h.svc.CancelOrder(r.Context(), id.UserID, chi.URLParam(r, "orderId"))
	if err != nil {
		writeOrderError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"order": o})
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	var params PayOrderParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if params.PaymentMethod == "" || params.Amount <= 0 {
		httpx.Error(w, http.StatusBadRequest, "payment_method and amount are required")
		return
	}

	p, err := h.svc.PayOrder(r.Context(), chi.URLParam(r, "orderId"), params)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"payment": p})
}

func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrShippingProviderNotFound):
		httpx.Error(w, http.StatusNotFound, "Shipping provider not found")
	case errors.Is(err, ErrCartEmpty):
		httpx.Error(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, ErrAmountMismatch):
		httpx.Error(w, http.StatusBadRequest, "Payment amount does not match order total amount")
	case errors.Is(err, ErrOrderNotFound):
		httpx.Error(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, ErrOrderNotPayable):
		httpx.Error(w, http.StatusConflict, "Order is not in a payable state")
	case errors.Is(err, ErrOrderFinal):
		httpx.Error(w, http.StatusConflict, "Order already cancelled")
	case errors.Is(err, ErrUnauthorized):
		httpx.Error(w, http.StatusUnauthorized, "Not Authorized User")
	case errors.Is(err, ErrProductLookup):
		httpx.Error(w, http.StatusInternalServerError, "Failed to get products")
	default:
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
