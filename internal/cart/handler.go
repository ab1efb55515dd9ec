package cart

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

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.add)
	r.Put("/", h.edit)
	r.Delete("/{cartId}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	page, limit := httpx.Pagination(r)
	items, total, err := h.svc.GetAll(r.Context(), id.UserID, page, limit)
	if err != nil {
		writeCartError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"cartItems": items,
		"meta":      httpx.NewMeta(total, page, limit),
	})
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var params AddItemParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if params.ProductID == "" {
		httpx.Error(w, http.StatusBadRequest, "product_id is required")
		return
	}

	item, err := h.svc.AddItem(r.Context(), id.UserID, params)
	if err != nil {
		writeCartError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var params EditItemParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if params.CartID == "" {
		httpx.Error(w, http.StatusBadRequest, "cart_id is required")
		return
	}

	item, err := h.svc.EditItem(r.Context(), id.UserID, params)
	if err != nil {
		writeCartError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	item, err := h.svc.DeleteItem(r.Context(), id.UserID, chi.URLParam(r, "cartId"))
	if err != nil {
		writeCartError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrCartItemNotFound):
		httpx.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidQuantity):
		httpx.Error(w, http.StatusBadRequest, err.Error())
	default:
		httpx.Error(w, http.StatusInternalServerError, "cart operation failed")
	}
}
