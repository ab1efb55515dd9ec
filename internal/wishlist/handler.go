package wishlist

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
	r.Post("/", h.create)
	r.Put("/", h.edit)
	r.Post("/add", h.addProduct)
	r.Post("/remove", h.removeProduct)
	r.Get("/{wishlistId}", h.get)
	r.Delete("/{wishlistId}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	page, limit := httpx.Pagination(r)
	lists, total, err := h.svc.GetAll(r.Context(), id.UserID, page, limit)
	if err != nil {
		writeWishlistError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"wishlists": lists,
		"meta":      httpx.NewMeta(total, page, limit),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	list, details, err := h.svc.Get(r.Context(), id.UserID, chi.URLParam(r, "wishlistId"))
	if err != nil {
		writeWishlistError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"wishlist":        list,
		"wishlistDetails": details,
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var params CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	list, err := h.svc.Create(r.Context(), id.UserID, params)
	if err != nil {
		writeWishlistError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"wishlist": list})
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var params EditParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	list, err := h.svc.Edit(r.Context(), id.UserID, params)
	if err != nil {
		writeWishlistError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"wishlist": list})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	list, err := h.svc.Delete(r.Context(), id.UserID, chi.URLParam(r, "wishlistId"))
	if err != nil {
		writeWishlistError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"wishlist": list})
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var params ItemParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || params.WishlistID == "" || params.ProductID == "" {
		httpx.Error(w, http.StatusBadRequest, "wishlist_id and product_id are required")
		return
	}

	d, err := h.svc.AddProduct(r.Context(), id.UserID, params)
	if err != nil {
		writeWishlistError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"wishlistDetail": d})
}

func (h *Handler) removeProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var params ItemParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || params.WishlistID == "" || params.ProductID == "" {
		httpx.Error(w, http.StatusBadRequest, "wishlist_id and product_id are required")
		return
	}

	d, err := h.svc.RemoveProduct(r.Context(), id.UserID, params)
	if err != nil {
		writeWishlistError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"wishlistDetail": d})
}

func writeWishlistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNameRequired):
		httpx.Error(w, http.StatusBadRequest, "Wishlist name is required")
	case errors.Is(err, ErrWishlistNotFound):
		httpx.Error(w, http.StatusNotFound, "Wishlist not found")
	case errors.Is(err, ErrItemNotFound):
		httpx.Error(w, http.StatusNotFound, "Wishlist item not found")
	case errors.Is(err, authz.ErrNotOwner):
		httpx.Error(w, http.StatusUnauthorized, "Not Authorized User")
	default:
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
