package tenant

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

// Register mounts the lookup route. It stays outside the JWT middleware so
// sibling services can resolve tenant ownership with whatever token the
// original caller presented.
func (h *Handler) Register(r chi.Router) {
	r.Get("/{tenantId}", h.get)
}

func (h *Handler) RegisterAuthed(r chi.Router) {
	r.Post("/", h.create)
	r.Put("/{tenantId}", h.edit)
	r.Delete("/{tenantId}", h.delete)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Get(r.Context(), chi.URLParam(r, "tenantId"))
	if err != nil {
		writeTenantError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"tenants": t})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	requester, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var params CreateTenantParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if params.Name == "" {
		httpx.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	t, err := h.svc.Create(r.Context(), requester, params)
	if err != nil {
		writeTenantError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	requester, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var params EditTenantParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.Edit(r.Context(), requester, chi.URLParam(r, "tenantId"), params)
	if err != nil {
		writeTenantError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	requester, ok := authz.IdentityFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	if err := h.svc.Delete(r.Context(), requester, chi.URLParam(r, "tenantId")); err != nil {
		writeTenantError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "tenant deleted"})
}

func writeTenantError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		httpx.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotTenantOwner):
		httpx.Error(w, http.StatusUnauthorized, err.Error())
	default:
		httpx.Error(w, http.StatusInternalServerError, "tenant operation failed")
	}
}
