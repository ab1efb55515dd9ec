package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

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
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/login/admin", h.adminLogin)
	r.Post("/verify-token", h.verifyToken)
	r.Post("/verify-admin-token", h.verifyAdminToken)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var params RegisterParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if params.Username == "" || params.Password == "" || params.Email == "" {
		httpx.Error(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	u, err := h.svc.Register(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrUsernameExists) {
			httpx.Error(w, http.StatusConflict, err.Error())
			return
		}
		httpx.Error(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var params LoginParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.svc.Login(r.Context(), params.Username, params.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var params LoginParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, u, err := h.svc.AdminLogin(r.Context(), params.Username, params.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"userId":   u.ID,
		"username": u.Username,
	})
}

func (h *Handler) verifyToken(w http.ResponseWriter, r *http.Request) {
	h.verify(w, r, h.svc.VerifyToken)
}

func (h *Handler) verifyAdminToken(w http.ResponseWriter, r *http.Request) {
	h.verify(w, r, h.svc.VerifyAdminToken)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, token string) (*User, error)) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		httpx.Error(w, http.StatusBadRequest, "token is required")
		return
	}

	u, err := fn(r.Context(), body.Token)
	if err != nil {
		httpx.Error(w, http.StatusUnauthorized, ErrInvalidToken.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusOK, u)
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		httpx.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrNotAdmin):
		httpx.Error(w, http.StatusUnauthorized, err.Error())
	default:
		httpx.Error(w, http.StatusInternalServerError, "login failed")
	}
}
