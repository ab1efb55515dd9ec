package product

import (
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

// Register mounts the public read routes plus the bulk lookup used by the
// orders service. Admin write routes are mounted separately so the server can
// wrap them in admin middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/many", h.getMany)
	r.Get("/category/{categoryId}", h.byCategory)
	r.Get("/{productId}", h.get)
}

func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/", h.create)
	r.Put("/{productId}", h.edit)
	r.Delete("/{productId}", h.delete)
}

func (h *Handler) RegisterCategories(r chi.Router) {
	r.Get("/", h.listCategories)
}

func (h *Handler) RegisterAdminCategories(r chi.Router) {
	r.Post("/", h.createCategory)
	r.Put("/{categoryId}", h.editCategory)
	r.Delete("/{categoryId}", h.deleteCategory)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, limit := httpx.Pagination(r)

	products, total, err := h.svc.GetAll(r.Context(), page, limit)
	if err != nil {
		writeProductError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"meta":     httpx.NewMeta(total, page, limit),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		writeProductError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) getMany(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductIDs []string `json:"productIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.ProductIDs) == 0 {
		httpx.Error(w, http.StatusBadRequest, "productIds is required")
		return
	}

	products, err := h.svc.GetManyByIDs(r.Context(), body.ProductIDs)
	if err != nil {
		writeProductError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) byCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.GetByCategory(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		writeProductError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var params CreateProductParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if params.Name == "" || params.Price < 0 {
		httpx.Error(w, http.StatusBadRequest, "name is required and price must be non-negative")
		return
	}

	p, err := h.svc.Create(r.Context(), params)
	if err != nil {
		writeProductError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	var params EditProductParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Edit(r.Context(), chi.URLParam(r, "productId"), params)
	if err != nil {
		writeProductError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Delete(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		writeProductError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.GetAllCategories(r.Context())
	if err != nil {
		writeProductError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		httpx.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), body.Name)
	if err != nil {
		writeProductError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) editCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		httpx.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := h.svc.EditCategory(r.Context(), chi.URLParam(r, "categoryId"), body.Name)
	if err != nil {
		writeProductError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.DeleteCategory(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		writeProductError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func writeProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrCategoryNotFound):
		httpx.Error(w, http.StatusNotFound, err.Error())
	default:
		httpx.Error(w, http.StatusInternalServerError, "product operation failed")
	}
}
