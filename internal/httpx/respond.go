package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, map[string]string{"message": message})
}

// Pagination reads page/limit query params with the platform defaults.
func Pagination(r *http.Request) (page, limit int) {
	page = 1
	limit = 10

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// Meta is the pagination envelope returned by list endpoints.
type Meta struct {
	TotalItems int `json:"totalItems"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalPages int `json:"totalPages"`
}

func NewMeta(total, page, limit int) Meta {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return Meta{
		TotalItems: total,
		Page:       page,
		PerPage:    limit,
		TotalPages: pages,
	}
}
