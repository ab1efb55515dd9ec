package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"Defaults", "", 1, 10},
		{"Explicit", "?page=3&limit=25", 3, 25},
		{"LimitCapped", "?limit=500", 1, 100},
		{"NegativeIgnored", "?page=-2&limit=-5", 1, 10},
		{"GarbageIgnored", "?page=abc&limit=xyz", 1, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)
			page, limit := Pagination(r)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(25, 2, 10)
	assert.Equal(t, 25, m.TotalItems)
	assert.Equal(t, 3, m.TotalPages)

	m = NewMeta(30, 1, 10)
	assert.Equal(t, 3, m.TotalPages)

	m = NewMeta(0, 1, 10)
	assert.Equal(t, 0, m.TotalPages)
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "Order not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Order not found"}`, rec.Body.String())
}
