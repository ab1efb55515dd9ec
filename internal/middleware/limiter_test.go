package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tokomart-be/internal/authz"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// identityStandIn plays the role of the JWT middleware so the limiter sees
// an authenticated caller.
func identityStandIn(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := authz.WithIdentity(r.Context(), authz.Identity{UserID: userID, TenantID: "tenant-1"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func limitedRouter(userID string) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(identityStandIn(userID))
		r.Use(RateLimit("internal-secret"))
		r.Get("/resource", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func TestRateLimit(t *testing.T) {
	t.Run("AuthenticatedCallersKeyedByUser", func(t *testing.T) {
		routerA := limitedRouter("limiter-user-a")
		routerB := limitedRouter("limiter-user-b")

		// Both users arrive from the same address; exhausting one user's
		// quota must not touch the other's.
		var last int
		for i := 0; i < burstGeneral+1; i++ {
			req := httptest.NewRequest(http.MethodGet, "/resource", nil)
			req.RemoteAddr = "203.0.113.7:1234"
			rec := httptest.NewRecorder()
			routerA.ServeHTTP(rec, req)
			last = rec.Code
		}
		assert.Equal(t, http.StatusTooManyRequests, last)

		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rec := httptest.NewRecorder()
		routerB.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("InternalServiceTierIsBroader", func(t *testing.T) {
		router := limitedRouter("limiter-user-c")

		for i := 0; i < burstGeneral+1; i++ {
			req := httptest.NewRequest(http.MethodGet, "/resource", nil)
			req.Header.Set("X-Service-Auth", "internal-secret")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}
