package middleware

import (
	"net/http"

	"tokomart-be/internal/authz"
	"tokomart-be/internal/httpx"
	"tokomart-be/internal/logger"
	"tokomart-be/internal/tenant"

	"go.uber.org/zap"
)

// TenantOwner gates admin mutations: the authenticated caller must be the
// owner of the tenant this server instance runs under, as recorded in the
// tenant directory. Must run after AdminAuth.
func TenantOwner(dir tenant.Directory, serverTenantID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := authz.IdentityFrom(r.Context())
			if !ok {
				httpx.Error(w, http.StatusUnauthorized, "Invalid user data")
				return
			}

			ownerID, err := dir.GetOwner(r.Context(), serverTenantID, extractBearerToken(r))
			if err != nil {
				logger.FromCtx(r.Context()).Warn("tenant owner lookup failed",
					zap.String("tenant_id", serverTenantID),
					zap.Error(err),
				)
				httpx.Error(w, http.StatusInternalServerError, "Failed to verify tenant information")
				return
			}

			if id.UserID != ownerID {
				httpx.Error(w, http.StatusForbidden, "Not Authorized User")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
