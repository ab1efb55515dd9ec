package middleware

import (
	"net/http"
	"strings"

	"tokomart-be/internal/authz"
	"tokomart-be/internal/httpx"
	"tokomart-be/internal/user"
)

func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// Auth rejects requests without a valid user JWT and puts the caller identity
// into the request context.
func Auth(secret string) func(http.Handler) http.Handler {
	return authWith(secret, false)
}

// AdminAuth is Auth against the admin secret; the token must also carry the
// admin flag.
func AdminAuth(adminSecret string) func(http.Handler) http.Handler {
	return authWith(adminSecret, true)
}

func authWith(secret string, requireAdmin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				httpx.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			claims, err := user.ParseJWT(token, secret)
			if err != nil {
				httpx.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			if requireAdmin && !claims.IsAdmin {
				httpx.Error(w, http.StatusUnauthorized, "Not an admin token")
				return
			}

			ctx := authz.WithIdentity(r.Context(), authz.Identity{
				UserID:   claims.UserID,
				TenantID: claims.TenantID,
				Username: claims.Username,
				IsAdmin:  claims.IsAdmin,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
