package authz

import "context"

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the authenticated caller, extracted from the JWT by the auth
// middleware.
type Identity struct {
	UserID   string
	TenantID string
	Username string
	IsAdmin  bool
}

// WithIdentity sets the caller identity into context (called by middleware).
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom retrieves the caller identity safely.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
