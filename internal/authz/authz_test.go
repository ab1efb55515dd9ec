package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireOwner(t *testing.T) {
	assert.NoError(t, RequireOwner("user-1", "user-1"))
	assert.ErrorIs(t, RequireOwner("user-1", "user-2"), ErrNotOwner)
	assert.ErrorIs(t, RequireOwner("user-1", ""), ErrNotOwner)
	assert.ErrorIs(t, RequireOwner("", ""), ErrNotOwner)
}

func TestIdentityContextRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := IdentityFrom(ctx)
	assert.False(t, ok)

	id := Identity{UserID: "user-1", TenantID: "tenant-1", Username: "budi", IsAdmin: true}
	ctx = WithIdentity(ctx, id)

	got, ok := IdentityFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
