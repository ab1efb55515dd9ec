package tenant

import "errors"

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrNotTenantOwner = errors.New("not allowed to modify this tenant")
)
