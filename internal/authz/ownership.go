package authz

import "errors"

var ErrNotOwner = errors.New("resource does not belong to requester")

// RequireOwner is the single ownership check applied before any read or
// mutation of a user-scoped resource. Repositories already filter by user_id;
// this guards the paths that cannot (cache hits, unscoped lookups).
func RequireOwner(resourceUserID, requesterID string) error {
	if requesterID == "" || resourceUserID != requesterID {
		return ErrNotOwner
	}
	return nil
}
