package user

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAdmin           = errors.New("user is not authorized for admin access")
	ErrUsernameExists     = errors.New("username already registered")
	ErrInvalidToken       = errors.New("invalid token")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
