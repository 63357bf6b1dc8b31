package auth

import "errors"

// Failure kinds surfaced by the auth service and token codec. Handlers map
// these to HTTP status codes; nothing here carries internal detail.
var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("user does not have the selected role")
	ErrUserNotFound       = errors.New("user not found")

	ErrInvalidSignature = errors.New("token signature invalid")
	ErrMalformedToken   = errors.New("token malformed")
)
