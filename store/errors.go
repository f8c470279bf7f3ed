package store

import "errors"

// Failure classes surfaced by the stores. Handlers map these to HTTP
// status codes in one place; nothing matches on error strings.
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrAuthorNotFound     = errors.New("author not found")
	ErrPostNotFound       = errors.New("post not found")
)
