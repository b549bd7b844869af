package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrRemoteUnavailable indicates the persistence service could not be reached.
	ErrRemoteUnavailable = errors.New("store unavailable")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrMissingFields      = errors.New("missing required fields")
	ErrForbidden          = errors.New("admin privileges required")
)
