package domain

import "errors"

// Authentication errors. Unknown email, wrong password and lockout are
// deliberately one error: callers must not learn which factor failed.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUserInactive       = errors.New("user account is inactive")
)

// Tenant errors
var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrTenantExists   = errors.New("tenant already exists")
	ErrTenantInactive = errors.New("tenant is inactive")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
	ErrSessionInvalid  = errors.New("session is invalid")
)

// Authorization errors
var (
	ErrForbidden = errors.New("forbidden")
)

// Input and infrastructure errors
var (
	ErrValidation       = errors.New("validation failed")
	ErrClientNotFound   = errors.New("client record not found")
	ErrStoreUnavailable = errors.New("backing store unavailable")
)
