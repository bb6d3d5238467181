// Package common defines the sentinel errors shared by the todo API layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Input and setup errors.
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid config")

	// Account errors.
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors. All of them end up as ErrRejected at the request boundary.
	ErrMissingToken     = errors.New("missing token")
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrUnknownSubject   = errors.New("unknown token subject")

	// Request outcomes.
	ErrRejected  = errors.New("unauthorized")
	ErrForbidden = errors.New("forbidden")
)

// IsAuthenticationFailure reports whether err is one of the token or identity
// errors that must be reported to clients as a plain rejection.
func IsAuthenticationFailure(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrUnknownSubject)
}
