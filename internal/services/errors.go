package services

import "errors"

// Service-level sentinel errors. Handlers map these to HTTP statuses.
var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password; the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when a valid identity tries to touch a
	// task it does not own.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned for missing or malformed fields.
	ErrInvalidInput = errors.New("invalid input")
)
