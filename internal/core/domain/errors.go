package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState indicates a session operation is not allowed in its current state
	ErrInvalidState = errors.New("invalid session state")

	// ErrConnection indicates a connectivity or timeout failure against a backing store
	ErrConnection = errors.New("connection failure")

	// ErrSessionNotFound indicates the sync session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrTenantNotFound indicates the tenant does not exist
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrPriceListNotFound indicates the price list does not exist
	ErrPriceListNotFound = errors.New("price list not found")
)
