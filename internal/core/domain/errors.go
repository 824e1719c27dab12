package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested document(s) could not be resolved
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderUnavailable indicates the embedding backend could not be
	// reached or returned a non-success status
	ErrProviderUnavailable = errors.New("embedding provider unavailable")

	// ErrMalformedResponse indicates the embedding backend answered with a
	// success status but an unusable payload shape
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrStoreUnavailable indicates the document store query failed
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrConfiguration indicates missing or inconsistent configuration,
	// e.g. a hosted provider selected without an API key
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidProvider indicates an unknown embedding provider was specified
	ErrInvalidProvider = errors.New("invalid provider")
)
