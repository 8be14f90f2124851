package domain

import "errors"

var (
	// ErrProductNotFound is returned when a barcode has no corresponding
	// product, locally or upstream. An expected outcome, not a system fault.
	ErrProductNotFound = errors.New("product not found")

	// ErrSourceUnavailable is returned on upstream transport or parse
	// failure. Never retried internally; the caller decides.
	ErrSourceUnavailable = errors.New("product source unavailable")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidBarcode is returned when a barcode fails checksum validation
	ErrInvalidBarcode = errors.New("invalid barcode")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrShareNotFound is returned for unknown or expired share tokens
	ErrShareNotFound = errors.New("batch share not found")

	// ErrNotOwner is returned when a user modifies a record they don't own
	ErrNotOwner = errors.New("record does not belong to user")
)
