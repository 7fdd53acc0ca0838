// Package errors holds the sentinel errors shared across repos,
// services and handlers. Wrap with %w so errors.Is keeps working.
package errors

import "errors"

// Generic sentinels mapped to envelope codes at the handler layer.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid")
	ErrConflict     = errors.New("conflict")
)

// Import pipeline sentinels.
var (
	// ErrParse marks an adapter that could not decode its source payload
	// at all. Fatal for that import job only.
	ErrParse = errors.New("parse failed")
	// ErrResolution marks a failed catalog or provider lookup. Recorded
	// per item, never aborts a batch.
	ErrResolution = errors.New("external resolution failed")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
