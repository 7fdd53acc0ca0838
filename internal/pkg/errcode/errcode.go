// Package errcode defines the envelope error codes returned to
// clients. Values are stable once shipped; append only.
package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrUnauthorized
	ErrForbidden
	ErrNotFound
	ErrInvalid
	ErrConflict
	ErrInternal
	ErrTooMany

	// import pipeline
	ErrInvalidFile
	ErrImportBadPayload
	ErrUploadFailed
)
