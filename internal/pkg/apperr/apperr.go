// Package apperr holds the sentinel errors shared by repos, services and handlers.
// Wrap them with fmt.Errorf("...: %w", ...) and test with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrValidation        = errors.New("validation failure")
	ErrExternalService   = errors.New("external service failure")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnauthenticated   = errors.New("unauthenticated")
)
