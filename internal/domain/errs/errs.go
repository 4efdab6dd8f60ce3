// Package errs holds the error kinds shared by every domain package.
// Domain errors wrap one of these so adapters can map them with errors.Is.
package errs

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)
