package quote

import "errors"

var (
	ErrValidation     = errors.New("invalid quote input")
	ErrNotFound       = errors.New("quote not found")
	ErrForbidden      = errors.New("not allowed for this quote")
	ErrStatusConflict = errors.New("quote was modified concurrently, retry")
)
