package catalog

import "errors"

var (
	ErrValidation = errors.New("invalid catalog input")
	ErrNotFound   = errors.New("catalog entry not found")
	ErrForbidden  = errors.New("not allowed for this catalog entry")
)
