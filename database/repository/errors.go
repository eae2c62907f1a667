package repository

import "errors"

// Sentinel errors shared by the per-entity repositories.
var (
	// ErrNotFound means no document matched the id.
	ErrNotFound = errors.New("not found")
	// ErrStaleStatus means a compare-and-swap status update matched no
	// document: the entity either changed status concurrently or no longer
	// exists. Callers re-read to tell the two apart.
	ErrStaleStatus = errors.New("status changed concurrently")
	// ErrInsufficientStock means a checkout could not reserve stock for one
	// of its lines.
	ErrInsufficientStock = errors.New("insufficient stock")
)
