package user

import "errors"

var (
	ErrValidation     = errors.New("invalid user input")
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrNotFound       = errors.New("user not found")
	ErrForbidden      = errors.New("not allowed for this account")
)
