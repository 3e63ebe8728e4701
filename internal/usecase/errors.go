package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrNoPuzzle              = errors.New("no puzzle available")
	ErrConflict              = errors.New("resource already exists")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
