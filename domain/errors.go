package domain

import "errors"

var (
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrLocationNotFound      = errors.New("location not found")
	ErrRepositoryUnavailable = errors.New("repository unavailable")
	ErrNotFound              = errors.New("not found")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrUnauthorized          = errors.New("unauthorized")
)
