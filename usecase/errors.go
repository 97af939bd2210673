package usecase

import "errors"

// Sentinel errors shared by the services. Handlers translate these to HTTP
// statuses; everything else surfaces as an internal error.
var (
	ErrNotFound           = errors.New("not found")
	ErrNoNovels           = errors.New("no novels found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username is taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotOwner           = errors.New("resource does not belong to this user")
)
