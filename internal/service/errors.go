package service

import "errors"

// Sentinel errors shared by the services. Handlers map these onto HTTP
// statuses; anything unlisted is treated as a store failure (500).
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminNotSeeded     = errors.New("admin account not found, please seed the database")
	ErrUserNotFound       = errors.New("user not found")
	ErrDishNotFound       = errors.New("dish not found")
	ErrMissingFields      = errors.New("missing required fields")
)
