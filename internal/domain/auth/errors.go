package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccessDenied       = errors.New("access denied")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordTooWeak    = errors.New("password must mix upper case, lower case and digits")
	ErrInvalidLevel       = errors.New("role level must be -1, 0 or 1")
)
