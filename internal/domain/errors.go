package domain

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidState  = errors.New("timer not started")
	ErrTitleRequired = errors.New("title required")
	ErrDateRequired  = errors.New("date required")
	ErrInvalidTags   = errors.New("invalid tags payload")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidCode        = errors.New("invalid or expired code")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrUnauthorized       = errors.New("unauthorized")
)
