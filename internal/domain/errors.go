package domain

import "errors"

// Sentinel errors for the application. Repositories translate storage
// failures into these; handlers map them onto HTTP statuses.
var (
	ErrValidation       = errors.New("invalid input")
	ErrDuplicateRequest = errors.New("friend request already pending")
	ErrAlreadyFriends   = errors.New("users are already friends")
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidState     = errors.New("invalid state transition")
	ErrTransient        = errors.New("transient storage error")
)
