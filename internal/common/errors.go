package common

import "errors"

var (
	ErrorNotFound = errors.New("not found")

	// validation errors, raised before any request is sent
	ErrorValidation     = errors.New("validation error")
	ErrReasonRequired   = errors.New("rejection reason is required")
	ErrPasswordMismatch = errors.New("new password and confirmation do not match")
	ErrPasswordTooShort = errors.New("new password must be at least 8 characters")

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyResolved   = errors.New("report is already resolved")
	ErrBusy              = errors.New("another action is still running")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
