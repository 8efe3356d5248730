package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrPasswordTooShort   = errors.New("new password must be at least 6 characters long")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrMissingPassword    = errors.New("current password and new password are required")
)
