package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or missing session token")
	ErrUserNotFound       = errors.New("user not found")
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrOAuthEmailNotFound = errors.New("no account matches this Google email")
	ErrSSONotConfigured   = errors.New("google sso is not configured")
)
