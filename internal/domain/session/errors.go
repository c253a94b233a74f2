package session

import "errors"

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionExpired      = errors.New("session expired")
	ErrCSRFTokenMismatch   = errors.New("csrf token mismatch")
	ErrAuditReauthRequired = errors.New("audit access requires password re-verification")
	ErrAuditReauthExpired  = errors.New("audit re-verification has expired")
)
