package gdpr

import "errors"

var (
	ErrRequestNotFound    = errors.New("gdpr request not found")
	ErrRequestNotPending  = errors.New("gdpr request is not pending")
	ErrOpenRequestExists  = errors.New("an open gdpr request of this type already exists")
	ErrNotOwnRequest      = errors.New("employees can only open requests for themselves")
	ErrInvalidRequestType = errors.New("invalid gdpr request type")
)
