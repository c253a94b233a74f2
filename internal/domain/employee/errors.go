package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailExists        = errors.New("email already registered in this tenant")
	ErrAlreadyOffboarded  = errors.New("employee is already offboarded")
	ErrNotYourReport      = errors.New("employee does not report to you")
	ErrSelfManagerInvalid = errors.New("employee cannot be their own manager")
)
