package recruitment

import "errors"

var (
	ErrOpportunityNotFound  = errors.New("opportunity not found")
	ErrOpportunityClosed    = errors.New("opportunity is closed")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("candidate has already applied to this opportunity")
	ErrInvalidStage         = errors.New("invalid application stage transition")
)
