package offboarding

import "errors"

var (
	ErrWorkflowNotFound      = errors.New("offboarding workflow not found")
	ErrWorkflowExists        = errors.New("an active offboarding workflow already exists for this employee")
	ErrWorkflowNotActive     = errors.New("offboarding workflow is not active")
	ErrChecklistIncomplete   = errors.New("offboarding checklist has incomplete items")
	ErrChecklistItemNotFound = errors.New("checklist item not found")
	ErrHandoverItemNotFound  = errors.New("handover item not found")
	ErrInterviewNotFound     = errors.New("exit interview not found")
)
