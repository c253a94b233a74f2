package absence

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request already processed")
	ErrOverlappingLeave      = errors.New("leave request overlaps an existing one")
	ErrInvalidLeaveType      = errors.New("invalid leave type")
	ErrInsightNotFound       = errors.New("absence insight not found")
	ErrInvalidTransition     = errors.New("invalid insight status transition")
)
