package absence

import (
	"context"
	"time"
)

// LeaveRequestRepository defines the leave request repository interface
type LeaveRequestRepository interface {
	Create(ctx context.Context, l *LeaveRequest) error
	GetByID(ctx context.Context, tenantID, id string) (*LeaveRequest, error)
	ListByEmployee(ctx context.Context, tenantID, employeeID string, since time.Time) ([]*LeaveRequest, error)
	ListByStatus(ctx context.Context, tenantID string, status LeaveRequestStatus, page, pageSize int) ([]*LeaveRequest, int, error)
	CheckOverlapping(ctx context.Context, tenantID, employeeID string, start, end time.Time) (bool, error)
	SetStatus(ctx context.Context, tenantID, id string, status LeaveRequestStatus, approvedBy *string, approvedAt *time.Time, rejectionReason *string) error

	// ListEmployeeIDsWithLeave returns distinct employees with approved leave
	// since the given time; the detection sweep iterates over them.
	ListEmployeeIDsWithLeave(ctx context.Context, tenantID string, since time.Time) ([]string, error)
}

// InsightRepository defines the absence insight repository interface
type InsightRepository interface {
	Create(ctx context.Context, i *AbsenceInsight) error
	GetByID(ctx context.Context, tenantID, id string) (*AbsenceInsight, error)
	List(ctx context.Context, tenantID string, status *InsightStatus, page, pageSize int) ([]*AbsenceInsight, int, error)
	ListByEmployee(ctx context.Context, tenantID, employeeID string) ([]*AbsenceInsight, error)

	// HasOpenInsight reports whether an insight with the given pattern in an
	// open status (new/pending_review/reviewed) exists for the employee.
	// Detection uses it to suppress duplicates.
	HasOpenInsight(ctx context.Context, tenantID, employeeID string, pattern PatternType) (bool, error)

	UpdateStatus(ctx context.Context, tenantID, id string, status InsightStatus, reviewedBy string, reviewedAt time.Time, actionNotes *string) error
}
