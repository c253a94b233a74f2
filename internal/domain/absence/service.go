package absence

import (
	"context"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
)

// LeaveService defines the leave request service interface
type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, sess *session.Session, req CreateLeaveRequestRequest) (*LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, sess *session.Session, id string) (*LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, sess *session.Session) ([]LeaveRequestResponse, error)
	ListPendingLeaveRequests(ctx context.Context, sess *session.Session, page, pageSize int) ([]LeaveRequestResponse, int, error)
	ApproveLeaveRequest(ctx context.Context, sess *session.Session, id string) (*LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, sess *session.Session, id string, req RejectLeaveRequestRequest) (*LeaveRequestResponse, error)
	CancelLeaveRequest(ctx context.Context, sess *session.Session, id string) error
}

// InsightService defines the absence pattern insight service interface
type InsightService interface {
	ListInsights(ctx context.Context, sess *session.Session, status *InsightStatus, page, pageSize int) ([]InsightResponse, int, error)
	GetInsight(ctx context.Context, sess *session.Session, id string) (*InsightResponse, error)
	UpdateInsightStatus(ctx context.Context, sess *session.Session, id string, req UpdateInsightStatusRequest) (*InsightResponse, error)

	// RunDetection sweeps a tenant's recent leave history through the pattern
	// heuristics and raises insights. The scheduler calls it nightly; HR can
	// trigger it on demand.
	RunDetection(ctx context.Context, tenantID string) (int, error)
}
