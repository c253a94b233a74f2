package absence

import (
	"context"
	"fmt"
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/absence"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/employee"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/notification"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
)

// detectionWindow is the rolling period the pattern heuristics look at.
const detectionWindow = 365 * 24 * time.Hour

type AbsenceServiceImpl struct {
	leaves        absence.LeaveRequestRepository
	insights      absence.InsightRepository
	employees     employee.Repository
	users         user.Repository
	notifications notification.Service
	now           func() time.Time
}

func NewAbsenceService(
	leaves absence.LeaveRequestRepository,
	insights absence.InsightRepository,
	employees employee.Repository,
	users user.Repository,
	notifications notification.Service,
) *AbsenceServiceImpl {
	return &AbsenceServiceImpl{
		leaves:        leaves,
		insights:      insights,
		employees:     employees,
		users:         users,
		notifications: notifications,
		now:           time.Now,
	}
}

var _ absence.LeaveService = (*AbsenceServiceImpl)(nil)
var _ absence.InsightService = (*AbsenceServiceImpl)(nil)

// businessDays counts weekdays in the inclusive range.
func businessDays(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

// CreateLeaveRequest implements absence.LeaveService.
func (s *AbsenceServiceImpl) CreateLeaveRequest(ctx context.Context, sess *session.Session, req absence.CreateLeaveRequestRequest) (*absence.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if sess.EmployeeID == nil {
		return nil, employee.ErrEmployeeNotFound
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	overlaps, err := s.leaves.CheckOverlapping(ctx, sess.TenantID, *sess.EmployeeID, start, end)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, absence.ErrOverlappingLeave
	}

	l := &absence.LeaveRequest{
		TenantID:    sess.TenantID,
		EmployeeID:  *sess.EmployeeID,
		Type:        absence.LeaveType(req.Type),
		StartDate:   start,
		EndDate:     end,
		TotalDays:   businessDays(start, end),
		Reason:      req.Reason,
		Status:      absence.LeaveStatusWaitingApproval,
		RequestedAt: s.now(),
	}
	if err := s.leaves.Create(ctx, l); err != nil {
		return nil, err
	}

	s.notifyApprovers(ctx, sess, l)

	resp := absence.ToLeaveResponse(l)
	return &resp, nil
}

// notifyApprovers pings the employee's manager, falling back to HR staff.
func (s *AbsenceServiceImpl) notifyApprovers(ctx context.Context, sess *session.Session, l *absence.LeaveRequest) {
	relatedType := "leave_request"
	recipients := s.approverUserIDs(ctx, sess.TenantID, l.EmployeeID)

	for _, recipient := range recipients {
		_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
			TenantID:    sess.TenantID,
			RecipientID: recipient,
			SenderID:    &sess.UserID,
			Type:        notification.TypeLeaveRequested,
			Title:       "Leave request awaiting approval",
			Message:     fmt.Sprintf("A %s leave request for %s to %s needs review.", l.Type, l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02")),
			RelatedType: &relatedType,
			RelatedID:   &l.ID,
		})
	}
}

func (s *AbsenceServiceImpl) approverUserIDs(ctx context.Context, tenantID, employeeID string) []string {
	emp, err := s.employees.GetByID(ctx, tenantID, employeeID)
	if err != nil {
		return nil
	}
	if emp.ManagerID != nil {
		if mgr, err := s.employees.GetByID(ctx, tenantID, *emp.ManagerID); err == nil && mgr.UserID != nil {
			return []string{*mgr.UserID}
		}
	}
	hrs, err := s.users.ListByRole(ctx, tenantID, []user.Role{user.RoleHR, user.RoleAdmin})
	if err != nil {
		return nil
	}
	var ids []string
	for _, u := range hrs {
		ids = append(ids, u.ID)
	}
	return ids
}

// GetLeaveRequest implements absence.LeaveService.
func (s *AbsenceServiceImpl) GetLeaveRequest(ctx context.Context, sess *session.Session, id string) (*absence.LeaveRequestResponse, error) {
	l, err := s.leaves.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}

	own := sess.EmployeeID != nil && *sess.EmployeeID == l.EmployeeID
	if !own && !user.HasPermission(sess.Role, user.PermissionLeaveViewAll) {
		return nil, absence.ErrLeaveRequestNotFound
	}

	resp := absence.ToLeaveResponse(l)
	return &resp, nil
}

// ListMyLeaveRequests implements absence.LeaveService.
func (s *AbsenceServiceImpl) ListMyLeaveRequests(ctx context.Context, sess *session.Session) ([]absence.LeaveRequestResponse, error) {
	if sess.EmployeeID == nil {
		return nil, employee.ErrEmployeeNotFound
	}

	requests, err := s.leaves.ListByEmployee(ctx, sess.TenantID, *sess.EmployeeID, s.now().Add(-2*detectionWindow))
	if err != nil {
		return nil, err
	}

	responses := make([]absence.LeaveRequestResponse, len(requests))
	for i, l := range requests {
		responses[i] = absence.ToLeaveResponse(l)
	}
	return responses, nil
}

// ListPendingLeaveRequests implements absence.LeaveService.
func (s *AbsenceServiceImpl) ListPendingLeaveRequests(ctx context.Context, sess *session.Session, page, pageSize int) ([]absence.LeaveRequestResponse, int, error) {
	if !user.HasPermission(sess.Role, user.PermissionLeaveApprove) {
		return nil, 0, user.ErrAdminPrivilegeRequired
	}

	requests, total, err := s.leaves.ListByStatus(ctx, sess.TenantID, absence.LeaveStatusWaitingApproval, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]absence.LeaveRequestResponse, len(requests))
	for i, l := range requests {
		responses[i] = absence.ToLeaveResponse(l)
	}
	return responses, total, nil
}

// ApproveLeaveRequest implements absence.LeaveService.
func (s *AbsenceServiceImpl) ApproveLeaveRequest(ctx context.Context, sess *session.Session, id string) (*absence.LeaveRequestResponse, error) {
	return s.resolve(ctx, sess, id, absence.LeaveStatusApproved, nil)
}

// RejectLeaveRequest implements absence.LeaveService.
func (s *AbsenceServiceImpl) RejectLeaveRequest(ctx context.Context, sess *session.Session, id string, req absence.RejectLeaveRequestRequest) (*absence.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.resolve(ctx, sess, id, absence.LeaveStatusRejected, &req.Reason)
}

func (s *AbsenceServiceImpl) resolve(ctx context.Context, sess *session.Session, id string, status absence.LeaveRequestStatus, rejectionReason *string) (*absence.LeaveRequestResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionLeaveApprove) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	l, err := s.leaves.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}
	if l.Status != absence.LeaveStatusWaitingApproval {
		return nil, absence.ErrLeaveAlreadyProcessed
	}

	// Managers approve for their reports only; HR and admin for anyone.
	if sess.Role == user.RoleManager {
		emp, err := s.employees.GetByID(ctx, sess.TenantID, l.EmployeeID)
		if err != nil {
			return nil, err
		}
		if sess.EmployeeID == nil || !emp.IsManagedBy(*sess.EmployeeID) {
			return nil, employee.ErrNotYourReport
		}
	}

	now := s.now()
	if err := s.leaves.SetStatus(ctx, sess.TenantID, id, status, &sess.UserID, &now, rejectionReason); err != nil {
		return nil, err
	}
	l.Status = status
	l.ApprovedBy = &sess.UserID
	l.ApprovedAt = &now
	l.RejectionReason = rejectionReason

	s.notifyResolution(ctx, sess, l)

	resp := absence.ToLeaveResponse(l)
	return &resp, nil
}

func (s *AbsenceServiceImpl) notifyResolution(ctx context.Context, sess *session.Session, l *absence.LeaveRequest) {
	emp, err := s.employees.GetByID(ctx, sess.TenantID, l.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}

	notifType := notification.TypeLeaveApproved
	title := "Leave request approved"
	if l.Status == absence.LeaveStatusRejected {
		notifType = notification.TypeLeaveRejected
		title = "Leave request rejected"
	}

	relatedType := "leave_request"
	_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
		TenantID:    sess.TenantID,
		RecipientID: *emp.UserID,
		SenderID:    &sess.UserID,
		Type:        notifType,
		Title:       title,
		Message:     fmt.Sprintf("Your %s leave from %s to %s was %s.", l.Type, l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"), l.Status),
		RelatedType: &relatedType,
		RelatedID:   &l.ID,
	})
}

// CancelLeaveRequest implements absence.LeaveService. Only the requester can
// cancel, and only while it is still waiting for approval.
func (s *AbsenceServiceImpl) CancelLeaveRequest(ctx context.Context, sess *session.Session, id string) error {
	l, err := s.leaves.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return err
	}
	if sess.EmployeeID == nil || *sess.EmployeeID != l.EmployeeID {
		return absence.ErrLeaveRequestNotFound
	}
	if l.Status != absence.LeaveStatusWaitingApproval {
		return absence.ErrLeaveAlreadyProcessed
	}

	return s.leaves.SetStatus(ctx, sess.TenantID, id, absence.LeaveStatusCancelled, nil, nil, nil)
}

// ListInsights implements absence.InsightService.
func (s *AbsenceServiceImpl) ListInsights(ctx context.Context, sess *session.Session, status *absence.InsightStatus, page, pageSize int) ([]absence.InsightResponse, int, error) {
	if !user.HasPermission(sess.Role, user.PermissionInsightsView) {
		return nil, 0, user.ErrAdminPrivilegeRequired
	}

	insights, total, err := s.insights.List(ctx, sess.TenantID, status, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]absence.InsightResponse, len(insights))
	for i, ins := range insights {
		responses[i] = absence.ToInsightResponse(ins)
	}
	return responses, total, nil
}

// GetInsight implements absence.InsightService.
func (s *AbsenceServiceImpl) GetInsight(ctx context.Context, sess *session.Session, id string) (*absence.InsightResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionInsightsView) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	ins, err := s.insights.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}

	resp := absence.ToInsightResponse(ins)
	return &resp, nil
}

// UpdateInsightStatus implements absence.InsightService. Transitions follow
// the insight status graph; anything else is rejected.
func (s *AbsenceServiceImpl) UpdateInsightStatus(ctx context.Context, sess *session.Session, id string, req absence.UpdateInsightStatusRequest) (*absence.InsightResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionInsightsAction) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	ins, err := s.insights.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}

	next := absence.InsightStatus(req.Status)
	if !absence.CanTransition(ins.Status, next) {
		return nil, absence.ErrInvalidTransition
	}

	now := s.now()
	if err := s.insights.UpdateStatus(ctx, sess.TenantID, id, next, sess.UserID, now, req.ActionNotes); err != nil {
		return nil, err
	}
	ins.Status = next
	ins.ReviewedBy = &sess.UserID
	ins.ReviewedAt = &now
	if req.ActionNotes != nil {
		ins.ActionNotes = req.ActionNotes
	}

	resp := absence.ToInsightResponse(ins)
	return &resp, nil
}

// RunDetection implements absence.InsightService. Employees with an open
// insight of the same pattern are skipped so HR is not flooded with
// duplicates; dismissed or actioned insights do not block a re-raise.
func (s *AbsenceServiceImpl) RunDetection(ctx context.Context, tenantID string) (int, error) {
	since := s.now().Add(-detectionWindow)

	employeeIDs, err := s.leaves.ListEmployeeIDsWithLeave(ctx, tenantID, since)
	if err != nil {
		return 0, err
	}

	raised := 0
	for _, employeeID := range employeeIDs {
		requests, err := s.leaves.ListByEmployee(ctx, tenantID, employeeID, since)
		if err != nil {
			return raised, err
		}

		for _, candidate := range DetectPatterns(tenantID, employeeID, requests) {
			open, err := s.insights.HasOpenInsight(ctx, tenantID, employeeID, candidate.PatternType)
			if err != nil {
				return raised, err
			}
			if open {
				continue
			}

			if err := s.insights.Create(ctx, candidate); err != nil {
				return raised, err
			}
			raised++
			s.notifyInsight(ctx, tenantID, candidate)
		}
	}

	return raised, nil
}

func (s *AbsenceServiceImpl) notifyInsight(ctx context.Context, tenantID string, ins *absence.AbsenceInsight) {
	hrs, err := s.users.ListByRole(ctx, tenantID, []user.Role{user.RoleHR, user.RoleAdmin})
	if err != nil {
		return
	}

	relatedType := "absence_insight"
	for _, u := range hrs {
		_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
			TenantID:    tenantID,
			RecipientID: u.ID,
			Type:        notification.TypeInsightRaised,
			Title:       "Absence pattern detected",
			Message:     ins.Summary,
			RelatedType: &relatedType,
			RelatedID:   &ins.ID,
			IsUrgent:    ins.Priority == absence.PriorityHigh,
		})
	}
}
