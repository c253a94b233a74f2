package offboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/audit"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/employee"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/notification"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/offboarding"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
)

type OffboardingServiceImpl struct {
	workflows     offboarding.Repository
	employees     employee.Repository
	users         user.Repository
	notifications notification.Service
	auditTrail    audit.Repository
	now           func() time.Time
}

func NewOffboardingService(
	workflows offboarding.Repository,
	employees employee.Repository,
	users user.Repository,
	notifications notification.Service,
	auditTrail audit.Repository,
) offboarding.Service {
	return &OffboardingServiceImpl{
		workflows:     workflows,
		employees:     employees,
		users:         users,
		notifications: notifications,
		auditTrail:    auditTrail,
		now:           time.Now,
	}
}

// InitiateWorkflow implements offboarding.Service. The default checklist and
// an exit-interview placeholder are created with the workflow.
func (s *OffboardingServiceImpl) InitiateWorkflow(ctx context.Context, sess *session.Session, req offboarding.InitiateWorkflowRequest) (*offboarding.WorkflowResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionOffboardingManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	emp, err := s.employees.GetByID(ctx, sess.TenantID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp.EmploymentStatus == employee.StatusOffboarded {
		return nil, employee.ErrAlreadyOffboarded
	}

	if _, err := s.workflows.GetActiveByEmployee(ctx, sess.TenantID, emp.ID); err == nil {
		return nil, offboarding.ErrWorkflowExists
	} else if !errors.Is(err, offboarding.ErrWorkflowNotFound) {
		return nil, err
	}

	lastDay, _ := time.Parse("2006-01-02", req.LastWorkingDay)

	w := &offboarding.Workflow{
		ID:              uuid.New().String(),
		TenantID:        sess.TenantID,
		EmployeeID:      emp.ID,
		InitiatedBy:     sess.UserID,
		TerminationType: offboarding.TerminationType(req.TerminationType),
		Reason:          req.Reason,
		LastWorkingDay:  lastDay,
		Status:          offboarding.StatusPending,
	}
	items := offboarding.DefaultChecklist(w.ID, func() string { return uuid.New().String() })
	interview := &offboarding.ExitInterview{WorkflowID: w.ID}

	if err := s.workflows.CreateWorkflow(ctx, w, items, interview); err != nil {
		return nil, err
	}

	s.notifyStarted(ctx, sess, w, emp)

	resp := offboarding.ToWorkflowResponse(w, items)
	return &resp, nil
}

func (s *OffboardingServiceImpl) notifyStarted(ctx context.Context, sess *session.Session, w *offboarding.Workflow, emp *employee.Employee) {
	relatedType := "offboarding_workflow"
	hrs, err := s.users.ListByRole(ctx, sess.TenantID, []user.Role{user.RoleHR, user.RoleAdmin})
	if err != nil {
		return
	}
	for _, u := range hrs {
		if u.ID == sess.UserID {
			continue
		}
		_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
			TenantID:    sess.TenantID,
			RecipientID: u.ID,
			SenderID:    &sess.UserID,
			Type:        notification.TypeOffboardingStarted,
			Title:       "Offboarding started",
			Message:     fmt.Sprintf("Offboarding for %s started; last working day %s.", emp.FullName(), w.LastWorkingDay.Format("2006-01-02")),
			RelatedType: &relatedType,
			RelatedID:   &w.ID,
		})
	}
}

// GetWorkflow implements offboarding.Service.
func (s *OffboardingServiceImpl) GetWorkflow(ctx context.Context, sess *session.Session, id string) (*offboarding.WorkflowResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionOffboardingView) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	w, err := s.workflows.GetWorkflow(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}
	items, err := s.workflows.GetChecklist(ctx, w.ID)
	if err != nil {
		return nil, err
	}

	resp := offboarding.ToWorkflowResponse(w, items)
	return &resp, nil
}

// ListWorkflows implements offboarding.Service.
func (s *OffboardingServiceImpl) ListWorkflows(ctx context.Context, sess *session.Session, status *offboarding.WorkflowStatus, page, pageSize int) ([]offboarding.WorkflowResponse, int, error) {
	if !user.HasPermission(sess.Role, user.PermissionOffboardingView) {
		return nil, 0, user.ErrAdminPrivilegeRequired
	}

	workflows, total, err := s.workflows.ListWorkflows(ctx, sess.TenantID, status, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]offboarding.WorkflowResponse, len(workflows))
	for i, w := range workflows {
		responses[i] = offboarding.ToWorkflowResponse(w, nil)
	}
	return responses, total, nil
}

// UpdateChecklistItem implements offboarding.Service.
func (s *OffboardingServiceImpl) UpdateChecklistItem(ctx context.Context, sess *session.Session, workflowID, itemID string, req offboarding.UpdateChecklistItemRequest) (*offboarding.WorkflowResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionOffboardingManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	w, err := s.workflows.GetWorkflow(ctx, sess.TenantID, workflowID)
	if err != nil {
		return nil, err
	}
	if !w.Active() {
		return nil, offboarding.ErrWorkflowNotActive
	}

	item, err := s.workflows.GetChecklistItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.WorkflowID != w.ID {
		return nil, offboarding.ErrChecklistItemNotFound
	}

	var completedBy *string
	var completedAt *time.Time
	if req.Completed {
		now := s.now()
		completedBy = &sess.UserID
		completedAt = &now
	}
	if err := s.workflows.UpdateChecklistItem(ctx, itemID, req.Completed, completedBy, completedAt, req.Notes); err != nil {
		return nil, err
	}

	// First completed item promotes a pending workflow.
	if req.Completed && w.Status == offboarding.StatusPending {
		if err := s.workflows.SetWorkflowStatus(ctx, sess.TenantID, w.ID, offboarding.StatusInProgress, nil); err != nil {
			return nil, err
		}
		w.Status = offboarding.StatusInProgress
	}

	items, err := s.workflows.GetChecklist(ctx, w.ID)
	if err != nil {
		return nil, err
	}

	resp := offboarding.ToWorkflowResponse(w, items)
	return &resp, nil
}

// CompleteWorkflow implements offboarding.Service.
func (s *OffboardingServiceImpl) CompleteWorkflow(ctx context.Context, sess *session.Session, id string) (*offboarding.WorkflowResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionOffboardingManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	completedAt := s.now()
	if err := s.workflows.CompleteWorkflow(ctx, sess.TenantID, id, completedAt); err != nil {
		return nil, err
	}

	w, err := s.workflows.GetWorkflow(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}

	if err := s.auditTrail.Record(ctx, &audit.Event{
		TenantID:   sess.TenantID,
		ActorID:    sess.UserID,
		Action:     audit.ActionOffboardingComplete,
		TargetType: "offboarding_workflow",
		TargetID:   w.ID,
		Details: map[string]interface{}{
			"employee_id":      w.EmployeeID,
			"termination_type": string(w.TerminationType),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to record audit event: %w", err)
	}

	s.notifyCompleted(ctx, sess, w)

	items, err := s.workflows.GetChecklist(ctx, w.ID)
	if err != nil {
		return nil, err
	}

	resp := offboarding.ToWorkflowResponse(w, items)
	return &resp, nil
}

func (s *OffboardingServiceImpl) notifyCompleted(ctx context.Context, sess *session.Session, w *offboarding.Workflow) {
	relatedType := "offboarding_workflow"
	hrs, err := s.users.ListByRole(ctx, sess.TenantID, []user.Role{user.RoleHR, user.RoleAdmin})
	if err != nil {
		return
	}
	for _, u := range hrs {
		_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
			TenantID:    sess.TenantID,
			RecipientID: u.ID,
			SenderID:    &sess.UserID,
			Type:        notification.TypeOffboardingCompleted,
			Title:       "Offboarding completed",
			Message:     "An offboarding workflow was completed and the employee record is now offboarded.",
			RelatedType: &relatedType,
			RelatedID:   &w.ID,
		})
	}
}

// CancelWorkflow implements offboarding.Service.
func (s *OffboardingServiceImpl) CancelWorkflow(ctx context.Context, sess *session.Session, id string) error {
	if !user.HasPermission(sess.Role, user.PermissionOffboardingManage) {
		return user.ErrAdminPrivilegeRequired
	}

	w, err := s.workflows.GetWorkflow(ctx, sess.TenantID, id)
	if err != nil {
		return err
	}
	if !w.Active() {
		return offboarding.ErrWorkflowNotActive
	}

	return s.workflows.SetWorkflowStatus(ctx, sess.TenantID, id, offboarding.StatusCancelled, nil)
}

// CreateHandoverItem implements offboarding.Service.
func (s *OffboardingServiceImpl) CreateHandoverItem(ctx context.Context, sess *session.Session, workflowID string, req offboarding.CreateHandoverItemRequest) (*offboarding.HandoverItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionOffboardingManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	w, err := s.workflows.GetWorkflow(ctx, sess.TenantID, workflowID)
	if err != nil {
		return nil, err
	}
	if !w.Active() {
		return nil, offboarding.ErrWorkflowNotActive
	}

	h := &offboarding.HandoverItem{
		WorkflowID:  w.ID,
		Title:       req.Title,
		Description: req.Description,
		RecipientID: req.RecipientID,
		Status:      offboarding.HandoverPending,
	}
	if err := s.workflows.CreateHandoverItem(ctx, h); err != nil {
		return nil, err
	}

	return h, nil
}

// ListHandoverItems implements offboarding.Service.
func (s *OffboardingServiceImpl) ListHandoverItems(ctx context.Context, sess *session.Session, workflowID string) ([]*offboarding.HandoverItem, error) {
	if !user.HasPermission(sess.Role, user.PermissionOffboardingView) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	if _, err := s.workflows.GetWorkflow(ctx, sess.TenantID, workflowID); err != nil {
		return nil, err
	}
	return s.workflows.ListHandoverItems(ctx, workflowID)
}

// CompleteHandoverItem implements offboarding.Service.
func (s *OffboardingServiceImpl) CompleteHandoverItem(ctx context.Context, sess *session.Session, workflowID, itemID string) error {
	if !user.HasPermission(sess.Role, user.PermissionOffboardingManage) {
		return user.ErrAdminPrivilegeRequired
	}

	if _, err := s.workflows.GetWorkflow(ctx, sess.TenantID, workflowID); err != nil {
		return err
	}
	return s.workflows.SetHandoverItemStatus(ctx, itemID, offboarding.HandoverDone)
}

// GetExitInterview implements offboarding.Service.
func (s *OffboardingServiceImpl) GetExitInterview(ctx context.Context, sess *session.Session, workflowID string) (*offboarding.ExitInterview, error) {
	if !user.HasPermission(sess.Role, user.PermissionOffboardingView) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	if _, err := s.workflows.GetWorkflow(ctx, sess.TenantID, workflowID); err != nil {
		return nil, err
	}
	return s.workflows.GetExitInterview(ctx, workflowID)
}

// SubmitExitInterview implements offboarding.Service.
func (s *OffboardingServiceImpl) SubmitExitInterview(ctx context.Context, sess *session.Session, workflowID string, req offboarding.SubmitExitInterviewRequest) (*offboarding.ExitInterview, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionOffboardingManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	w, err := s.workflows.GetWorkflow(ctx, sess.TenantID, workflowID)
	if err != nil {
		return nil, err
	}
	if !w.Active() {
		return nil, offboarding.ErrWorkflowNotActive
	}

	completedAt := s.now()
	if err := s.workflows.SubmitExitInterview(ctx, workflowID, sess.UserID, req.Feedback, completedAt); err != nil {
		return nil, err
	}

	return s.workflows.GetExitInterview(ctx, workflowID)
}

// CheckDeadlines implements offboarding.Service. For each milestone, any
// active workflow whose last working day is exactly that many days out gets
// a reminder to the assignee roles with open items.
func (s *OffboardingServiceImpl) CheckDeadlines(ctx context.Context) (int, error) {
	today := s.now().Truncate(24 * time.Hour)
	sent := 0

	for _, daysOut := range offboarding.DeadlineMilestones {
		day := today.AddDate(0, 0, daysOut)

		workflows, err := s.workflows.ListByLastWorkingDay(ctx, day)
		if err != nil {
			return sent, err
		}

		for _, w := range workflows {
			items, err := s.workflows.GetChecklist(ctx, w.ID)
			if err != nil {
				return sent, err
			}

			openRoles := map[string]int{}
			for _, item := range items {
				if !item.Completed {
					openRoles[item.AssigneeRole]++
				}
			}
			if len(openRoles) == 0 {
				continue
			}

			relatedType := "offboarding_workflow"
			for roleName, openCount := range openRoles {
				recipients, err := s.users.ListByRole(ctx, w.TenantID, []user.Role{user.Role(roleName)})
				if err != nil {
					continue
				}
				for _, u := range recipients {
					_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
						TenantID:    w.TenantID,
						RecipientID: u.ID,
						Type:        notification.TypeOffboardingMilestone,
						Title:       "Offboarding deadline approaching",
						Message:     fmt.Sprintf("%d open checklist item(s) assigned to %s; last working day is %s.", openCount, roleName, w.LastWorkingDay.Format("2006-01-02")),
						RelatedType: &relatedType,
						RelatedID:   &w.ID,
						IsUrgent:    daysOut <= 1,
					})
					sent++
				}
			}
		}
	}

	return sent, nil
}
