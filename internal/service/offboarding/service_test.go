package offboarding

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/audit"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/employee"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/notification"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/offboarding"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
)

const (
	testTenantID = "0190bbbb-0000-7000-8000-000000000001"
	hrUserID     = "0190bbbb-0000-7000-8000-000000000010"
	leaverEmpID  = "0190bbbb-0000-7000-8000-000000000020"
)

// fakeWorkflowRepo is an in-memory offboarding.Repository. CompleteWorkflow
// enforces the checklist gate the way the SQL implementation does.
type fakeWorkflowRepo struct {
	workflows  map[string]*offboarding.Workflow
	checklists map[string][]*offboarding.ChecklistItem
	handovers  map[string][]*offboarding.HandoverItem
	interviews map[string]*offboarding.ExitInterview
	offboarded map[string]bool
}

func newFakeWorkflowRepo() *fakeWorkflowRepo {
	return &fakeWorkflowRepo{
		workflows:  map[string]*offboarding.Workflow{},
		checklists: map[string][]*offboarding.ChecklistItem{},
		handovers:  map[string][]*offboarding.HandoverItem{},
		interviews: map[string]*offboarding.ExitInterview{},
		offboarded: map[string]bool{},
	}
}

func (f *fakeWorkflowRepo) CreateWorkflow(ctx context.Context, w *offboarding.Workflow, items []*offboarding.ChecklistItem, interview *offboarding.ExitInterview) error {
	f.workflows[w.ID] = w
	f.checklists[w.ID] = items
	f.interviews[w.ID] = interview
	return nil
}

func (f *fakeWorkflowRepo) GetWorkflow(ctx context.Context, tenantID, id string) (*offboarding.Workflow, error) {
	w, ok := f.workflows[id]
	if !ok || w.TenantID != tenantID {
		return nil, offboarding.ErrWorkflowNotFound
	}
	return w, nil
}

func (f *fakeWorkflowRepo) GetActiveByEmployee(ctx context.Context, tenantID, employeeID string) (*offboarding.Workflow, error) {
	for _, w := range f.workflows {
		if w.TenantID == tenantID && w.EmployeeID == employeeID && w.Active() {
			return w, nil
		}
	}
	return nil, offboarding.ErrWorkflowNotFound
}

func (f *fakeWorkflowRepo) ListWorkflows(ctx context.Context, tenantID string, status *offboarding.WorkflowStatus, page, pageSize int) ([]*offboarding.Workflow, int, error) {
	var out []*offboarding.Workflow
	for _, w := range f.workflows {
		if w.TenantID == tenantID && (status == nil || w.Status == *status) {
			out = append(out, w)
		}
	}
	return out, len(out), nil
}

func (f *fakeWorkflowRepo) SetWorkflowStatus(ctx context.Context, tenantID, id string, status offboarding.WorkflowStatus, completedAt *time.Time) error {
	w, ok := f.workflows[id]
	if !ok || w.TenantID != tenantID {
		return offboarding.ErrWorkflowNotFound
	}
	w.Status = status
	w.CompletedAt = completedAt
	return nil
}

func (f *fakeWorkflowRepo) GetChecklist(ctx context.Context, workflowID string) ([]*offboarding.ChecklistItem, error) {
	return f.checklists[workflowID], nil
}

func (f *fakeWorkflowRepo) GetChecklistItem(ctx context.Context, id string) (*offboarding.ChecklistItem, error) {
	for _, items := range f.checklists {
		for _, item := range items {
			if item.ID == id {
				return item, nil
			}
		}
	}
	return nil, offboarding.ErrChecklistItemNotFound
}

func (f *fakeWorkflowRepo) UpdateChecklistItem(ctx context.Context, id string, completed bool, completedBy *string, completedAt *time.Time, notes *string) error {
	item, err := f.GetChecklistItem(ctx, id)
	if err != nil {
		return err
	}
	item.Completed = completed
	item.CompletedBy = completedBy
	item.CompletedAt = completedAt
	if notes != nil {
		item.Notes = notes
	}
	return nil
}

func (f *fakeWorkflowRepo) CountIncompleteItems(ctx context.Context, workflowID string) (int, error) {
	n := 0
	for _, item := range f.checklists[workflowID] {
		if !item.Completed {
			n++
		}
	}
	return n, nil
}

func (f *fakeWorkflowRepo) CreateHandoverItem(ctx context.Context, h *offboarding.HandoverItem) error {
	h.ID = fmt.Sprintf("handover-%d", len(f.handovers[h.WorkflowID])+1)
	f.handovers[h.WorkflowID] = append(f.handovers[h.WorkflowID], h)
	return nil
}

func (f *fakeWorkflowRepo) ListHandoverItems(ctx context.Context, workflowID string) ([]*offboarding.HandoverItem, error) {
	return f.handovers[workflowID], nil
}

func (f *fakeWorkflowRepo) SetHandoverItemStatus(ctx context.Context, id string, status offboarding.HandoverItemStatus) error {
	for _, items := range f.handovers {
		for _, item := range items {
			if item.ID == id {
				item.Status = status
				return nil
			}
		}
	}
	return offboarding.ErrHandoverItemNotFound
}

func (f *fakeWorkflowRepo) GetExitInterview(ctx context.Context, workflowID string) (*offboarding.ExitInterview, error) {
	iv, ok := f.interviews[workflowID]
	if !ok {
		return nil, offboarding.ErrInterviewNotFound
	}
	return iv, nil
}

func (f *fakeWorkflowRepo) SubmitExitInterview(ctx context.Context, workflowID, conductedBy, feedback string, completedAt time.Time) error {
	iv, ok := f.interviews[workflowID]
	if !ok {
		return offboarding.ErrInterviewNotFound
	}
	iv.ConductedBy = &conductedBy
	iv.Feedback = &feedback
	iv.CompletedAt = &completedAt
	return nil
}

func (f *fakeWorkflowRepo) CompleteWorkflow(ctx context.Context, tenantID, id string, completedAt time.Time) error {
	w, ok := f.workflows[id]
	if !ok || w.TenantID != tenantID {
		return offboarding.ErrWorkflowNotFound
	}
	if !w.Active() {
		return offboarding.ErrWorkflowNotActive
	}
	open, _ := f.CountIncompleteItems(ctx, id)
	if open > 0 {
		return offboarding.ErrChecklistIncomplete
	}
	w.Status = offboarding.StatusCompleted
	w.CompletedAt = &completedAt
	f.offboarded[w.EmployeeID] = true
	return nil
}

func (f *fakeWorkflowRepo) ListByLastWorkingDay(ctx context.Context, day time.Time) ([]*offboarding.Workflow, error) {
	var out []*offboarding.Workflow
	for _, w := range f.workflows {
		if w.Active() && w.LastWorkingDay.Equal(day) {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, tenantID, id string) (*employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.TenantID != tenantID {
		return nil, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	return nil, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, tenantID string, page, pageSize int) ([]*employee.Employee, int, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListByManager(ctx context.Context, tenantID, managerEmployeeID string) ([]*employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, tenantID, id string, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) SetEmploymentStatus(ctx context.Context, tenantID, id string, status employee.EmploymentStatus) error {
	return nil
}

func (f *fakeEmployeeRepo) Anonymize(ctx context.Context, tenantID, id string) error { return nil }

type fakeUserRepo struct {
	users []*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, tenantID, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}
func (f *fakeUserRepo) GetByEmailAnyTenant(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}
func (f *fakeUserRepo) ListByRole(ctx context.Context, tenantID string, roles []user.Role) ([]*user.User, error) {
	var out []*user.User
	for _, u := range f.users {
		if u.TenantID != tenantID {
			continue
		}
		for _, r := range roles {
			if u.Role == r {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}
func (f *fakeUserRepo) UpdateRole(ctx context.Context, id string, role user.Role) error { return nil }
func (f *fakeUserRepo) Deactivate(ctx context.Context, id string) error                 { return nil }

type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotifier) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeNotifier) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, reqs...)
	return nil
}

func (f *fakeNotifier) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) GetUnreadCount(ctx context.Context, userID string) (int, error) { return 0, nil }

func (f *fakeNotifier) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	return nil
}

func (f *fakeNotifier) MarkAllAsRead(ctx context.Context, userID string) error { return nil }

func (f *fakeNotifier) Delete(ctx context.Context, userID string, notificationID string) error {
	return nil
}

func (f *fakeNotifier) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	ch := make(chan notification.SSEEvent)
	return ch, func() {}
}

func (f *fakeNotifier) Stop() {}

type fakeAuditRepo struct {
	events []*audit.Event
}

func (f *fakeAuditRepo) Record(ctx context.Context, e *audit.Event) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, tenantID string, page, pageSize int) ([]*audit.Event, int, error) {
	return nil, 0, nil
}

func (f *fakeAuditRepo) ListByTarget(ctx context.Context, tenantID, targetType, targetID string) ([]*audit.Event, error) {
	return nil, nil
}

type offboardingFixture struct {
	service   offboarding.Service
	workflows *fakeWorkflowRepo
	notifier  *fakeNotifier
	audits    *fakeAuditRepo
}

func newOffboardingFixture(t *testing.T) *offboardingFixture {
	t.Helper()

	employees := &fakeEmployeeRepo{employees: map[string]*employee.Employee{
		leaverEmpID: {
			ID: leaverEmpID, TenantID: testTenantID,
			FirstName: "Tomas", LastName: "Lindqvist",
			EmploymentStatus: employee.StatusActive,
		},
	}}
	users := &fakeUserRepo{users: []*user.User{
		{ID: hrUserID, TenantID: testTenantID, Role: user.RoleHR},
		{ID: "other-admin", TenantID: testTenantID, Role: user.RoleAdmin},
	}}

	workflows := newFakeWorkflowRepo()
	notifier := &fakeNotifier{}
	audits := &fakeAuditRepo{}

	return &offboardingFixture{
		service:   NewOffboardingService(workflows, employees, users, notifier, audits),
		workflows: workflows,
		notifier:  notifier,
		audits:    audits,
	}
}

func hrSession() *session.Session {
	return &session.Session{ID: "sess-hr", TenantID: testTenantID, UserID: hrUserID, Role: user.RoleHR}
}

func employeeSession() *session.Session {
	return &session.Session{ID: "sess-emp", TenantID: testTenantID, UserID: "user-emp", Role: user.RoleEmployee}
}

func initiateRequest() offboarding.InitiateWorkflowRequest {
	return offboarding.InitiateWorkflowRequest{
		EmployeeID:      leaverEmpID,
		TerminationType: string(offboarding.TerminationResignation),
		Reason:          "Accepted another role",
		LastWorkingDay:  "2026-10-30",
	}
}

func TestInitiateWorkflow(t *testing.T) {
	f := newOffboardingFixture(t)
	ctx := context.Background()

	resp, err := f.service.InitiateWorkflow(ctx, hrSession(), initiateRequest())
	require.NoError(t, err)

	assert.Equal(t, leaverEmpID, resp.EmployeeID)
	assert.Equal(t, string(offboarding.StatusPending), resp.Status)
	assert.Len(t, resp.Checklist, 13)

	// HR and admins other than the initiator are notified.
	require.Len(t, f.notifier.queued, 1)
	assert.Equal(t, notification.TypeOffboardingStarted, f.notifier.queued[0].Type)
	assert.Equal(t, "other-admin", f.notifier.queued[0].RecipientID)
}

func TestInitiateWorkflow_DuplicateActive(t *testing.T) {
	f := newOffboardingFixture(t)
	ctx := context.Background()

	_, err := f.service.InitiateWorkflow(ctx, hrSession(), initiateRequest())
	require.NoError(t, err)

	_, err = f.service.InitiateWorkflow(ctx, hrSession(), initiateRequest())
	assert.ErrorIs(t, err, offboarding.ErrWorkflowExists)
}

func TestInitiateWorkflow_EmployeeDenied(t *testing.T) {
	f := newOffboardingFixture(t)

	_, err := f.service.InitiateWorkflow(context.Background(), employeeSession(), initiateRequest())
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestCompleteWorkflow_ChecklistGate(t *testing.T) {
	f := newOffboardingFixture(t)
	ctx := context.Background()
	sess := hrSession()

	resp, err := f.service.InitiateWorkflow(ctx, sess, initiateRequest())
	require.NoError(t, err)

	// Nothing done yet: completion is refused.
	_, err = f.service.CompleteWorkflow(ctx, sess, resp.ID)
	assert.ErrorIs(t, err, offboarding.ErrChecklistIncomplete)

	// Tick off every item but the last.
	items := f.workflows.checklists[resp.ID]
	for _, item := range items[:len(items)-1] {
		_, err := f.service.UpdateChecklistItem(ctx, sess, resp.ID, item.ID, offboarding.UpdateChecklistItemRequest{Completed: true})
		require.NoError(t, err)
	}

	// One open item still blocks.
	_, err = f.service.CompleteWorkflow(ctx, sess, resp.ID)
	assert.ErrorIs(t, err, offboarding.ErrChecklistIncomplete)

	last := items[len(items)-1]
	_, err = f.service.UpdateChecklistItem(ctx, sess, resp.ID, last.ID, offboarding.UpdateChecklistItemRequest{Completed: true})
	require.NoError(t, err)

	completed, err := f.service.CompleteWorkflow(ctx, sess, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(offboarding.StatusCompleted), completed.Status)
	assert.True(t, f.workflows.offboarded[leaverEmpID], "employee flips to offboarded with the workflow")

	require.Len(t, f.audits.events, 1)
	assert.Equal(t, audit.ActionOffboardingComplete, f.audits.events[0].Action)
}

func TestUpdateChecklistItem_PromotesPendingWorkflow(t *testing.T) {
	f := newOffboardingFixture(t)
	ctx := context.Background()
	sess := hrSession()

	created, err := f.service.InitiateWorkflow(ctx, sess, initiateRequest())
	require.NoError(t, err)

	item := f.workflows.checklists[created.ID][0]
	resp, err := f.service.UpdateChecklistItem(ctx, sess, created.ID, item.ID, offboarding.UpdateChecklistItemRequest{Completed: true})
	require.NoError(t, err)

	assert.Equal(t, string(offboarding.StatusInProgress), resp.Status)
	assert.Equal(t, hrUserID, *item.CompletedBy)
}

func TestCancelWorkflow(t *testing.T) {
	f := newOffboardingFixture(t)
	ctx := context.Background()
	sess := hrSession()

	created, err := f.service.InitiateWorkflow(ctx, sess, initiateRequest())
	require.NoError(t, err)

	require.NoError(t, f.service.CancelWorkflow(ctx, sess, created.ID))

	// A cancelled workflow accepts no further mutations.
	item := f.workflows.checklists[created.ID][0]
	_, err = f.service.UpdateChecklistItem(ctx, sess, created.ID, item.ID, offboarding.UpdateChecklistItemRequest{Completed: true})
	assert.ErrorIs(t, err, offboarding.ErrWorkflowNotActive)

	err = f.service.CancelWorkflow(ctx, sess, created.ID)
	assert.ErrorIs(t, err, offboarding.ErrWorkflowNotActive)
}

func TestCheckDeadlines(t *testing.T) {
	f := newOffboardingFixture(t)
	ctx := context.Background()
	sess := hrSession()

	created, err := f.service.InitiateWorkflow(ctx, sess, initiateRequest())
	require.NoError(t, err)

	// Pin the workflow's last working day to a milestone distance from today.
	w := f.workflows.workflows[created.ID]
	w.LastWorkingDay = time.Now().Truncate(24*time.Hour).AddDate(0, 0, 7)

	f.notifier.queued = nil
	sent, err := f.service.CheckDeadlines(ctx)
	require.NoError(t, err)

	// Open items are assigned to hr, admin and manager roles; the fixture has
	// one hr and one admin user.
	assert.Equal(t, 2, sent)
	for _, q := range f.notifier.queued {
		assert.Equal(t, notification.TypeOffboardingMilestone, q.Type)
		assert.False(t, q.IsUrgent, "seven days out is not urgent")
	}
}
