package review

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/audit"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/employee"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/notification"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/review"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
)

const (
	testTenantID   = "0190aaaa-0000-7000-8000-000000000001"
	managerUserID  = "0190aaaa-0000-7000-8000-000000000010"
	managerEmpID   = "0190aaaa-0000-7000-8000-000000000011"
	reportUserID   = "0190aaaa-0000-7000-8000-000000000020"
	reportEmpID    = "0190aaaa-0000-7000-8000-000000000021"
	outsiderEmpID  = "0190aaaa-0000-7000-8000-000000000031"
	adminUserID    = "0190aaaa-0000-7000-8000-000000000040"
	fridayThisWeek = "2026-02-06"
)

// fakeReviewRepo is an in-memory review.Repository.
type fakeReviewRepo struct {
	reviews map[string]*review.Review
	nextID  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*review.Review{}}
}

func (f *fakeReviewRepo) Create(ctx context.Context, r *review.Review) error {
	f.nextID++
	r.ID = fmt.Sprintf("review-%d", f.nextID)
	r.CreatedAt = time.Now()
	cp := *r
	f.reviews[r.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, tenantID, id string) (*review.Review, error) {
	r, ok := f.reviews[id]
	if !ok || r.TenantID != tenantID {
		return nil, review.ErrReviewNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewRepo) GetWeekPair(ctx context.Context, tenantID, employeeID string, weekEnding time.Time) (*review.Review, *review.Review, error) {
	var manager, self *review.Review
	for _, r := range f.reviews {
		if r.TenantID != tenantID || r.EmployeeID != employeeID || !r.ReviewDate.Equal(weekEnding) {
			continue
		}
		cp := *r
		if r.IsSelfAssessment {
			self = &cp
		} else {
			manager = &cp
		}
	}
	return manager, self, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, tenantID, id string, req review.UpdateReviewRequest) error {
	r, ok := f.reviews[id]
	if !ok || r.TenantID != tenantID {
		return review.ErrReviewNotFound
	}
	if req.Ratings != nil {
		r.Ratings = *req.Ratings
	}
	if req.Goals != nil {
		r.Goals = *req.Goals
	}
	if req.Achievements != nil {
		r.Achievements = *req.Achievements
	}
	if req.AreasForImprovement != nil {
		r.AreasForImprovement = *req.AreasForImprovement
	}
	return nil
}

func (f *fakeReviewRepo) Commit(ctx context.Context, tenantID, id string, committedAt time.Time) (bool, error) {
	r, ok := f.reviews[id]
	if !ok || r.TenantID != tenantID || r.IsCommitted {
		return false, nil
	}
	r.IsCommitted = true
	r.CommittedAt = &committedAt
	return true, nil
}

func (f *fakeReviewRepo) Uncommit(ctx context.Context, tenantID, id string) (bool, error) {
	r, ok := f.reviews[id]
	if !ok || r.TenantID != tenantID || !r.IsCommitted {
		return false, nil
	}
	r.IsCommitted = false
	r.CommittedAt = nil
	return true, nil
}

func (f *fakeReviewRepo) ListByEmployee(ctx context.Context, tenantID, employeeID string, page, pageSize int) ([]*review.Review, int, error) {
	var out []*review.Review
	for _, r := range f.reviews {
		if r.TenantID == tenantID && r.EmployeeID == employeeID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (f *fakeReviewRepo) ListByReviewer(ctx context.Context, tenantID, reviewerID string, page, pageSize int) ([]*review.Review, int, error) {
	var out []*review.Review
	for _, r := range f.reviews {
		if r.TenantID == tenantID && r.ReviewerID == reviewerID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

// fakeEmployeeRepo is an in-memory employee.Repository.
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
	for _, e := range f.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
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

// fakeNotifier records queued notifications.
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

func (f *fakeNotifier) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

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

func (f *fakeNotifier) byType(t notification.NotificationType) []notification.CreateNotificationRequest {
	var out []notification.CreateNotificationRequest
	for _, q := range f.queued {
		if q.Type == t {
			out = append(out, q)
		}
	}
	return out
}

// fakeAuditRepo records audit events.
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

type reviewFixture struct {
	service  review.Service
	reviews  *fakeReviewRepo
	notifier *fakeNotifier
	audits   *fakeAuditRepo
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	mgrUser := managerUserID
	repUser := reportUserID
	mgrEmp := managerEmpID

	employees := &fakeEmployeeRepo{employees: map[string]*employee.Employee{
		managerEmpID: {
			ID: managerEmpID, TenantID: testTenantID, UserID: &mgrUser,
			FirstName: "Mara", LastName: "Voss", EmploymentStatus: employee.StatusActive,
		},
		reportEmpID: {
			ID: reportEmpID, TenantID: testTenantID, UserID: &repUser, ManagerID: &mgrEmp,
			FirstName: "Idris", LastName: "Kane", EmploymentStatus: employee.StatusActive,
		},
		outsiderEmpID: {
			ID: outsiderEmpID, TenantID: testTenantID,
			FirstName: "Nobody", LastName: "Reports", EmploymentStatus: employee.StatusActive,
		},
	}}

	reviews := newFakeReviewRepo()
	notifier := &fakeNotifier{}
	audits := &fakeAuditRepo{}

	return &reviewFixture{
		service:  NewReviewService(reviews, employees, notifier, audits),
		reviews:  reviews,
		notifier: notifier,
		audits:   audits,
	}
}

func managerSession() *session.Session {
	empID := managerEmpID
	return &session.Session{
		ID: "sess-manager", TenantID: testTenantID, UserID: managerUserID,
		EmployeeID: &empID, Role: user.RoleManager,
	}
}

func reportSession() *session.Session {
	empID := reportEmpID
	return &session.Session{
		ID: "sess-report", TenantID: testTenantID, UserID: reportUserID,
		EmployeeID: &empID, Role: user.RoleEmployee,
	}
}

func adminSession() *session.Session {
	return &session.Session{
		ID: "sess-admin", TenantID: testTenantID, UserID: adminUserID,
		Role: user.RoleAdmin,
	}
}

func goodRatings() review.Ratings {
	return review.Ratings{TasksCompleted: 7, WorkVolume: 6, ProblemSolving: 8, Communication: 7, Leadership: 5}
}

func TestCreateManagerReview(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	resp, err := f.service.CreateManagerReview(ctx, managerSession(), review.CreateReviewRequest{
		EmployeeID: reportEmpID,
		ReviewDate: fridayThisWeek,
		Ratings:    goodRatings(),
		Goals:      "Ship the billing migration",
	})
	require.NoError(t, err)

	assert.Equal(t, reportEmpID, resp.EmployeeID)
	assert.Equal(t, fridayThisWeek, resp.ReviewDate)
	assert.False(t, resp.IsCommitted)
	require.NotNil(t, resp.Ratings, "authors always see their own ratings")
	assert.Equal(t, 7, resp.Ratings.TasksCompleted)
}

func TestCreateManagerReview_RejectsNonFriday(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.CreateManagerReview(context.Background(), managerSession(), review.CreateReviewRequest{
		EmployeeID: reportEmpID,
		ReviewDate: "2026-02-04",
		Ratings:    goodRatings(),
	})
	require.Error(t, err)
}

func TestCreateManagerReview_NotYourReport(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.CreateManagerReview(context.Background(), managerSession(), review.CreateReviewRequest{
		EmployeeID: outsiderEmpID,
		ReviewDate: fridayThisWeek,
		Ratings:    goodRatings(),
	})
	assert.ErrorIs(t, err, employee.ErrNotYourReport)
}

func TestCreateManagerReview_EmployeeRoleDenied(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.CreateManagerReview(context.Background(), reportSession(), review.CreateReviewRequest{
		EmployeeID: reportEmpID,
		ReviewDate: fridayThisWeek,
		Ratings:    goodRatings(),
	})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestCreateManagerReview_DuplicateDraft(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	req := review.CreateReviewRequest{EmployeeID: reportEmpID, ReviewDate: fridayThisWeek, Ratings: goodRatings()}
	_, err := f.service.CreateManagerReview(ctx, managerSession(), req)
	require.NoError(t, err)

	_, err = f.service.CreateManagerReview(ctx, managerSession(), req)
	assert.ErrorIs(t, err, review.ErrDraftExists)
}

func TestBlindReviewFlow(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	mgrResp, err := f.service.CreateManagerReview(ctx, managerSession(), review.CreateReviewRequest{
		EmployeeID: reportEmpID, ReviewDate: fridayThisWeek, Ratings: goodRatings(),
	})
	require.NoError(t, err)

	selfResp, err := f.service.CreateSelfReflection(ctx, reportSession(), review.CreateSelfReflectionRequest{
		ReviewDate: fridayThisWeek,
		Ratings:    review.Ratings{TasksCompleted: 9, WorkVolume: 9, ProblemSolving: 9, Communication: 9, Leadership: 9},
	})
	require.NoError(t, err)

	// Uncommitted: the subject cannot see the manager's ratings.
	seen, err := f.service.GetReview(ctx, reportSession(), mgrResp.ID)
	require.NoError(t, err)
	assert.Nil(t, seen.Ratings, "ratings stay hidden before reveal")

	// First commit nudges the counterpart.
	_, err = f.service.CommitReview(ctx, managerSession(), mgrResp.ID)
	require.NoError(t, err)

	awaited := f.notifier.byType(notification.TypeReviewAwaited)
	require.Len(t, awaited, 1)
	assert.Equal(t, reportUserID, awaited[0].RecipientID)
	assert.Empty(t, f.notifier.byType(notification.TypeReviewRevealed))

	// Still blind until the second side commits, for the author too.
	seen, err = f.service.GetReview(ctx, reportSession(), mgrResp.ID)
	require.NoError(t, err)
	assert.Nil(t, seen.Ratings)

	seen, err = f.service.GetReview(ctx, managerSession(), mgrResp.ID)
	require.NoError(t, err)
	assert.Nil(t, seen.Ratings, "committed numbers are blind even to their author")

	// Second commit reveals to both parties.
	_, err = f.service.CommitReview(ctx, reportSession(), selfResp.ID)
	require.NoError(t, err)

	revealed := f.notifier.byType(notification.TypeReviewRevealed)
	require.Len(t, revealed, 2)
	recipients := []string{revealed[0].RecipientID, revealed[1].RecipientID}
	assert.ElementsMatch(t, []string{managerUserID, reportUserID}, recipients)

	seen, err = f.service.GetReview(ctx, reportSession(), mgrResp.ID)
	require.NoError(t, err)
	require.NotNil(t, seen.Ratings, "ratings revealed once both sides committed")
	assert.Equal(t, 7, seen.Ratings.TasksCompleted)

	seen, err = f.service.GetReview(ctx, managerSession(), selfResp.ID)
	require.NoError(t, err)
	require.NotNil(t, seen.Ratings)
	assert.Equal(t, 9, seen.Ratings.TasksCompleted)
}

func TestCommitReview_Idempotence(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	resp, err := f.service.CreateManagerReview(ctx, managerSession(), review.CreateReviewRequest{
		EmployeeID: reportEmpID, ReviewDate: fridayThisWeek, Ratings: goodRatings(),
	})
	require.NoError(t, err)

	_, err = f.service.CommitReview(ctx, managerSession(), resp.ID)
	require.NoError(t, err)

	_, err = f.service.CommitReview(ctx, managerSession(), resp.ID)
	assert.ErrorIs(t, err, review.ErrAlreadyCommitted)
}

func TestCommitReview_AuthorOnly(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	resp, err := f.service.CreateManagerReview(ctx, managerSession(), review.CreateReviewRequest{
		EmployeeID: reportEmpID, ReviewDate: fridayThisWeek, Ratings: goodRatings(),
	})
	require.NoError(t, err)

	_, err = f.service.CommitReview(ctx, reportSession(), resp.ID)
	assert.ErrorIs(t, err, review.ErrNotAuthor)
}

func TestUpdateReview_CommittedIsImmutable(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	resp, err := f.service.CreateManagerReview(ctx, managerSession(), review.CreateReviewRequest{
		EmployeeID: reportEmpID, ReviewDate: fridayThisWeek, Ratings: goodRatings(),
	})
	require.NoError(t, err)

	goals := "Revised goals"
	updated, err := f.service.UpdateReview(ctx, managerSession(), resp.ID, review.UpdateReviewRequest{Goals: &goals})
	require.NoError(t, err)
	assert.Equal(t, "Revised goals", updated.Goals)

	_, err = f.service.CommitReview(ctx, managerSession(), resp.ID)
	require.NoError(t, err)

	_, err = f.service.UpdateReview(ctx, managerSession(), resp.ID, review.UpdateReviewRequest{Goals: &goals})
	assert.ErrorIs(t, err, review.ErrReviewImmutable)
}

func TestUncommitReview(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	mgrResp, err := f.service.CreateManagerReview(ctx, managerSession(), review.CreateReviewRequest{
		EmployeeID: reportEmpID, ReviewDate: fridayThisWeek, Ratings: goodRatings(),
	})
	require.NoError(t, err)
	selfResp, err := f.service.CreateSelfReflection(ctx, reportSession(), review.CreateSelfReflectionRequest{
		ReviewDate: fridayThisWeek, Ratings: goodRatings(),
	})
	require.NoError(t, err)

	_, err = f.service.CommitReview(ctx, managerSession(), mgrResp.ID)
	require.NoError(t, err)
	_, err = f.service.CommitReview(ctx, reportSession(), selfResp.ID)
	require.NoError(t, err)

	// Non-admins cannot reopen.
	_, err = f.service.UncommitReview(ctx, managerSession(), mgrResp.ID)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	reopened, err := f.service.UncommitReview(ctx, adminSession(), mgrResp.ID)
	require.NoError(t, err)
	assert.False(t, reopened.IsCommitted)

	// The pair is blind again for the non-author.
	seen, err := f.service.GetReview(ctx, reportSession(), mgrResp.ID)
	require.NoError(t, err)
	assert.Nil(t, seen.Ratings)

	require.Len(t, f.audits.events, 1)
	assert.Equal(t, audit.ActionReviewUncommitted, f.audits.events[0].Action)
	assert.Equal(t, adminUserID, f.audits.events[0].ActorID)
	assert.Equal(t, mgrResp.ID, f.audits.events[0].TargetID)

	hidden := f.notifier.byType(notification.TypeReviewUncommitted)
	require.Len(t, hidden, 2)
	assert.True(t, hidden[0].IsUrgent)
}

func TestGetMyReflectionStatus_CommittedSelfStaysBlind(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	selfResp, err := f.service.CreateSelfReflection(ctx, reportSession(), review.CreateSelfReflectionRequest{
		ReviewDate: fridayThisWeek, Ratings: goodRatings(),
	})
	require.NoError(t, err)

	// Drafts stay visible to their author.
	status, err := f.service.GetMyReflectionStatus(ctx, reportSession(), fridayThisWeek)
	require.NoError(t, err)
	require.NotNil(t, status.SelfReflection)
	assert.NotNil(t, status.SelfReflection.Ratings)

	_, err = f.service.CommitReview(ctx, reportSession(), selfResp.ID)
	require.NoError(t, err)

	// Committed but not yet revealed: the numbers go blind for the author too.
	status, err = f.service.GetMyReflectionStatus(ctx, reportSession(), fridayThisWeek)
	require.NoError(t, err)
	assert.True(t, status.SelfCommitted)
	assert.False(t, status.Revealed)
	require.NotNil(t, status.SelfReflection)
	assert.Nil(t, status.SelfReflection.Ratings)

	mgrResp, err := f.service.CreateManagerReview(ctx, managerSession(), review.CreateReviewRequest{
		EmployeeID: reportEmpID, ReviewDate: fridayThisWeek, Ratings: goodRatings(),
	})
	require.NoError(t, err)
	_, err = f.service.CommitReview(ctx, managerSession(), mgrResp.ID)
	require.NoError(t, err)

	status, err = f.service.GetMyReflectionStatus(ctx, reportSession(), fridayThisWeek)
	require.NoError(t, err)
	assert.True(t, status.Revealed)
	require.NotNil(t, status.SelfReflection)
	assert.NotNil(t, status.SelfReflection.Ratings)
	require.NotNil(t, status.ManagerReview)
	assert.NotNil(t, status.ManagerReview.Ratings)
}

func TestListEmployeeReviews_RevealSpansPages(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	mgrResp, err := f.service.CreateManagerReview(ctx, managerSession(), review.CreateReviewRequest{
		EmployeeID: reportEmpID, ReviewDate: fridayThisWeek, Ratings: goodRatings(),
	})
	require.NoError(t, err)
	selfResp, err := f.service.CreateSelfReflection(ctx, reportSession(), review.CreateSelfReflectionRequest{
		ReviewDate: fridayThisWeek, Ratings: goodRatings(),
	})
	require.NoError(t, err)

	_, err = f.service.CommitReview(ctx, managerSession(), mgrResp.ID)
	require.NoError(t, err)
	_, err = f.service.CommitReview(ctx, reportSession(), selfResp.ID)
	require.NoError(t, err)

	// With one row per page the pair straddles a page boundary. Reveal must
	// still see the full week, not just the rows on the page.
	for page := 1; page <= 2; page++ {
		rows, total, err := f.service.ListEmployeeReviews(ctx, reportSession(), reportEmpID, page, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, rows, 1)
		assert.NotNil(t, rows[0].Ratings, "revealed week must stay revealed on page %d", page)
	}
}

func TestGetMyReflectionStatus(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	status, err := f.service.GetMyReflectionStatus(ctx, reportSession(), fridayThisWeek)
	require.NoError(t, err)
	assert.Equal(t, "no_review", status.State)
	assert.False(t, status.SelfSubmitted)

	_, err = f.service.CreateSelfReflection(ctx, reportSession(), review.CreateSelfReflectionRequest{
		ReviewDate: fridayThisWeek, Ratings: goodRatings(),
	})
	require.NoError(t, err)

	status, err = f.service.GetMyReflectionStatus(ctx, reportSession(), fridayThisWeek)
	require.NoError(t, err)
	assert.Equal(t, "self_draft", status.State)
	assert.True(t, status.SelfSubmitted)
	assert.False(t, status.Revealed)
	require.NotNil(t, status.SelfReflection)
	assert.Nil(t, status.ManagerReview)

	_, err = f.service.GetMyReflectionStatus(ctx, reportSession(), "2026-02-04")
	assert.ErrorIs(t, err, review.ErrInvalidWeekEnding)
}
