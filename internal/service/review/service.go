package review

import (
	"context"
	"fmt"
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/audit"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/employee"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/notification"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/review"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/validator"
)

type ReviewServiceImpl struct {
	reviews       review.Repository
	employees     employee.Repository
	notifications notification.Service
	auditTrail    audit.Repository
	now           func() time.Time
}

func NewReviewService(
	reviews review.Repository,
	employees employee.Repository,
	notifications notification.Service,
	auditTrail audit.Repository,
) review.Service {
	return &ReviewServiceImpl{
		reviews:       reviews,
		employees:     employees,
		notifications: notifications,
		auditTrail:    auditTrail,
		now:           time.Now,
	}
}

// CreateManagerReview implements review.Service. Managers may only review
// their own reports; admins may review anyone.
func (s *ReviewServiceImpl) CreateManagerReview(ctx context.Context, sess *session.Session, req review.CreateReviewRequest) (*review.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionReviewCreate) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	emp, err := s.employees.GetByID(ctx, sess.TenantID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if sess.Role == user.RoleManager {
		if sess.EmployeeID == nil || !emp.IsManagedBy(*sess.EmployeeID) {
			return nil, employee.ErrNotYourReport
		}
	}

	weekEnding, _ := validator.IsWeekEndingDate(req.ReviewDate)

	manager, self, err := s.reviews.GetWeekPair(ctx, sess.TenantID, emp.ID, weekEnding)
	if err != nil {
		return nil, err
	}
	if err := review.DeriveWeekState(manager, self).CanCreate(review.SideManager); err != nil {
		return nil, err
	}

	rev := &review.Review{
		TenantID:            sess.TenantID,
		EmployeeID:          emp.ID,
		ReviewerID:          sess.UserID,
		ReviewDate:          weekEnding,
		Ratings:             req.Ratings,
		Goals:               req.Goals,
		Achievements:        req.Achievements,
		AreasForImprovement: req.AreasForImprovement,
		IsSelfAssessment:    false,
	}
	if err := s.reviews.Create(ctx, rev); err != nil {
		return nil, err
	}

	resp := review.ToResponse(rev, true)
	return &resp, nil
}

// CreateSelfReflection implements review.Service. Only for the caller's own
// employee record.
func (s *ReviewServiceImpl) CreateSelfReflection(ctx context.Context, sess *session.Session, req review.CreateSelfReflectionRequest) (*review.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if sess.EmployeeID == nil {
		return nil, review.ErrNoEmployeeRecord
	}

	weekEnding, _ := validator.IsWeekEndingDate(req.ReviewDate)

	manager, self, err := s.reviews.GetWeekPair(ctx, sess.TenantID, *sess.EmployeeID, weekEnding)
	if err != nil {
		return nil, err
	}
	if err := review.DeriveWeekState(manager, self).CanCreate(review.SideSelf); err != nil {
		return nil, err
	}

	rev := &review.Review{
		TenantID:            sess.TenantID,
		EmployeeID:          *sess.EmployeeID,
		ReviewerID:          sess.UserID,
		ReviewDate:          weekEnding,
		Ratings:             req.Ratings,
		Goals:               req.Goals,
		Achievements:        req.Achievements,
		AreasForImprovement: req.AreasForImprovement,
		IsSelfAssessment:    true,
	}
	if err := s.reviews.Create(ctx, rev); err != nil {
		return nil, err
	}

	resp := review.ToResponse(rev, true)
	return &resp, nil
}

// UpdateReview implements review.Service. Drafts only, author only.
func (s *ReviewServiceImpl) UpdateReview(ctx context.Context, sess *session.Session, reviewID string, req review.UpdateReviewRequest) (*review.ReviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rev, err := s.reviews.GetByID(ctx, sess.TenantID, reviewID)
	if err != nil {
		return nil, err
	}
	if !rev.AuthoredBy(sess.UserID) {
		return nil, review.ErrNotAuthor
	}
	if rev.IsCommitted {
		return nil, review.ErrReviewImmutable
	}

	if err := s.reviews.Update(ctx, sess.TenantID, reviewID, req); err != nil {
		return nil, err
	}

	rev, err = s.reviews.GetByID(ctx, sess.TenantID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := review.ToResponse(rev, true)
	return &resp, nil
}

// CommitReview implements review.Service. The storage-level conditional
// update is the only committer; two concurrent requests cannot both win.
func (s *ReviewServiceImpl) CommitReview(ctx context.Context, sess *session.Session, reviewID string) (*review.ReviewResponse, error) {
	rev, err := s.reviews.GetByID(ctx, sess.TenantID, reviewID)
	if err != nil {
		return nil, err
	}
	if !rev.AuthoredBy(sess.UserID) {
		return nil, review.ErrNotAuthor
	}

	committedAt := s.now()
	won, err := s.reviews.Commit(ctx, sess.TenantID, reviewID, committedAt)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, review.ErrAlreadyCommitted
	}
	rev.IsCommitted = true
	rev.CommittedAt = &committedAt

	manager, self, err := s.reviews.GetWeekPair(ctx, sess.TenantID, rev.EmployeeID, rev.ReviewDate)
	if err != nil {
		return nil, err
	}
	// Replay the transition on the pre-commit state to recover its effects
	// for the notification fan-out. The commit itself already happened above.
	prior := review.DeriveWeekState(manager, self)
	if rev.Side() == review.SideSelf {
		prior.Self = review.SideDraft
	} else {
		prior.Manager = review.SideDraft
	}
	next, effects, _ := prior.Commit(rev.Side())
	s.notifyCommit(ctx, sess, rev, effects)

	resp := review.ToResponse(rev, next.Revealed())
	return &resp, nil
}

// UncommitReview implements review.Service. Admin only; leaves an audit
// record and re-hides the pair when it was revealed.
func (s *ReviewServiceImpl) UncommitReview(ctx context.Context, sess *session.Session, reviewID string) (*review.ReviewResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionReviewUncommit) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	rev, err := s.reviews.GetByID(ctx, sess.TenantID, reviewID)
	if err != nil {
		return nil, err
	}

	manager, self, err := s.reviews.GetWeekPair(ctx, sess.TenantID, rev.EmployeeID, rev.ReviewDate)
	if err != nil {
		return nil, err
	}
	state := review.DeriveWeekState(manager, self)
	_, effects, err := state.Uncommit(rev.Side())
	if err != nil {
		return nil, err
	}

	won, err := s.reviews.Uncommit(ctx, sess.TenantID, reviewID)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, review.ErrNotCommitted
	}
	rev.IsCommitted = false
	rev.CommittedAt = nil

	if err := s.auditTrail.Record(ctx, &audit.Event{
		TenantID:   sess.TenantID,
		ActorID:    sess.UserID,
		Action:     audit.ActionReviewUncommitted,
		TargetType: "review",
		TargetID:   rev.ID,
		Details: map[string]interface{}{
			"employee_id": rev.EmployeeID,
			"review_date": rev.ReviewDate.Format("2006-01-02"),
			"side":        rev.Side().String(),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to record audit event: %w", err)
	}

	for _, effect := range effects {
		if effect == review.EffectHiddenAgain {
			s.notifyHiddenAgain(ctx, sess, rev)
		}
	}

	// The reopened side is a draft again, visible only to its author.
	resp := review.ToResponse(rev, rev.AuthoredBy(sess.UserID))
	return &resp, nil
}

// GetReview implements review.Service. Authors see their own drafts; once a
// side is committed its ratings are withheld from everyone, the author
// included, until the week's pair is revealed.
func (s *ReviewServiceImpl) GetReview(ctx context.Context, sess *session.Session, reviewID string) (*review.ReviewResponse, error) {
	rev, err := s.reviews.GetByID(ctx, sess.TenantID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := s.canSee(ctx, sess, rev); err != nil {
		return nil, err
	}

	manager, self, err := s.reviews.GetWeekPair(ctx, sess.TenantID, rev.EmployeeID, rev.ReviewDate)
	if err != nil {
		return nil, err
	}
	revealed := review.DeriveWeekState(manager, self).Revealed()

	resp := review.ToResponse(rev, revealed || (!rev.IsCommitted && rev.AuthoredBy(sess.UserID)))
	return &resp, nil
}

// canSee gates review visibility: the author, the subject, their manager and
// HR/admin staff.
func (s *ReviewServiceImpl) canSee(ctx context.Context, sess *session.Session, rev *review.Review) error {
	if rev.AuthoredBy(sess.UserID) {
		return nil
	}
	if sess.EmployeeID != nil && *sess.EmployeeID == rev.EmployeeID {
		return nil
	}
	if user.HasPermission(sess.Role, user.PermissionReviewViewTeam) {
		if sess.Role != user.RoleManager {
			return nil
		}
		emp, err := s.employees.GetByID(ctx, sess.TenantID, rev.EmployeeID)
		if err != nil {
			return err
		}
		if sess.EmployeeID != nil && emp.IsManagedBy(*sess.EmployeeID) {
			return nil
		}
	}
	return review.ErrReviewNotFound
}

// ListEmployeeReviews implements review.Service.
func (s *ReviewServiceImpl) ListEmployeeReviews(ctx context.Context, sess *session.Session, employeeID string, page, pageSize int) ([]review.ReviewResponse, int, error) {
	own := sess.EmployeeID != nil && *sess.EmployeeID == employeeID
	if !own {
		if !user.HasPermission(sess.Role, user.PermissionReviewViewTeam) {
			return nil, 0, user.ErrAdminPrivilegeRequired
		}
		if sess.Role == user.RoleManager {
			emp, err := s.employees.GetByID(ctx, sess.TenantID, employeeID)
			if err != nil {
				return nil, 0, err
			}
			if sess.EmployeeID == nil || !emp.IsManagedBy(*sess.EmployeeID) {
				return nil, 0, employee.ErrNotYourReport
			}
		}
	}

	reviews, total, err := s.reviews.ListByEmployee(ctx, sess.TenantID, employeeID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	// Reveal week by week: both sides of a week unlock together. The page may
	// hold only half of a pair, so each week's state comes from the full pair,
	// not from the rows on the page.
	revealedWeeks := map[string]bool{}
	for _, rev := range reviews {
		week := rev.ReviewDate.Format("2006-01-02")
		if _, seen := revealedWeeks[week]; seen {
			continue
		}
		manager, self, err := s.reviews.GetWeekPair(ctx, sess.TenantID, employeeID, rev.ReviewDate)
		if err != nil {
			return nil, 0, err
		}
		revealedWeeks[week] = review.DeriveWeekState(manager, self).Revealed()
	}

	responses := make([]review.ReviewResponse, len(reviews))
	for i, rev := range reviews {
		revealed := revealedWeeks[rev.ReviewDate.Format("2006-01-02")]
		responses[i] = review.ToResponse(rev, revealed || (!rev.IsCommitted && rev.AuthoredBy(sess.UserID)))
	}

	return responses, total, nil
}

// GetMyReflectionStatus implements review.Service.
func (s *ReviewServiceImpl) GetMyReflectionStatus(ctx context.Context, sess *session.Session, weekEnding string) (*review.ReflectionStatusResponse, error) {
	if sess.EmployeeID == nil {
		return nil, review.ErrNoEmployeeRecord
	}

	var week time.Time
	if weekEnding == "" {
		week = validator.WeekEnding(s.now())
	} else {
		var ok bool
		week, ok = validator.IsWeekEndingDate(weekEnding)
		if !ok {
			return nil, review.ErrInvalidWeekEnding
		}
	}

	manager, self, err := s.reviews.GetWeekPair(ctx, sess.TenantID, *sess.EmployeeID, week)
	if err != nil {
		return nil, err
	}
	state := review.DeriveWeekState(manager, self)
	revealed := state.Revealed()

	resp := &review.ReflectionStatusResponse{
		WeekEnding:       week.Format("2006-01-02"),
		State:            state.Label(),
		SelfSubmitted:    self != nil,
		SelfCommitted:    self != nil && self.IsCommitted,
		ManagerSubmitted: manager != nil,
		ManagerCommitted: manager != nil && manager.IsCommitted,
		Revealed:         revealed,
	}
	if self != nil {
		r := review.ToResponse(self, revealed || (!self.IsCommitted && self.AuthoredBy(sess.UserID)))
		resp.SelfReflection = &r
	}
	if manager != nil {
		r := review.ToResponse(manager, revealed)
		resp.ManagerReview = &r
	}

	return resp, nil
}

// notifyCommit fans out the effects of a successful commit.
func (s *ReviewServiceImpl) notifyCommit(ctx context.Context, sess *session.Session, rev *review.Review, effects []review.Effect) {
	emp, err := s.employees.GetByID(ctx, sess.TenantID, rev.EmployeeID)
	if err != nil {
		return
	}

	week := rev.ReviewDate.Format("2006-01-02")
	relatedType := "review"

	for _, effect := range effects {
		switch effect {
		case review.EffectCounterpartAwaited:
			// Nudge whichever party has not committed yet.
			if recipient := s.counterpartUserID(ctx, sess, rev, emp); recipient != "" {
				_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
					TenantID:    sess.TenantID,
					RecipientID: recipient,
					SenderID:    &sess.UserID,
					Type:        notification.TypeReviewAwaited,
					Title:       "Review awaiting your side",
					Message:     fmt.Sprintf("The other half of the week ending %s has been committed. Commit yours to reveal both.", week),
					RelatedType: &relatedType,
					RelatedID:   &rev.ID,
				})
			}
		case review.EffectRevealed:
			recipients := s.pairUserIDs(ctx, sess, rev, emp)
			for _, recipient := range recipients {
				_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
					TenantID:    sess.TenantID,
					RecipientID: recipient,
					Type:        notification.TypeReviewRevealed,
					Title:       "Weekly review revealed",
					Message:     fmt.Sprintf("Both sides for the week ending %s are committed. Ratings are now visible.", week),
					RelatedType: &relatedType,
					RelatedID:   &rev.ID,
				})
			}
		}
	}
}

func (s *ReviewServiceImpl) notifyHiddenAgain(ctx context.Context, sess *session.Session, rev *review.Review) {
	emp, err := s.employees.GetByID(ctx, sess.TenantID, rev.EmployeeID)
	if err != nil {
		return
	}
	relatedType := "review"
	for _, recipient := range s.pairUserIDs(ctx, sess, rev, emp) {
		_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
			TenantID:    sess.TenantID,
			RecipientID: recipient,
			SenderID:    &sess.UserID,
			Type:        notification.TypeReviewUncommitted,
			Title:       "Review reopened",
			Message:     fmt.Sprintf("An administrator reopened a review for the week ending %s. Ratings are hidden again.", rev.ReviewDate.Format("2006-01-02")),
			RelatedType: &relatedType,
			RelatedID:   &rev.ID,
			IsUrgent:    true,
		})
	}
}

// counterpartUserID resolves who should be nudged after a one-sided commit:
// the subject for a manager commit, the subject's manager for a self commit.
func (s *ReviewServiceImpl) counterpartUserID(ctx context.Context, sess *session.Session, rev *review.Review, emp *employee.Employee) string {
	if rev.IsSelfAssessment {
		if emp.ManagerID == nil {
			return ""
		}
		mgr, err := s.employees.GetByID(ctx, sess.TenantID, *emp.ManagerID)
		if err != nil || mgr.UserID == nil {
			return ""
		}
		return *mgr.UserID
	}
	if emp.UserID == nil {
		return ""
	}
	return *emp.UserID
}

// pairUserIDs resolves both parties of the week's pair.
func (s *ReviewServiceImpl) pairUserIDs(ctx context.Context, sess *session.Session, rev *review.Review, emp *employee.Employee) []string {
	var ids []string
	if emp.UserID != nil {
		ids = append(ids, *emp.UserID)
	}
	if emp.ManagerID != nil {
		if mgr, err := s.employees.GetByID(ctx, sess.TenantID, *emp.ManagerID); err == nil && mgr.UserID != nil {
			ids = append(ids, *mgr.UserID)
		}
	}
	return ids
}
