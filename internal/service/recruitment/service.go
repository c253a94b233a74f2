package recruitment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/notification"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/recruitment"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
)

type RecruitmentServiceImpl struct {
	opportunities recruitment.Repository
	users         user.Repository
	notifications notification.Service
	now           func() time.Time
}

func NewRecruitmentService(
	opportunities recruitment.Repository,
	users user.Repository,
	notifications notification.Service,
) recruitment.Service {
	return &RecruitmentServiceImpl{
		opportunities: opportunities,
		users:         users,
		notifications: notifications,
		now:           time.Now,
	}
}

// CreateOpportunity implements recruitment.Service.
func (s *RecruitmentServiceImpl) CreateOpportunity(ctx context.Context, sess *session.Session, req recruitment.CreateOpportunityRequest) (*recruitment.OpportunityResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionRecruitmentManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	o := &recruitment.Opportunity{
		ID:          uuid.New().String(),
		TenantID:    sess.TenantID,
		Title:       req.Title,
		Department:  req.Department,
		Description: req.Description,
		Status:      recruitment.OpportunityOpen,
		CreatedBy:   sess.UserID,
	}
	if err := s.opportunities.CreateOpportunity(ctx, o); err != nil {
		return nil, err
	}

	resp := recruitment.ToOpportunityResponse(o)
	return &resp, nil
}

// GetOpportunity implements recruitment.Service.
func (s *RecruitmentServiceImpl) GetOpportunity(ctx context.Context, sess *session.Session, id string) (*recruitment.OpportunityResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionRecruitmentView) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	o, err := s.opportunities.GetOpportunity(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}

	resp := recruitment.ToOpportunityResponse(o)
	return &resp, nil
}

// ListOpportunities implements recruitment.Service.
func (s *RecruitmentServiceImpl) ListOpportunities(ctx context.Context, sess *session.Session, status *recruitment.OpportunityStatus, page, pageSize int) ([]recruitment.OpportunityResponse, int, error) {
	if !user.HasPermission(sess.Role, user.PermissionRecruitmentView) {
		return nil, 0, user.ErrAdminPrivilegeRequired
	}

	opportunities, total, err := s.opportunities.ListOpportunities(ctx, sess.TenantID, status, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]recruitment.OpportunityResponse, len(opportunities))
	for i, o := range opportunities {
		responses[i] = recruitment.ToOpportunityResponse(o)
	}
	return responses, total, nil
}

// CloseOpportunity implements recruitment.Service. Closing is idempotent
// from the caller's point of view but rejects already-closed positions so
// double submissions surface.
func (s *RecruitmentServiceImpl) CloseOpportunity(ctx context.Context, sess *session.Session, id string) (*recruitment.OpportunityResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionRecruitmentManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	o, err := s.opportunities.GetOpportunity(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}
	if o.Status == recruitment.OpportunityClosed {
		return nil, recruitment.ErrOpportunityClosed
	}

	if err := s.opportunities.SetOpportunityStatus(ctx, sess.TenantID, id, recruitment.OpportunityClosed); err != nil {
		return nil, err
	}
	o.Status = recruitment.OpportunityClosed

	resp := recruitment.ToOpportunityResponse(o)
	return &resp, nil
}

// SubmitApplication implements recruitment.Service. Applications are
// recorded by staff on the candidate's behalf; one application per
// candidate email per opportunity.
func (s *RecruitmentServiceImpl) SubmitApplication(ctx context.Context, sess *session.Session, opportunityID string, req recruitment.CreateApplicationRequest) (*recruitment.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionRecruitmentManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	o, err := s.opportunities.GetOpportunity(ctx, sess.TenantID, opportunityID)
	if err != nil {
		return nil, err
	}
	if o.Status != recruitment.OpportunityOpen {
		return nil, recruitment.ErrOpportunityClosed
	}

	a := &recruitment.Application{
		ID:             uuid.New().String(),
		TenantID:       sess.TenantID,
		OpportunityID:  o.ID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		ResumeURL:      req.ResumeURL,
		Stage:          recruitment.StageApplied,
	}
	if err := s.opportunities.CreateApplication(ctx, a); err != nil {
		return nil, err
	}

	s.notifyReceived(ctx, sess, o, a)

	resp := recruitment.ToApplicationResponse(a)
	return &resp, nil
}

func (s *RecruitmentServiceImpl) notifyReceived(ctx context.Context, sess *session.Session, o *recruitment.Opportunity, a *recruitment.Application) {
	if o.CreatedBy == sess.UserID {
		return
	}
	relatedType := "application"
	_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
		TenantID:    sess.TenantID,
		RecipientID: o.CreatedBy,
		SenderID:    &sess.UserID,
		Type:        notification.TypeApplicationReceived,
		Title:       "New application",
		Message:     fmt.Sprintf("%s applied to %s.", a.CandidateName, o.Title),
		RelatedType: &relatedType,
		RelatedID:   &a.ID,
	})
}

// ListApplications implements recruitment.Service.
func (s *RecruitmentServiceImpl) ListApplications(ctx context.Context, sess *session.Session, opportunityID string) ([]recruitment.ApplicationResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionRecruitmentView) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	if _, err := s.opportunities.GetOpportunity(ctx, sess.TenantID, opportunityID); err != nil {
		return nil, err
	}

	applications, err := s.opportunities.ListApplications(ctx, sess.TenantID, opportunityID)
	if err != nil {
		return nil, err
	}

	responses := make([]recruitment.ApplicationResponse, len(applications))
	for i, a := range applications {
		responses[i] = recruitment.ToApplicationResponse(a)
	}
	return responses, nil
}

// AdvanceApplication implements recruitment.Service. Stage moves follow the
// pipeline graph; anything else is rejected.
func (s *RecruitmentServiceImpl) AdvanceApplication(ctx context.Context, sess *session.Session, id string, req recruitment.AdvanceApplicationRequest) (*recruitment.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionRecruitmentManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	a, err := s.opportunities.GetApplication(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}

	next := recruitment.ApplicationStage(req.Stage)
	if !recruitment.CanAdvance(a.Stage, next) {
		return nil, recruitment.ErrInvalidStage
	}

	if err := s.opportunities.SetApplicationStage(ctx, sess.TenantID, a.ID, next, req.Notes); err != nil {
		return nil, err
	}
	a.Stage = next
	if req.Notes != nil {
		a.Notes = req.Notes
	}

	s.notifyAdvanced(ctx, sess, a)

	resp := recruitment.ToApplicationResponse(a)
	return &resp, nil
}

func (s *RecruitmentServiceImpl) notifyAdvanced(ctx context.Context, sess *session.Session, a *recruitment.Application) {
	o, err := s.opportunities.GetOpportunity(ctx, sess.TenantID, a.OpportunityID)
	if err != nil || o.CreatedBy == sess.UserID {
		return
	}
	relatedType := "application"
	_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
		TenantID:    sess.TenantID,
		RecipientID: o.CreatedBy,
		SenderID:    &sess.UserID,
		Type:        notification.TypeApplicationAdvanced,
		Title:       "Application moved",
		Message:     fmt.Sprintf("%s moved to %s for %s.", a.CandidateName, a.Stage, o.Title),
		RelatedType: &relatedType,
		RelatedID:   &a.ID,
	})
}
