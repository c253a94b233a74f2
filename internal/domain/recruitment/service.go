package recruitment

import (
	"context"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
)

// Service defines the recruitment service interface
type Service interface {
	CreateOpportunity(ctx context.Context, sess *session.Session, req CreateOpportunityRequest) (*OpportunityResponse, error)
	GetOpportunity(ctx context.Context, sess *session.Session, id string) (*OpportunityResponse, error)
	ListOpportunities(ctx context.Context, sess *session.Session, status *OpportunityStatus, page, pageSize int) ([]OpportunityResponse, int, error)
	CloseOpportunity(ctx context.Context, sess *session.Session, id string) (*OpportunityResponse, error)

	SubmitApplication(ctx context.Context, sess *session.Session, opportunityID string, req CreateApplicationRequest) (*ApplicationResponse, error)
	ListApplications(ctx context.Context, sess *session.Session, opportunityID string) ([]ApplicationResponse, error)
	AdvanceApplication(ctx context.Context, sess *session.Session, id string, req AdvanceApplicationRequest) (*ApplicationResponse, error)
}
