package recruitment

import "context"

// Repository defines the recruitment repository interface
type Repository interface {
	CreateOpportunity(ctx context.Context, o *Opportunity) error
	GetOpportunity(ctx context.Context, tenantID, id string) (*Opportunity, error)
	ListOpportunities(ctx context.Context, tenantID string, status *OpportunityStatus, page, pageSize int) ([]*Opportunity, int, error)
	SetOpportunityStatus(ctx context.Context, tenantID, id string, status OpportunityStatus) error

	// CreateApplication returns ErrDuplicateApplication when the
	// (opportunity, candidate_email) pair already exists; the repository
	// maps the unique-constraint violation.
	CreateApplication(ctx context.Context, a *Application) error
	GetApplication(ctx context.Context, tenantID, id string) (*Application, error)
	ListApplications(ctx context.Context, tenantID, opportunityID string) ([]*Application, error)
	SetApplicationStage(ctx context.Context, tenantID, id string, stage ApplicationStage, notes *string) error
}
