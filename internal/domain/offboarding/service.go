package offboarding

import (
	"context"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
)

// Service defines the offboarding service interface
type Service interface {
	InitiateWorkflow(ctx context.Context, sess *session.Session, req InitiateWorkflowRequest) (*WorkflowResponse, error)
	GetWorkflow(ctx context.Context, sess *session.Session, id string) (*WorkflowResponse, error)
	ListWorkflows(ctx context.Context, sess *session.Session, status *WorkflowStatus, page, pageSize int) ([]WorkflowResponse, int, error)

	// UpdateChecklistItem toggles an item; the first completion moves a
	// pending workflow to in_progress.
	UpdateChecklistItem(ctx context.Context, sess *session.Session, workflowID, itemID string, req UpdateChecklistItemRequest) (*WorkflowResponse, error)

	// CompleteWorkflow closes the workflow and offboards the employee in one
	// step, gated on every checklist item being done.
	CompleteWorkflow(ctx context.Context, sess *session.Session, id string) (*WorkflowResponse, error)
	CancelWorkflow(ctx context.Context, sess *session.Session, id string) error

	CreateHandoverItem(ctx context.Context, sess *session.Session, workflowID string, req CreateHandoverItemRequest) (*HandoverItem, error)
	ListHandoverItems(ctx context.Context, sess *session.Session, workflowID string) ([]*HandoverItem, error)
	CompleteHandoverItem(ctx context.Context, sess *session.Session, workflowID, itemID string) error

	GetExitInterview(ctx context.Context, sess *session.Session, workflowID string) (*ExitInterview, error)
	SubmitExitInterview(ctx context.Context, sess *session.Session, workflowID string, req SubmitExitInterviewRequest) (*ExitInterview, error)

	// CheckDeadlines sends reminder notifications for workflows whose last
	// working day hits a milestone. The scheduler runs it daily.
	CheckDeadlines(ctx context.Context) (int, error)
}
