package offboarding

import (
	"context"
	"time"
)

// Repository defines the offboarding repository interface
type Repository interface {
	// CreateWorkflow persists the workflow together with its checklist items
	// and exit-interview placeholder in one transaction.
	CreateWorkflow(ctx context.Context, w *Workflow, items []*ChecklistItem, interview *ExitInterview) error

	GetWorkflow(ctx context.Context, tenantID, id string) (*Workflow, error)
	GetActiveByEmployee(ctx context.Context, tenantID, employeeID string) (*Workflow, error)
	ListWorkflows(ctx context.Context, tenantID string, status *WorkflowStatus, page, pageSize int) ([]*Workflow, int, error)
	SetWorkflowStatus(ctx context.Context, tenantID, id string, status WorkflowStatus, completedAt *time.Time) error

	GetChecklist(ctx context.Context, workflowID string) ([]*ChecklistItem, error)
	GetChecklistItem(ctx context.Context, id string) (*ChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, id string, completed bool, completedBy *string, completedAt *time.Time, notes *string) error
	CountIncompleteItems(ctx context.Context, workflowID string) (int, error)

	CreateHandoverItem(ctx context.Context, h *HandoverItem) error
	ListHandoverItems(ctx context.Context, workflowID string) ([]*HandoverItem, error)
	SetHandoverItemStatus(ctx context.Context, id string, status HandoverItemStatus) error

	GetExitInterview(ctx context.Context, workflowID string) (*ExitInterview, error)
	SubmitExitInterview(ctx context.Context, workflowID, conductedBy, feedback string, completedAt time.Time) error

	// CompleteWorkflow atomically marks the workflow completed and the
	// employee offboarded, failing with ErrChecklistIncomplete when any item
	// is still open. Runs in a single transaction so a reader never observes
	// one flip without the other.
	CompleteWorkflow(ctx context.Context, tenantID, id string, completedAt time.Time) error

	// ListByLastWorkingDay returns active workflows whose last working day is
	// exactly the given date; the deadline scan calls it per milestone.
	ListByLastWorkingDay(ctx context.Context, day time.Time) ([]*Workflow, error)
}
