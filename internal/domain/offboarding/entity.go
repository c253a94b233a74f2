package offboarding

import "time"

type WorkflowStatus string

const (
	StatusPending    WorkflowStatus = "pending"
	StatusInProgress WorkflowStatus = "in_progress"
	StatusCompleted  WorkflowStatus = "completed"
	StatusCancelled  WorkflowStatus = "cancelled"
)

type TerminationType string

const (
	TerminationResignation   TerminationType = "resignation"
	TerminationDismissal     TerminationType = "dismissal"
	TerminationRedundancy    TerminationType = "redundancy"
	TerminationRetirement    TerminationType = "retirement"
	TerminationEndOfContract TerminationType = "end_of_contract"
)

func IsValidTerminationType(t TerminationType) bool {
	switch t {
	case TerminationResignation, TerminationDismissal, TerminationRedundancy, TerminationRetirement, TerminationEndOfContract:
		return true
	default:
		return false
	}
}

// Workflow owns one employee's offboarding: the checklist, the exit
// interview and the handover items. Completion is gated on every checklist
// item being done.
type Workflow struct {
	ID              string
	TenantID        string
	EmployeeID      string
	InitiatedBy     string
	TerminationType TerminationType
	Reason          string
	LastWorkingDay  time.Time
	Status          WorkflowStatus
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Active reports whether the workflow still accepts mutations.
func (w *Workflow) Active() bool {
	return w.Status == StatusPending || w.Status == StatusInProgress
}

type ChecklistItem struct {
	ID           string
	WorkflowID   string
	ItemType     string
	Title        string
	AssigneeRole string
	SortOrder    int
	Completed    bool
	CompletedBy  *string
	CompletedAt  *time.Time
	Notes        *string
}

type HandoverItemStatus string

const (
	HandoverPending HandoverItemStatus = "pending"
	HandoverDone    HandoverItemStatus = "done"
)

type HandoverItem struct {
	ID          string
	WorkflowID  string
	Title       string
	Description string
	RecipientID *string
	Status      HandoverItemStatus
	CreatedAt   time.Time
}

type ExitInterview struct {
	ID          string
	WorkflowID  string
	ScheduledAt *time.Time
	ConductedBy *string
	Feedback    *string
	CompletedAt *time.Time
}

// checklistTemplate is the fixed default checklist created with every
// workflow. Item types drive frontend grouping; assignee roles drive the
// deadline reminders.
type checklistTemplate struct {
	ItemType     string
	Title        string
	AssigneeRole string
}

var defaultChecklist = []checklistTemplate{
	{"access", "Revoke building access badge", "hr"},
	{"access", "Disable user accounts and SSO", "admin"},
	{"access", "Remove from internal systems and mailing lists", "admin"},
	{"equipment", "Collect laptop and peripherals", "manager"},
	{"equipment", "Collect company phone and SIM", "manager"},
	{"equipment", "Collect keys, cards and other company property", "hr"},
	{"knowledge", "Complete handover documentation", "manager"},
	{"knowledge", "Reassign open tasks and projects", "manager"},
	{"hr", "Schedule exit interview", "hr"},
	{"hr", "Process final payroll and expenses", "hr"},
	{"hr", "Confirm outstanding leave balance payout", "hr"},
	{"hr", "Issue employment reference documents", "hr"},
	{"hr", "Archive personnel file per retention policy", "hr"},
}

// DefaultChecklist builds the 13 default items for a new workflow.
func DefaultChecklist(workflowID string, newID func() string) []*ChecklistItem {
	items := make([]*ChecklistItem, len(defaultChecklist))
	for i, tpl := range defaultChecklist {
		items[i] = &ChecklistItem{
			ID:           newID(),
			WorkflowID:   workflowID,
			ItemType:     tpl.ItemType,
			Title:        tpl.Title,
			AssigneeRole: tpl.AssigneeRole,
			SortOrder:    i + 1,
		}
	}
	return items
}

// DeadlineMilestones are days-before-last-working-day marks at which
// reminder notifications are sent.
var DeadlineMilestones = []int{14, 7, 2, 1, 0}
