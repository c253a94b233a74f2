package offboarding

import (
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/validator"
)

type InitiateWorkflowRequest struct {
	EmployeeID      string `json:"employee_id"`
	TerminationType string `json:"termination_type"`
	Reason          string `json:"reason"`
	LastWorkingDay  string `json:"last_working_day"`
}

func (r *InitiateWorkflowRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a UUID"})
	}
	if !IsValidTerminationType(TerminationType(r.TerminationType)) {
		errs = append(errs, validator.ValidationError{Field: "termination_type", Message: "termination_type must be one of resignation, dismissal, redundancy, retirement, end_of_contract"})
	}
	if _, ok := validator.IsValidDate(r.LastWorkingDay); !ok {
		errs = append(errs, validator.ValidationError{Field: "last_working_day", Message: "last_working_day must be a YYYY-MM-DD date"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateChecklistItemRequest struct {
	Completed bool    `json:"completed"`
	Notes     *string `json:"notes,omitempty"`
}

type CreateHandoverItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RecipientID *string `json:"recipient_id,omitempty"`
}

func (r *CreateHandoverItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if r.RecipientID != nil && !validator.IsValidUUID(*r.RecipientID) {
		errs = append(errs, validator.ValidationError{Field: "recipient_id", Message: "recipient_id must be a UUID"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SubmitExitInterviewRequest struct {
	Feedback string `json:"feedback"`
}

func (r *SubmitExitInterviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Feedback) {
		errs = append(errs, validator.ValidationError{Field: "feedback", Message: "feedback is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ChecklistItemResponse struct {
	ID           string     `json:"id"`
	ItemType     string     `json:"item_type"`
	Title        string     `json:"title"`
	AssigneeRole string     `json:"assignee_role"`
	SortOrder    int        `json:"sort_order"`
	Completed    bool       `json:"completed"`
	CompletedBy  *string    `json:"completed_by,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

type WorkflowResponse struct {
	ID              string                  `json:"id"`
	EmployeeID      string                  `json:"employee_id"`
	InitiatedBy     string                  `json:"initiated_by"`
	TerminationType string                  `json:"termination_type"`
	Reason          string                  `json:"reason"`
	LastWorkingDay  string                  `json:"last_working_day"`
	Status          string                  `json:"status"`
	CompletedAt     *time.Time              `json:"completed_at,omitempty"`
	Checklist       []ChecklistItemResponse `json:"checklist,omitempty"`
}

func ToWorkflowResponse(w *Workflow, items []*ChecklistItem) WorkflowResponse {
	resp := WorkflowResponse{
		ID:              w.ID,
		EmployeeID:      w.EmployeeID,
		InitiatedBy:     w.InitiatedBy,
		TerminationType: string(w.TerminationType),
		Reason:          w.Reason,
		LastWorkingDay:  w.LastWorkingDay.Format("2006-01-02"),
		Status:          string(w.Status),
		CompletedAt:     w.CompletedAt,
	}
	for _, item := range items {
		resp.Checklist = append(resp.Checklist, ChecklistItemResponse{
			ID:           item.ID,
			ItemType:     item.ItemType,
			Title:        item.Title,
			AssigneeRole: item.AssigneeRole,
			SortOrder:    item.SortOrder,
			Completed:    item.Completed,
			CompletedBy:  item.CompletedBy,
			CompletedAt:  item.CompletedAt,
			Notes:        item.Notes,
		})
	}
	return resp
}
