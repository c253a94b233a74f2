package absence

import (
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	Type      string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`

	// Set from the session, never from the payload.
	EmployeeID string `json:"-"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidLeaveType(LeaveType(r.Type)) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type must be one of annual, sick, unpaid, personal"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be a YYYY-MM-DD date"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be a YYYY-MM-DD date"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectLeaveRequestRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateInsightStatusRequest struct {
	Status      string  `json:"status"`
	ActionNotes *string `json:"action_notes,omitempty"`
}

func (r *UpdateInsightStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	switch InsightStatus(r.Status) {
	case InsightStatusPendingReview, InsightStatusReviewed, InsightStatusActionTaken, InsightStatusDismissed:
	default:
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of pending_review, reviewed, action_taken, dismissed"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	Type            string     `json:"leave_type"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	TotalDays       int        `json:"total_days"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	RequestedAt     time.Time  `json:"requested_at"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
}

func ToLeaveResponse(l *LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              l.ID,
		EmployeeID:      l.EmployeeID,
		Type:            string(l.Type),
		StartDate:       l.StartDate.Format("2006-01-02"),
		EndDate:         l.EndDate.Format("2006-01-02"),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          string(l.Status),
		RequestedAt:     l.RequestedAt,
		ApprovedBy:      l.ApprovedBy,
		ApprovedAt:      l.ApprovedAt,
		RejectionReason: l.RejectionReason,
	}
}

type InsightResponse struct {
	ID                string     `json:"id"`
	EmployeeID        string     `json:"employee_id"`
	PatternType       string     `json:"pattern_type"`
	Priority          string     `json:"priority"`
	Status            string     `json:"status"`
	Summary           string     `json:"summary"`
	BradfordScore     *int       `json:"bradford_score,omitempty"`
	RelatedAbsenceIDs []string   `json:"related_absence_ids"`
	ReviewedBy        *string    `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	ActionNotes       *string    `json:"action_notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func ToInsightResponse(i *AbsenceInsight) InsightResponse {
	return InsightResponse{
		ID:                i.ID,
		EmployeeID:        i.EmployeeID,
		PatternType:       string(i.PatternType),
		Priority:          string(i.Priority),
		Status:            string(i.Status),
		Summary:           i.Summary,
		BradfordScore:     i.BradfordScore,
		RelatedAbsenceIDs: i.RelatedAbsenceIDs,
		ReviewedBy:        i.ReviewedBy,
		ReviewedAt:        i.ReviewedAt,
		ActionNotes:       i.ActionNotes,
		CreatedAt:         i.CreatedAt,
	}
}
