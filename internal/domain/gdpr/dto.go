package gdpr

import (
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/validator"
)

type CreateRequestRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"request_type"`
	Reason     string `json:"reason"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a UUID"})
	}
	if !IsValidRequestType(RequestType(r.Type)) {
		errs = append(errs, validator.ValidationError{Field: "request_type", Message: "request_type must be export or erasure"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequestRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	RequestedBy     string     `json:"requested_by"`
	Type            string     `json:"request_type"`
	Status          string     `json:"status"`
	Reason          string     `json:"reason"`
	ProcessedBy     *string    `json:"processed_by,omitempty"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ExportPath      *string    `json:"export_path,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func ToResponse(r *DataRequest) RequestResponse {
	return RequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		RequestedBy:     r.RequestedBy,
		Type:            string(r.Type),
		Status:          string(r.Status),
		Reason:          r.Reason,
		ProcessedBy:     r.ProcessedBy,
		ProcessedAt:     r.ProcessedAt,
		RejectionReason: r.RejectionReason,
		ExportPath:      r.ExportPath,
		CreatedAt:       r.CreatedAt,
	}
}
