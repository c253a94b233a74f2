package recruitment

import (
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/validator"
)

type CreateOpportunityRequest struct {
	Title       string `json:"title"`
	Department  string `json:"department"`
	Description string `json:"description"`
}

func (r *CreateOpportunityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not exceed 255 characters"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateApplicationRequest struct {
	CandidateName  string  `json:"candidate_name"`
	CandidateEmail string  `json:"candidate_email"`
	ResumeURL      *string `json:"resume_url,omitempty"`
}

func (r *CreateApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CandidateName) {
		errs = append(errs, validator.ValidationError{Field: "candidate_name", Message: "candidate_name is required"})
	}
	if !validator.IsValidEmail(r.CandidateEmail) {
		errs = append(errs, validator.ValidationError{Field: "candidate_email", Message: "candidate_email is not valid"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdvanceApplicationRequest struct {
	Stage string  `json:"stage"`
	Notes *string `json:"notes,omitempty"`
}

func (r *AdvanceApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	switch ApplicationStage(r.Stage) {
	case StageScreening, StageInterview, StageOffer, StageRejected, StageHired:
	default:
		errs = append(errs, validator.ValidationError{Field: "stage", Message: "stage must be one of screening, interview, offer, rejected, hired"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type OpportunityResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToOpportunityResponse(o *Opportunity) OpportunityResponse {
	return OpportunityResponse{
		ID:          o.ID,
		Title:       o.Title,
		Department:  o.Department,
		Description: o.Description,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
}

type ApplicationResponse struct {
	ID             string    `json:"id"`
	OpportunityID  string    `json:"opportunity_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	ResumeURL      *string   `json:"resume_url,omitempty"`
	Stage          string    `json:"stage"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToApplicationResponse(a *Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             a.ID,
		OpportunityID:  a.OpportunityID,
		CandidateName:  a.CandidateName,
		CandidateEmail: a.CandidateEmail,
		ResumeURL:      a.ResumeURL,
		Stage:          string(a.Stage),
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
	}
}
