package review

import (
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/validator"
)

type CreateReviewRequest struct {
	EmployeeID          string  `json:"employee_id"`
	ReviewDate          string  `json:"review_date"`
	Ratings             Ratings `json:"ratings"`
	Goals               string  `json:"goals"`
	Achievements        string  `json:"achievements"`
	AreasForImprovement string  `json:"areas_for_improvement"`
}

func (r *CreateReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a UUID"})
	}
	if _, ok := validator.IsWeekEndingDate(r.ReviewDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "review_date", Message: "review_date must be a week-ending Friday (YYYY-MM-DD)"})
	}
	errs = append(errs, r.Ratings.Validate()...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateSelfReflectionRequest struct {
	ReviewDate          string  `json:"review_date"`
	Ratings             Ratings `json:"ratings"`
	Goals               string  `json:"goals"`
	Achievements        string  `json:"achievements"`
	AreasForImprovement string  `json:"areas_for_improvement"`
}

func (r *CreateSelfReflectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsWeekEndingDate(r.ReviewDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "review_date", Message: "review_date must be a week-ending Friday (YYYY-MM-DD)"})
	}
	errs = append(errs, r.Ratings.Validate()...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateReviewRequest struct {
	Ratings             *Ratings `json:"ratings,omitempty"`
	Goals               *string  `json:"goals,omitempty"`
	Achievements        *string  `json:"achievements,omitempty"`
	AreasForImprovement *string  `json:"areas_for_improvement,omitempty"`
}

func (r *UpdateReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Ratings != nil {
		errs = append(errs, r.Ratings.Validate()...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ReviewResponse renders a review. Ratings are omitted while the week's pair
// is still blind to the requesting party.
type ReviewResponse struct {
	ID                  string     `json:"id"`
	EmployeeID          string     `json:"employee_id"`
	ReviewerID          string     `json:"reviewer_id"`
	ReviewDate          string     `json:"review_date"`
	Ratings             *Ratings   `json:"ratings,omitempty"`
	Goals               string     `json:"goals"`
	Achievements        string     `json:"achievements"`
	AreasForImprovement string     `json:"areas_for_improvement"`
	IsSelfAssessment    bool       `json:"is_self_assessment"`
	IsCommitted         bool       `json:"is_committed"`
	CommittedAt         *time.Time `json:"committed_at,omitempty"`
}

// ToResponse renders r. When includeRatings is false the numeric fields are
// withheld (the blind gate).
func ToResponse(r *Review, includeRatings bool) ReviewResponse {
	resp := ReviewResponse{
		ID:                  r.ID,
		EmployeeID:          r.EmployeeID,
		ReviewerID:          r.ReviewerID,
		ReviewDate:          r.ReviewDate.Format("2006-01-02"),
		Goals:               r.Goals,
		Achievements:        r.Achievements,
		AreasForImprovement: r.AreasForImprovement,
		IsSelfAssessment:    r.IsSelfAssessment,
		IsCommitted:         r.IsCommitted,
		CommittedAt:         r.CommittedAt,
	}
	if includeRatings {
		ratings := r.Ratings
		resp.Ratings = &ratings
	}
	return resp
}

// ReflectionStatusResponse answers "where is my week at" for the current
// employee. Ratings appear on both embedded reviews only once Revealed.
type ReflectionStatusResponse struct {
	WeekEnding       string          `json:"week_ending"`
	State            string          `json:"state"`
	SelfSubmitted    bool            `json:"self_submitted"`
	SelfCommitted    bool            `json:"self_committed"`
	ManagerSubmitted bool            `json:"manager_submitted"`
	ManagerCommitted bool            `json:"manager_committed"`
	Revealed         bool            `json:"revealed"`
	SelfReflection   *ReviewResponse `json:"self_reflection,omitempty"`
	ManagerReview    *ReviewResponse `json:"manager_review,omitempty"`
}
