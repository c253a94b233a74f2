package review

import (
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/validator"
)

// Ratings are the five weekly performance dimensions, each on a 1-10 scale.
type Ratings struct {
	TasksCompleted int `json:"tasks_completed"`
	WorkVolume     int `json:"work_volume"`
	ProblemSolving int `json:"problem_solving"`
	Communication  int `json:"communication"`
	Leadership     int `json:"leadership"`
}

func (r Ratings) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	check := func(field string, v int) {
		if !validator.IsValidRating(v) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be between 1 and 10",
			})
		}
	}
	check("tasks_completed", r.TasksCompleted)
	check("work_volume", r.WorkVolume)
	check("problem_solving", r.ProblemSolving)
	check("communication", r.Communication)
	check("leadership", r.Leadership)

	return errs
}

// Review is one week's performance assessment for one employee. A week holds
// at most one manager review and one self-reflection, keyed by the
// week-ending Friday. Drafts are mutable; committed reviews are immutable
// except through an admin uncommit.
type Review struct {
	ID                  string
	TenantID            string
	EmployeeID          string
	ReviewerID          string
	ReviewDate          time.Time // always a week-ending Friday
	Ratings             Ratings
	Goals               string
	Achievements        string
	AreasForImprovement string
	IsSelfAssessment    bool
	IsCommitted         bool
	CommittedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Side returns which side of the blind pair this review belongs to.
func (r *Review) Side() Side {
	if r.IsSelfAssessment {
		return SideSelf
	}
	return SideManager
}

// AuthoredBy checks commit/update ownership.
func (r *Review) AuthoredBy(userID string) bool {
	return r.ReviewerID == userID
}
