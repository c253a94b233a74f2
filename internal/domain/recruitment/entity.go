package recruitment

import "time"

type OpportunityStatus string

const (
	OpportunityOpen   OpportunityStatus = "open"
	OpportunityClosed OpportunityStatus = "closed"
)

// Opportunity is an open position candidates can apply to.
type Opportunity struct {
	ID          string
	TenantID    string
	Title       string
	Department  string
	Description string
	Status      OpportunityStatus
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ApplicationStage string

const (
	StageApplied   ApplicationStage = "applied"
	StageScreening ApplicationStage = "screening"
	StageInterview ApplicationStage = "interview"
	StageOffer     ApplicationStage = "offer"
	StageRejected  ApplicationStage = "rejected"
	StageHired     ApplicationStage = "hired"
)

// stageTransitions is the pipeline graph. Rejection is allowed from any
// active stage; hired only from offer.
var stageTransitions = map[ApplicationStage][]ApplicationStage{
	StageApplied:   {StageScreening, StageRejected},
	StageScreening: {StageInterview, StageRejected},
	StageInterview: {StageOffer, StageRejected},
	StageOffer:     {StageHired, StageRejected},
}

// CanAdvance reports whether an application may move from one stage to the
// next.
func CanAdvance(from, next ApplicationStage) bool {
	for _, allowed := range stageTransitions[from] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Application is one candidate's entry in an opportunity's pipeline.
// (opportunity, candidate_email) is unique; duplicates are conflicts.
type Application struct {
	ID             string
	TenantID       string
	OpportunityID  string
	CandidateName  string
	CandidateEmail string
	ResumeURL      *string
	Stage          ApplicationStage
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
