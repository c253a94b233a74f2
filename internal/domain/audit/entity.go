package audit

import "time"

// Event is one append-only audit trail row. Events are written by workflows
// on sensitive transitions and never updated or deleted. Reading the trail
// requires step-up authentication.
type Event struct {
	ID         string
	TenantID   string
	ActorID    string
	Action     string
	TargetType string
	TargetID   string
	Details    map[string]interface{}
	CreatedAt  time.Time
}

// Actions recorded in the trail.
const (
	ActionReviewUncommitted   = "review.uncommitted"
	ActionGDPRRequestResolved = "gdpr.request_resolved"
	ActionOffboardingComplete = "offboarding.completed"
	ActionRoleChanged         = "user.role_changed"
	ActionEmployeeAnonymized  = "employee.anonymized"
)
