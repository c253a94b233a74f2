package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeReviewAwaited        NotificationType = "review_awaited"
	TypeReviewRevealed       NotificationType = "review_revealed"
	TypeReviewUncommitted    NotificationType = "review_uncommitted"
	TypeLeaveRequested       NotificationType = "leave_requested"
	TypeLeaveApproved        NotificationType = "leave_approved"
	TypeLeaveRejected        NotificationType = "leave_rejected"
	TypeInsightRaised        NotificationType = "insight_raised"
	TypeOffboardingStarted   NotificationType = "offboarding_started"
	TypeOffboardingMilestone NotificationType = "offboarding_milestone"
	TypeOffboardingCompleted NotificationType = "offboarding_completed"
	TypeGDPRRequestOpened    NotificationType = "gdpr_request_opened"
	TypeGDPRRequestResolved  NotificationType = "gdpr_request_resolved"
	TypeApplicationReceived  NotificationType = "application_received"
	TypeApplicationAdvanced  NotificationType = "application_advanced"
	TypeCompensationChanged  NotificationType = "compensation_changed"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeReviewAwaited,
		TypeReviewRevealed,
		TypeReviewUncommitted,
		TypeLeaveRequested,
		TypeLeaveApproved,
		TypeLeaveRejected,
		TypeInsightRaised,
		TypeOffboardingStarted,
		TypeOffboardingMilestone,
		TypeOffboardingCompleted,
		TypeGDPRRequestOpened,
		TypeGDPRRequestResolved,
		TypeApplicationReceived,
		TypeApplicationAdvanced,
		TypeCompensationChanged,
	}
}

// Notification represents a notification entity. RelatedType/RelatedID let
// the frontend deep-link to the triggering record.
type Notification struct {
	ID          string
	TenantID    string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	RelatedType *string
	RelatedID   *string
	IsUrgent    bool
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
