package absence

import "time"

type LeaveType string

const (
	LeaveAnnual   LeaveType = "annual"
	LeaveSick     LeaveType = "sick"
	LeaveUnpaid   LeaveType = "unpaid"
	LeavePersonal LeaveType = "personal"
)

func IsValidLeaveType(t LeaveType) bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeaveUnpaid, LeavePersonal:
		return true
	default:
		return false
	}
}

type LeaveRequestStatus string

const (
	LeaveStatusWaitingApproval LeaveRequestStatus = "waiting_approval"
	LeaveStatusApproved        LeaveRequestStatus = "approved"
	LeaveStatusRejected        LeaveRequestStatus = "rejected"
	LeaveStatusCancelled       LeaveRequestStatus = "cancelled"
)

type LeaveRequest struct {
	ID              string
	TenantID        string
	EmployeeID      string
	Type            LeaveType
	StartDate       time.Time
	EndDate         time.Time
	TotalDays       int
	Reason          string
	Status          LeaveRequestStatus
	RequestedAt     time.Time
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NoticeDays is how many days before the leave started it was requested.
// Negative values mean the leave was reported after the fact.
func (l *LeaveRequest) NoticeDays() int {
	return int(l.StartDate.Sub(l.RequestedAt).Hours() / 24)
}

// PatternType tags the heuristic that produced an insight.
type PatternType string

const (
	PatternBradfordFactor   PatternType = "bradford_factor"
	PatternDayOfWeekCluster PatternType = "day_of_week_clustering"
	PatternShortNotice      PatternType = "short_notice_frequency"
	PatternPostWeekend      PatternType = "post_weekend_adjacency"
)

type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

type InsightStatus string

const (
	InsightStatusNew           InsightStatus = "new"
	InsightStatusPendingReview InsightStatus = "pending_review"
	InsightStatusReviewed      InsightStatus = "reviewed"
	InsightStatusActionTaken   InsightStatus = "action_taken"
	InsightStatusDismissed     InsightStatus = "dismissed"
)

// insightTransitions is the allowed status graph. Insights are never deleted,
// only moved forward.
var insightTransitions = map[InsightStatus][]InsightStatus{
	InsightStatusNew:           {InsightStatusPendingReview, InsightStatusDismissed},
	InsightStatusPendingReview: {InsightStatusReviewed, InsightStatusActionTaken, InsightStatusDismissed},
	InsightStatusReviewed:      {InsightStatusActionTaken, InsightStatusDismissed},
}

// CanTransition reports whether moving from to next is allowed.
func CanTransition(from, next InsightStatus) bool {
	for _, allowed := range insightTransitions[from] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Open reports whether the insight still blocks a duplicate of the same
// pattern. Dismissed and actioned insights do not: the pattern may
// legitimately re-occur afterwards.
func (s InsightStatus) Open() bool {
	switch s {
	case InsightStatusNew, InsightStatusPendingReview, InsightStatusReviewed:
		return true
	default:
		return false
	}
}

// AbsenceInsight is a detected pattern over one employee's leave history.
type AbsenceInsight struct {
	ID                string
	TenantID          string
	EmployeeID        string
	PatternType       PatternType
	Priority          InsightPriority
	Status            InsightStatus
	Summary           string
	BradfordScore     *int
	RelatedAbsenceIDs []string
	ReviewedBy        *string
	ReviewedAt        *time.Time
	ActionNotes       *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
