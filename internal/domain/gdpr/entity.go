package gdpr

import "time"

type RequestType string

const (
	RequestExport  RequestType = "export"
	RequestErasure RequestType = "erasure"
)

func IsValidRequestType(t RequestType) bool {
	return t == RequestExport || t == RequestErasure
}

type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusProcessing RequestStatus = "processing"
	StatusCompleted  RequestStatus = "completed"
	StatusRejected   RequestStatus = "rejected"
)

// DataRequest is a GDPR subject-access or erasure request for one employee.
type DataRequest struct {
	ID              string
	TenantID        string
	EmployeeID      string
	RequestedBy     string
	Type            RequestType
	Status          RequestStatus
	Reason          string
	ProcessedBy     *string
	ProcessedAt     *time.Time
	RejectionReason *string
	ExportPath      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ExportBundle is everything the subject's export PDF renders.
type ExportBundle struct {
	Employee      ExportEmployee
	Reviews       []ExportReview
	LeaveRequests []ExportLeave
}

type ExportEmployee struct {
	FirstName        string
	LastName         string
	Email            string
	JobTitle         string
	Department       string
	HiredAt          time.Time
	EmploymentStatus string
}

type ExportReview struct {
	ReviewDate       time.Time
	IsSelfAssessment bool
	IsCommitted      bool
	Goals            string
	Achievements     string
}

type ExportLeave struct {
	Type      string
	StartDate time.Time
	EndDate   time.Time
	TotalDays int
	Status    string
}
