package employee

import "time"

type EmploymentStatus string

const (
	StatusActive     EmploymentStatus = "active"
	StatusOnLeave    EmploymentStatus = "on_leave"
	StatusOffboarded EmploymentStatus = "offboarded"
)

type Employee struct {
	ID               string
	TenantID         string
	UserID           *string
	FirstName        string
	LastName         string
	Email            string
	JobTitle         string
	Department       string
	ManagerID        *string
	HiredAt          time.Time
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName returns the display name.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// IsManagedBy checks whether managerEmployeeID manages this employee.
func (e *Employee) IsManagedBy(managerEmployeeID string) bool {
	return e.ManagerID != nil && *e.ManagerID == managerEmployeeID
}
