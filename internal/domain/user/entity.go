package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Tenant administrator - full access
	RoleHR       Role = "hr"       // HR staff - people operations
	RoleManager  Role = "manager"  // Can review and approve for their reports
	RoleEmployee Role = "employee" // Regular employee
)

// AllRoles returns every assignable role.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleHR, RoleManager, RoleEmployee}
}

func IsValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

type User struct {
	ID            string
	TenantID      string
	Email         string
	PasswordHash  *string
	Role          Role
	OAuthProvider *string
	OAuthID       *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user is a tenant administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsHR checks if user is HR staff or admin
func (u *User) IsHR() bool {
	return u.Role == RoleHR || u.Role == RoleAdmin
}

// IsManager checks if user is manager, HR or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.IsHR()
}

// CanReview checks if user can author manager reviews
func (u *User) CanReview() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
