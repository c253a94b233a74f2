package session

import (
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/tenant"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
)

// Session is the server-side record behind the staffos_sid cookie. Every
// tenant-scoped query derives its context from this row rather than from
// anything the client sends.
type Session struct {
	ID              string
	TenantID        string
	UserID          string
	EmployeeID      *string
	Role            user.Role
	Tier            tenant.Tier
	CSRFToken       string
	AuditVerifiedAt *time.Time
	IPAddress       string
	UserAgent       string
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// AuditVerified reports whether the session holds a fresh step-up
// verification, i.e. the password was re-checked within the window.
func (s *Session) AuditVerified(now time.Time, window time.Duration) bool {
	if s.AuditVerifiedAt == nil {
		return false
	}
	return now.Sub(*s.AuditVerifiedAt) <= window
}
