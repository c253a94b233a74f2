package auth

import (
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/validator"
)

type RegisterTenantRequest struct {
	TenantName string `json:"tenant_name"`
	TenantSlug string `json:"tenant_slug"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

func (r *RegisterTenantRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TenantName) {
		errs = append(errs, validator.ValidationError{Field: "tenant_name", Message: "tenant_name is required"})
	}
	if !validator.IsValidTenantSlug(r.TenantSlug) {
		errs = append(errs, validator.ValidationError{Field: "tenant_slug", Message: "tenant_slug must be 3-50 lowercase letters, digits or dashes"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is not valid"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	TenantSlug string `json:"tenant_slug"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TenantSlug) {
		errs = append(errs, validator.ValidationError{Field: "tenant_slug", Message: "tenant_slug is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is not valid"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

func (r *VerifyPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SessionTrackingRequest carries per-request client metadata stored on the
// session row.
type SessionTrackingRequest struct {
	IPAddress string
	UserAgent string
}

// LoginResponse returns the session plus the tokens the handler turns into
// cookies.
type LoginResponse struct {
	Session      *session.Session
	SessionToken string
	CSRFToken    string
}

// MeResponse describes the authenticated caller.
type MeResponse struct {
	UserID     string  `json:"user_id"`
	TenantID   string  `json:"tenant_id"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Tier       int     `json:"tier"`
}
