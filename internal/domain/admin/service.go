package admin

import (
	"context"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/audit"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/tenant"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
)

// Service defines the tenant administration service interface: user
// management, subscription tier and the audit trail.
type Service interface {
	ListUsers(ctx context.Context, sess *session.Session) ([]user.UserResponse, error)
	UpdateUserRole(ctx context.Context, sess *session.Session, userID string, req user.UpdateRoleRequest) (*user.UserResponse, error)
	DeactivateUser(ctx context.Context, sess *session.Session, userID string) error

	GetTenant(ctx context.Context, sess *session.Session) (*tenant.TenantResponse, error)
	UpdateTenantTier(ctx context.Context, sess *session.Session, req tenant.UpdateTierRequest) (*tenant.TenantResponse, error)

	// Audit trail reads additionally require fresh step-up verification,
	// which the transport layer enforces.
	ListAuditEvents(ctx context.Context, sess *session.Session, page, pageSize int) ([]audit.EventResponse, int, error)
	ListAuditEventsByTarget(ctx context.Context, sess *session.Session, targetType, targetID string) ([]audit.EventResponse, error)
}
