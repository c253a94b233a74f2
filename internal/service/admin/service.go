package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/admin"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/audit"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/tenant"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
)

type AdminServiceImpl struct {
	users      user.Repository
	tenants    tenant.Repository
	sessions   session.Repository
	auditTrail audit.Repository
	now        func() time.Time
}

func NewAdminService(
	users user.Repository,
	tenants tenant.Repository,
	sessions session.Repository,
	auditTrail audit.Repository,
) admin.Service {
	return &AdminServiceImpl{
		users:      users,
		tenants:    tenants,
		sessions:   sessions,
		auditTrail: auditTrail,
		now:        time.Now,
	}
}

// ListUsers implements admin.Service.
func (s *AdminServiceImpl) ListUsers(ctx context.Context, sess *session.Session) ([]user.UserResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionUserManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	users, err := s.users.ListByRole(ctx, sess.TenantID, user.AllRoles())
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, len(users))
	for i, u := range users {
		responses[i] = user.ToResponse(u)
	}
	return responses, nil
}

// UpdateUserRole implements admin.Service. Role changes end the target's
// sessions so stale permissions cannot outlive the change, and are recorded
// in the audit trail.
func (s *AdminServiceImpl) UpdateUserRole(ctx context.Context, sess *session.Session, userID string, req user.UpdateRoleRequest) (*user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionUserManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	target, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.TenantID != sess.TenantID {
		return nil, user.ErrUserNotFound
	}

	previousRole := target.Role
	newRole := user.Role(req.Role)
	if err := s.users.UpdateRole(ctx, target.ID, newRole); err != nil {
		return nil, err
	}
	target.Role = newRole

	if err := s.sessions.DeleteByUserID(ctx, target.ID); err != nil {
		return nil, err
	}

	if err := s.auditTrail.Record(ctx, &audit.Event{
		TenantID:   sess.TenantID,
		ActorID:    sess.UserID,
		Action:     audit.ActionRoleChanged,
		TargetType: "user",
		TargetID:   target.ID,
		Details: map[string]interface{}{
			"previous_role": string(previousRole),
			"new_role":      string(newRole),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to record audit event: %w", err)
	}

	resp := user.ToResponse(target)
	return &resp, nil
}

// DeactivateUser implements admin.Service.
func (s *AdminServiceImpl) DeactivateUser(ctx context.Context, sess *session.Session, userID string) error {
	if !user.HasPermission(sess.Role, user.PermissionUserManage) {
		return user.ErrAdminPrivilegeRequired
	}

	target, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.TenantID != sess.TenantID {
		return user.ErrUserNotFound
	}

	if err := s.users.Deactivate(ctx, target.ID); err != nil {
		return err
	}
	return s.sessions.DeleteByUserID(ctx, target.ID)
}

// GetTenant implements admin.Service.
func (s *AdminServiceImpl) GetTenant(ctx context.Context, sess *session.Session) (*tenant.TenantResponse, error) {
	t, err := s.tenants.GetByID(ctx, sess.TenantID)
	if err != nil {
		return nil, err
	}

	resp := tenant.ToResponse(t)
	return &resp, nil
}

// UpdateTenantTier implements admin.Service.
func (s *AdminServiceImpl) UpdateTenantTier(ctx context.Context, sess *session.Session, req tenant.UpdateTierRequest) (*tenant.TenantResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionUserManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	if err := s.tenants.UpdateTier(ctx, sess.TenantID, tenant.Tier(req.Tier)); err != nil {
		return nil, err
	}

	return s.GetTenant(ctx, sess)
}

// ListAuditEvents implements admin.Service.
func (s *AdminServiceImpl) ListAuditEvents(ctx context.Context, sess *session.Session, page, pageSize int) ([]audit.EventResponse, int, error) {
	if !user.HasPermission(sess.Role, user.PermissionAuditView) {
		return nil, 0, user.ErrAdminPrivilegeRequired
	}

	events, total, err := s.auditTrail.List(ctx, sess.TenantID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]audit.EventResponse, len(events))
	for i, e := range events {
		responses[i] = audit.ToResponse(e)
	}
	return responses, total, nil
}

// ListAuditEventsByTarget implements admin.Service.
func (s *AdminServiceImpl) ListAuditEventsByTarget(ctx context.Context, sess *session.Session, targetType, targetID string) ([]audit.EventResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionAuditView) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	events, err := s.auditTrail.ListByTarget(ctx, sess.TenantID, targetType, targetID)
	if err != nil {
		return nil, err
	}

	responses := make([]audit.EventResponse, len(events))
	for i, e := range events {
		responses[i] = audit.ToResponse(e)
	}
	return responses, nil
}
