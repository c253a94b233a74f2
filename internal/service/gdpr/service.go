package gdpr

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/audit"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/employee"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/gdpr"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/notification"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
)

type GDPRServiceImpl struct {
	db            *database.DB
	requests      gdpr.Repository
	employees     employee.Repository
	users         user.Repository
	notifications notification.Service
	auditTrail    audit.Repository
	storagePath   string
	now           func() time.Time
}

func NewGDPRService(
	db *database.DB,
	requests gdpr.Repository,
	employees employee.Repository,
	users user.Repository,
	notifications notification.Service,
	auditTrail audit.Repository,
	storagePath string,
) gdpr.Service {
	return &GDPRServiceImpl{
		db:            db,
		requests:      requests,
		employees:     employees,
		users:         users,
		notifications: notifications,
		auditTrail:    auditTrail,
		storagePath:   storagePath,
		now:           time.Now,
	}
}

// OpenRequest implements gdpr.Service. Employees may only open requests for
// their own record; processors may open them on a subject's behalf. At most
// one open request per (employee, type) pair.
func (s *GDPRServiceImpl) OpenRequest(ctx context.Context, sess *session.Session, req gdpr.CreateRequestRequest) (*gdpr.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionGDPRRequestOwn) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	if !user.HasPermission(sess.Role, user.PermissionGDPRProcess) {
		if sess.EmployeeID == nil || *sess.EmployeeID != req.EmployeeID {
			return nil, gdpr.ErrNotOwnRequest
		}
	}

	if _, err := s.employees.GetByID(ctx, sess.TenantID, req.EmployeeID); err != nil {
		return nil, err
	}

	reqType := gdpr.RequestType(req.Type)
	open, err := s.requests.HasOpenRequest(ctx, sess.TenantID, req.EmployeeID, reqType)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, gdpr.ErrOpenRequestExists
	}

	r := &gdpr.DataRequest{
		ID:          uuid.New().String(),
		TenantID:    sess.TenantID,
		EmployeeID:  req.EmployeeID,
		RequestedBy: sess.UserID,
		Type:        reqType,
		Status:      gdpr.StatusPending,
		Reason:      req.Reason,
	}
	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}

	s.notifyOpened(ctx, sess, r)

	resp := gdpr.ToResponse(r)
	return &resp, nil
}

func (s *GDPRServiceImpl) notifyOpened(ctx context.Context, sess *session.Session, r *gdpr.DataRequest) {
	relatedType := "gdpr_request"
	processors, err := s.users.ListByRole(ctx, sess.TenantID, []user.Role{user.RoleHR, user.RoleAdmin})
	if err != nil {
		return
	}
	for _, u := range processors {
		if u.ID == sess.UserID {
			continue
		}
		_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
			TenantID:    sess.TenantID,
			RecipientID: u.ID,
			SenderID:    &sess.UserID,
			Type:        notification.TypeGDPRRequestOpened,
			Title:       "Data request opened",
			Message:     fmt.Sprintf("A %s request is awaiting processing.", r.Type),
			RelatedType: &relatedType,
			RelatedID:   &r.ID,
		})
	}
}

// GetRequest implements gdpr.Service.
func (s *GDPRServiceImpl) GetRequest(ctx context.Context, sess *session.Session, id string) (*gdpr.RequestResponse, error) {
	r, err := s.requests.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}

	if !user.HasPermission(sess.Role, user.PermissionGDPRProcess) && r.RequestedBy != sess.UserID {
		return nil, gdpr.ErrRequestNotFound
	}

	resp := gdpr.ToResponse(r)
	return &resp, nil
}

// ListRequests implements gdpr.Service.
func (s *GDPRServiceImpl) ListRequests(ctx context.Context, sess *session.Session, page, pageSize int) ([]gdpr.RequestResponse, int, error) {
	if !user.HasPermission(sess.Role, user.PermissionGDPRProcess) {
		return nil, 0, user.ErrAdminPrivilegeRequired
	}

	requests, total, err := s.requests.List(ctx, sess.TenantID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]gdpr.RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = gdpr.ToResponse(r)
	}
	return responses, total, nil
}

// ListMyRequests implements gdpr.Service.
func (s *GDPRServiceImpl) ListMyRequests(ctx context.Context, sess *session.Session) ([]gdpr.RequestResponse, error) {
	if sess.EmployeeID == nil {
		return []gdpr.RequestResponse{}, nil
	}

	requests, err := s.requests.ListByEmployee(ctx, sess.TenantID, *sess.EmployeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]gdpr.RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = gdpr.ToResponse(r)
	}
	return responses, nil
}

// ProcessRequest implements gdpr.Service.
func (s *GDPRServiceImpl) ProcessRequest(ctx context.Context, sess *session.Session, id string) (*gdpr.RequestResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionGDPRProcess) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	r, err := s.requests.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}
	if r.Status != gdpr.StatusPending {
		return nil, gdpr.ErrRequestNotPending
	}

	if err := s.requests.SetStatus(ctx, sess.TenantID, r.ID, gdpr.StatusProcessing, nil, nil, nil, nil); err != nil {
		return nil, err
	}

	var exportPath *string
	switch r.Type {
	case gdpr.RequestExport:
		path, err := s.runExport(ctx, r)
		if err != nil {
			return nil, err
		}
		exportPath = &path
	case gdpr.RequestErasure:
		if err := s.runErasure(ctx, sess, r); err != nil {
			return nil, err
		}
	default:
		return nil, gdpr.ErrInvalidRequestType
	}

	processedAt := s.now()
	if err := s.requests.SetStatus(ctx, sess.TenantID, r.ID, gdpr.StatusCompleted, &sess.UserID, &processedAt, nil, exportPath); err != nil {
		return nil, err
	}

	if err := s.auditTrail.Record(ctx, &audit.Event{
		TenantID:   sess.TenantID,
		ActorID:    sess.UserID,
		Action:     audit.ActionGDPRRequestResolved,
		TargetType: "gdpr_request",
		TargetID:   r.ID,
		Details: map[string]interface{}{
			"employee_id":  r.EmployeeID,
			"request_type": string(r.Type),
			"resolution":   "completed",
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to record audit event: %w", err)
	}

	s.notifyResolved(ctx, sess, r, "Your data request has been completed.")

	return s.GetRequest(ctx, sess, r.ID)
}

func (s *GDPRServiceImpl) runExport(ctx context.Context, r *gdpr.DataRequest) (string, error) {
	bundle, err := s.requests.CollectExportBundle(ctx, r.TenantID, r.EmployeeID)
	if err != nil {
		return "", err
	}
	return writeExportPDF(s.storagePath, r.ID, bundle)
}

// runErasure redacts the employee record in place and deactivates the linked
// login. Reviews and leave history stay, tied to the redacted record. Both
// writes run in one tenant-scoped transaction; a reader never observes a live
// login on a redacted record.
func (s *GDPRServiceImpl) runErasure(ctx context.Context, sess *session.Session, r *gdpr.DataRequest) error {
	emp, err := s.employees.GetByID(ctx, sess.TenantID, r.EmployeeID)
	if err != nil {
		return err
	}

	err = database.WithTenantContext(ctx, s.db, sess.TenantID, sess.UserID, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if emp.UserID != nil {
			if err := s.users.Deactivate(txCtx, *emp.UserID); err != nil {
				return err
			}
		}
		return s.employees.Anonymize(txCtx, sess.TenantID, emp.ID)
	})
	if err != nil {
		return err
	}

	if err := s.auditTrail.Record(ctx, &audit.Event{
		TenantID:   sess.TenantID,
		ActorID:    sess.UserID,
		Action:     audit.ActionEmployeeAnonymized,
		TargetType: "employee",
		TargetID:   emp.ID,
		Details: map[string]interface{}{
			"gdpr_request_id": r.ID,
		},
	}); err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}

	return nil
}

// RejectRequest implements gdpr.Service.
func (s *GDPRServiceImpl) RejectRequest(ctx context.Context, sess *session.Session, id string, req gdpr.RejectRequestRequest) (*gdpr.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionGDPRProcess) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	r, err := s.requests.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}
	if r.Status != gdpr.StatusPending {
		return nil, gdpr.ErrRequestNotPending
	}

	processedAt := s.now()
	if err := s.requests.SetStatus(ctx, sess.TenantID, r.ID, gdpr.StatusRejected, &sess.UserID, &processedAt, &req.Reason, nil); err != nil {
		return nil, err
	}

	if err := s.auditTrail.Record(ctx, &audit.Event{
		TenantID:   sess.TenantID,
		ActorID:    sess.UserID,
		Action:     audit.ActionGDPRRequestResolved,
		TargetType: "gdpr_request",
		TargetID:   r.ID,
		Details: map[string]interface{}{
			"employee_id":  r.EmployeeID,
			"request_type": string(r.Type),
			"resolution":   "rejected",
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to record audit event: %w", err)
	}

	s.notifyResolved(ctx, sess, r, fmt.Sprintf("Your data request was rejected: %s", req.Reason))

	return s.GetRequest(ctx, sess, r.ID)
}

func (s *GDPRServiceImpl) notifyResolved(ctx context.Context, sess *session.Session, r *gdpr.DataRequest, message string) {
	if r.RequestedBy == sess.UserID {
		return
	}
	relatedType := "gdpr_request"
	_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
		TenantID:    sess.TenantID,
		RecipientID: r.RequestedBy,
		SenderID:    &sess.UserID,
		Type:        notification.TypeGDPRRequestResolved,
		Title:       "Data request resolved",
		Message:     message,
		RelatedType: &relatedType,
		RelatedID:   &r.ID,
	})
}
