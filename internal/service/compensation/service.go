package compensation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/compensation"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/employee"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/notification"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
)

type CompensationServiceImpl struct {
	compensations compensation.Repository
	employees     employee.Repository
	notifications notification.Service
	now           func() time.Time
}

func NewCompensationService(
	compensations compensation.Repository,
	employees employee.Repository,
	notifications notification.Service,
) compensation.Service {
	return &CompensationServiceImpl{
		compensations: compensations,
		employees:     employees,
		notifications: notifications,
		now:           time.Now,
	}
}

// CreatePayBand implements compensation.Service.
func (s *CompensationServiceImpl) CreatePayBand(ctx context.Context, sess *session.Session, req compensation.CreatePayBandRequest) (*compensation.PayBandResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionCompensationManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	band := &compensation.PayBand{
		ID:        uuid.New().String(),
		TenantID:  sess.TenantID,
		Name:      req.Name,
		MinSalary: req.MinSalary,
		MaxSalary: req.MaxSalary,
		Currency:  req.Currency,
	}
	if err := s.compensations.CreatePayBand(ctx, band); err != nil {
		return nil, err
	}

	resp := compensation.ToPayBandResponse(band)
	return &resp, nil
}

// ListPayBands implements compensation.Service.
func (s *CompensationServiceImpl) ListPayBands(ctx context.Context, sess *session.Session) ([]compensation.PayBandResponse, error) {
	if !user.HasPermission(sess.Role, user.PermissionCompensationView) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	bands, err := s.compensations.ListPayBands(ctx, sess.TenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]compensation.PayBandResponse, len(bands))
	for i, b := range bands {
		responses[i] = compensation.ToPayBandResponse(b)
	}
	return responses, nil
}

// UpdatePayBand implements compensation.Service.
func (s *CompensationServiceImpl) UpdatePayBand(ctx context.Context, sess *session.Session, id string, req compensation.CreatePayBandRequest) (*compensation.PayBandResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionCompensationManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	band, err := s.compensations.GetPayBand(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}

	band.Name = req.Name
	band.MinSalary = req.MinSalary
	band.MaxSalary = req.MaxSalary
	band.Currency = req.Currency
	if err := s.compensations.UpdatePayBand(ctx, band); err != nil {
		return nil, err
	}

	resp := compensation.ToPayBandResponse(band)
	return &resp, nil
}

// DeletePayBand implements compensation.Service.
func (s *CompensationServiceImpl) DeletePayBand(ctx context.Context, sess *session.Session, id string) error {
	if !user.HasPermission(sess.Role, user.PermissionCompensationManage) {
		return user.ErrAdminPrivilegeRequired
	}

	return s.compensations.DeletePayBand(ctx, sess.TenantID, id)
}

// CreateRecord implements compensation.Service. When a pay band is named,
// the salary must fall inside it.
func (s *CompensationServiceImpl) CreateRecord(ctx context.Context, sess *session.Session, req compensation.CreateRecordRequest) (*compensation.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionCompensationManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	emp, err := s.employees.GetByID(ctx, sess.TenantID, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	if req.PayBandID != nil {
		band, err := s.compensations.GetPayBand(ctx, sess.TenantID, *req.PayBandID)
		if err != nil {
			return nil, err
		}
		if !band.Contains(req.Salary) {
			return nil, compensation.ErrOutsidePayBand
		}
	}

	effectiveDate, _ := time.Parse("2006-01-02", req.EffectiveDate)

	record := &compensation.Record{
		ID:            uuid.New().String(),
		TenantID:      sess.TenantID,
		EmployeeID:    emp.ID,
		PayBandID:     req.PayBandID,
		Salary:        req.Salary,
		Currency:      req.Currency,
		EffectiveDate: effectiveDate,
		ChangeReason:  req.ChangeReason,
		CreatedBy:     sess.UserID,
	}
	if err := s.compensations.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	s.notifyChanged(ctx, sess, emp, record)

	resp := compensation.ToRecordResponse(record)
	return &resp, nil
}

func (s *CompensationServiceImpl) notifyChanged(ctx context.Context, sess *session.Session, emp *employee.Employee, record *compensation.Record) {
	if emp.UserID == nil || *emp.UserID == sess.UserID {
		return
	}
	relatedType := "compensation_record"
	_ = s.notifications.QueueNotification(ctx, notification.CreateNotificationRequest{
		TenantID:    sess.TenantID,
		RecipientID: *emp.UserID,
		SenderID:    &sess.UserID,
		Type:        notification.TypeCompensationChanged,
		Title:       "Compensation updated",
		Message:     "Your compensation record was updated, effective " + record.EffectiveDate.Format("2006-01-02") + ".",
		RelatedType: &relatedType,
		RelatedID:   &record.ID,
	})
}

// GetEmployeeHistory implements compensation.Service. Employees can read
// their own history; anything else needs the view permission.
func (s *CompensationServiceImpl) GetEmployeeHistory(ctx context.Context, sess *session.Session, employeeID string) ([]compensation.RecordResponse, error) {
	if err := s.authorizeView(sess, employeeID); err != nil {
		return nil, err
	}

	records, err := s.compensations.ListRecordsByEmployee(ctx, sess.TenantID, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]compensation.RecordResponse, len(records))
	for i, r := range records {
		responses[i] = compensation.ToRecordResponse(r)
	}
	return responses, nil
}

// GetCurrentCompensation implements compensation.Service.
func (s *CompensationServiceImpl) GetCurrentCompensation(ctx context.Context, sess *session.Session, employeeID string) (*compensation.RecordResponse, error) {
	if err := s.authorizeView(sess, employeeID); err != nil {
		return nil, err
	}

	record, err := s.compensations.GetCurrentRecord(ctx, sess.TenantID, employeeID)
	if err != nil {
		return nil, err
	}

	resp := compensation.ToRecordResponse(record)
	return &resp, nil
}

func (s *CompensationServiceImpl) authorizeView(sess *session.Session, employeeID string) error {
	if sess.EmployeeID != nil && *sess.EmployeeID == employeeID {
		return nil
	}
	if !user.HasPermission(sess.Role, user.PermissionCompensationView) {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}
