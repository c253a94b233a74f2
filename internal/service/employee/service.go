package employee

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/employee"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
)

type EmployeeServiceImpl struct {
	employees employee.Repository
	now       func() time.Time
}

func NewEmployeeService(employees employee.Repository) employee.Service {
	return &EmployeeServiceImpl{
		employees: employees,
		now:       time.Now,
	}
}

// CreateEmployee implements employee.Service.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, sess *session.Session, req employee.CreateEmployeeRequest) (*employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionEmployeeManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	if req.ManagerID != nil {
		if _, err := s.employees.GetByID(ctx, sess.TenantID, *req.ManagerID); err != nil {
			return nil, err
		}
	}

	hiredAt, _ := time.Parse("2006-01-02", req.HiredAt)

	emp := &employee.Employee{
		ID:               uuid.New().String(),
		TenantID:         sess.TenantID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		JobTitle:         req.JobTitle,
		Department:       req.Department,
		ManagerID:        req.ManagerID,
		HiredAt:          hiredAt,
		EmploymentStatus: employee.StatusActive,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, err
	}

	resp := employee.ToResponse(emp)
	return &resp, nil
}

// GetEmployee implements employee.Service. Employees can always read their
// own record; managers can read their reports; everything else needs the
// view-all permission.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, sess *session.Session, id string) (*employee.EmployeeResponse, error) {
	emp, err := s.employees.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}

	if !s.canSee(sess, emp) {
		return nil, employee.ErrEmployeeNotFound
	}

	resp := employee.ToResponse(emp)
	return &resp, nil
}

func (s *EmployeeServiceImpl) canSee(sess *session.Session, emp *employee.Employee) bool {
	if sess.EmployeeID != nil && *sess.EmployeeID == emp.ID {
		return true
	}
	if sess.EmployeeID != nil && emp.IsManagedBy(*sess.EmployeeID) {
		return true
	}
	return user.HasPermission(sess.Role, user.PermissionEmployeeViewAll)
}

// GetMyProfile implements employee.Service.
func (s *EmployeeServiceImpl) GetMyProfile(ctx context.Context, sess *session.Session) (*employee.EmployeeResponse, error) {
	if sess.EmployeeID == nil {
		return nil, employee.ErrEmployeeNotFound
	}

	emp, err := s.employees.GetByID(ctx, sess.TenantID, *sess.EmployeeID)
	if err != nil {
		return nil, err
	}

	resp := employee.ToResponse(emp)
	return &resp, nil
}

// ListEmployees implements employee.Service.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, sess *session.Session, page, pageSize int) ([]employee.EmployeeResponse, int, error) {
	if !user.HasPermission(sess.Role, user.PermissionEmployeeViewAll) {
		return nil, 0, user.ErrAdminPrivilegeRequired
	}

	employees, total, err := s.employees.List(ctx, sess.TenantID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]employee.EmployeeResponse, len(employees))
	for i, emp := range employees {
		responses[i] = employee.ToResponse(emp)
	}
	return responses, total, nil
}

// ListMyTeam implements employee.Service. Returns the caller's direct
// reports.
func (s *EmployeeServiceImpl) ListMyTeam(ctx context.Context, sess *session.Session) ([]employee.EmployeeResponse, error) {
	if sess.EmployeeID == nil {
		return nil, employee.ErrEmployeeNotFound
	}

	reports, err := s.employees.ListByManager(ctx, sess.TenantID, *sess.EmployeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, len(reports))
	for i, emp := range reports {
		responses[i] = employee.ToResponse(emp)
	}
	return responses, nil
}

// UpdateEmployee implements employee.Service. Reassigning the manager
// verifies the manager exists and is not the employee themselves.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, sess *session.Session, id string, req employee.UpdateEmployeeRequest) (*employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(sess.Role, user.PermissionEmployeeManage) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	if req.ManagerID != nil {
		if *req.ManagerID == id {
			return nil, employee.ErrSelfManagerInvalid
		}
		if _, err := s.employees.GetByID(ctx, sess.TenantID, *req.ManagerID); err != nil {
			return nil, err
		}
	}

	if err := s.employees.Update(ctx, sess.TenantID, id, req); err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return nil, err
	}

	resp := employee.ToResponse(emp)
	return &resp, nil
}
