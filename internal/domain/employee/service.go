package employee

import (
	"context"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
)

// Service defines the employee service interface
type Service interface {
	CreateEmployee(ctx context.Context, sess *session.Session, req CreateEmployeeRequest) (*EmployeeResponse, error)
	GetEmployee(ctx context.Context, sess *session.Session, id string) (*EmployeeResponse, error)
	GetMyProfile(ctx context.Context, sess *session.Session) (*EmployeeResponse, error)
	ListEmployees(ctx context.Context, sess *session.Session, page, pageSize int) ([]EmployeeResponse, int, error)
	ListMyTeam(ctx context.Context, sess *session.Session) ([]EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, sess *session.Session, id string, req UpdateEmployeeRequest) (*EmployeeResponse, error)
}
