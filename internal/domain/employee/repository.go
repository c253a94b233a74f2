package employee

import "context"

// Repository defines the employee repository interface
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, tenantID, id string) (*Employee, error)
	GetByUserID(ctx context.Context, userID string) (*Employee, error)
	List(ctx context.Context, tenantID string, page, pageSize int) ([]*Employee, int, error)
	ListByManager(ctx context.Context, tenantID, managerEmployeeID string) ([]*Employee, error)
	Update(ctx context.Context, tenantID, id string, req UpdateEmployeeRequest) error
	SetEmploymentStatus(ctx context.Context, tenantID, id string, status EmploymentStatus) error
	Anonymize(ctx context.Context, tenantID, id string) error
}
