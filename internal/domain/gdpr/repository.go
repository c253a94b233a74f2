package gdpr

import (
	"context"
	"time"
)

// Repository defines the gdpr repository interface
type Repository interface {
	Create(ctx context.Context, r *DataRequest) error
	GetByID(ctx context.Context, tenantID, id string) (*DataRequest, error)
	List(ctx context.Context, tenantID string, page, pageSize int) ([]*DataRequest, int, error)
	ListByEmployee(ctx context.Context, tenantID, employeeID string) ([]*DataRequest, error)
	HasOpenRequest(ctx context.Context, tenantID, employeeID string, reqType RequestType) (bool, error)
	SetStatus(ctx context.Context, tenantID, id string, status RequestStatus, processedBy *string, processedAt *time.Time, rejectionReason, exportPath *string) error

	// CollectExportBundle gathers everything the subject's export renders.
	CollectExportBundle(ctx context.Context, tenantID, employeeID string) (*ExportBundle, error)
}
