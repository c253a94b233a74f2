package audit

import "context"

// Repository defines the audit trail repository interface
type Repository interface {
	Record(ctx context.Context, e *Event) error
	List(ctx context.Context, tenantID string, page, pageSize int) ([]*Event, int, error)
	ListByTarget(ctx context.Context, tenantID, targetType, targetID string) ([]*Event, error)
}
