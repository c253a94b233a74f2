package compensation

import "context"

// Repository defines the compensation repository interface
type Repository interface {
	CreatePayBand(ctx context.Context, b *PayBand) error
	GetPayBand(ctx context.Context, tenantID, id string) (*PayBand, error)
	ListPayBands(ctx context.Context, tenantID string) ([]*PayBand, error)
	UpdatePayBand(ctx context.Context, b *PayBand) error
	DeletePayBand(ctx context.Context, tenantID, id string) error

	CreateRecord(ctx context.Context, r *Record) error
	ListRecordsByEmployee(ctx context.Context, tenantID, employeeID string) ([]*Record, error)
	GetCurrentRecord(ctx context.Context, tenantID, employeeID string) (*Record, error)
}
