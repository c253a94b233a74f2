package compensation

import (
	"context"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
)

// Service defines the compensation service interface
type Service interface {
	CreatePayBand(ctx context.Context, sess *session.Session, req CreatePayBandRequest) (*PayBandResponse, error)
	ListPayBands(ctx context.Context, sess *session.Session) ([]PayBandResponse, error)
	UpdatePayBand(ctx context.Context, sess *session.Session, id string, req CreatePayBandRequest) (*PayBandResponse, error)
	DeletePayBand(ctx context.Context, sess *session.Session, id string) error

	CreateRecord(ctx context.Context, sess *session.Session, req CreateRecordRequest) (*RecordResponse, error)
	GetEmployeeHistory(ctx context.Context, sess *session.Session, employeeID string) ([]RecordResponse, error)
	GetCurrentCompensation(ctx context.Context, sess *session.Session, employeeID string) (*RecordResponse, error)
}
