package gdpr

import (
	"context"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
)

// Service defines the gdpr service interface
type Service interface {
	OpenRequest(ctx context.Context, sess *session.Session, req CreateRequestRequest) (*RequestResponse, error)
	GetRequest(ctx context.Context, sess *session.Session, id string) (*RequestResponse, error)
	ListRequests(ctx context.Context, sess *session.Session, page, pageSize int) ([]RequestResponse, int, error)
	ListMyRequests(ctx context.Context, sess *session.Session) ([]RequestResponse, error)

	// ProcessRequest resolves a pending request: export renders the
	// subject's data bundle to a PDF, erasure anonymizes the employee
	// record and deactivates the linked account.
	ProcessRequest(ctx context.Context, sess *session.Session, id string) (*RequestResponse, error)
	RejectRequest(ctx context.Context, sess *session.Session, id string, req RejectRequestRequest) (*RequestResponse, error)
}
