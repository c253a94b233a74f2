package review

import (
	"context"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
)

// Service defines the review service interface. The session identifies the
// caller; authorship and reveal checks derive from it.
type Service interface {
	CreateManagerReview(ctx context.Context, sess *session.Session, req CreateReviewRequest) (*ReviewResponse, error)
	CreateSelfReflection(ctx context.Context, sess *session.Session, req CreateSelfReflectionRequest) (*ReviewResponse, error)
	UpdateReview(ctx context.Context, sess *session.Session, reviewID string, req UpdateReviewRequest) (*ReviewResponse, error)

	// CommitReview locks a draft. Committing the second side of a week reveals
	// both sets of ratings; committing the first notifies the counterpart.
	CommitReview(ctx context.Context, sess *session.Session, reviewID string) (*ReviewResponse, error)

	// UncommitReview is the admin correction path; it is recorded in the audit
	// trail and, when it breaks a revealed pair, re-hides the ratings.
	UncommitReview(ctx context.Context, sess *session.Session, reviewID string) (*ReviewResponse, error)

	GetReview(ctx context.Context, sess *session.Session, reviewID string) (*ReviewResponse, error)
	ListEmployeeReviews(ctx context.Context, sess *session.Session, employeeID string, page, pageSize int) ([]ReviewResponse, int, error)

	// GetMyReflectionStatus answers where the caller's week stands.
	GetMyReflectionStatus(ctx context.Context, sess *session.Session, weekEnding string) (*ReflectionStatusResponse, error)
}
