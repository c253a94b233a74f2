package review

import (
	"context"
	"time"
)

// Repository defines the review repository interface
type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, tenantID, id string) (*Review, error)

	// GetWeekPair returns the manager review and self-reflection for one
	// (employee, week). Either may be nil.
	GetWeekPair(ctx context.Context, tenantID, employeeID string, weekEnding time.Time) (manager *Review, self *Review, err error)

	Update(ctx context.Context, tenantID, id string, req UpdateReviewRequest) error

	// Commit flips is_committed false -> true as a single conditional update
	// and reports whether a row changed. A zero-row result means the review
	// was already committed (or vanished); the caller maps that to
	// ErrAlreadyCommitted. This removes the check-then-act race between two
	// concurrent commit requests.
	Commit(ctx context.Context, tenantID, id string, committedAt time.Time) (bool, error)

	// Uncommit is the admin correction path, the same conditional shape in
	// reverse.
	Uncommit(ctx context.Context, tenantID, id string) (bool, error)

	ListByEmployee(ctx context.Context, tenantID, employeeID string, page, pageSize int) ([]*Review, int, error)
	ListByReviewer(ctx context.Context, tenantID, reviewerID string, page, pageSize int) ([]*Review, int, error)
}
