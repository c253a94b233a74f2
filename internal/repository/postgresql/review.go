package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/review"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
)

type reviewRepository struct {
	db *database.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.DB) review.Repository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, tenant_id, employee_id, reviewer_id, review_date,
	tasks_completed, work_volume, problem_solving, communication, leadership,
	goals, achievements, areas_for_improvement,
	is_self_assessment, is_committed, committed_at, created_at, updated_at`

func (r *reviewRepository) Create(ctx context.Context, rev *review.Review) error {
	q := GetQuerier(ctx, r.db)

	if rev.ID == "" {
		rev.ID = uuid.New().String()
	}
	now := time.Now()
	rev.CreatedAt = now
	rev.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO reviews (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`, reviewColumns)

	_, err := q.Exec(ctx, query,
		rev.ID, rev.TenantID, rev.EmployeeID, rev.ReviewerID, rev.ReviewDate,
		rev.Ratings.TasksCompleted, rev.Ratings.WorkVolume, rev.Ratings.ProblemSolving,
		rev.Ratings.Communication, rev.Ratings.Leadership,
		rev.Goals, rev.Achievements, rev.AreasForImprovement,
		rev.IsSelfAssessment, rev.IsCommitted, rev.CommittedAt, rev.CreatedAt, rev.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, tenantID, id string) (*review.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE tenant_id = $1 AND id = $2`, reviewColumns)
	rev, err := scanReview(q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, err
	}

	return rev, nil
}

func (r *reviewRepository) GetWeekPair(ctx context.Context, tenantID, employeeID string, weekEnding time.Time) (*review.Review, *review.Review, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM reviews
		WHERE tenant_id = $1 AND employee_id = $2 AND review_date = $3
	`, reviewColumns)

	rows, err := q.Query(ctx, query, tenantID, employeeID, weekEnding)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get week pair: %w", err)
	}
	defer rows.Close()

	var manager, self *review.Review
	for rows.Next() {
		rev, err := scanReviewRows(rows)
		if err != nil {
			return nil, nil, err
		}
		if rev.IsSelfAssessment {
			self = rev
		} else {
			manager = rev
		}
	}

	return manager, self, rows.Err()
}

func scanReview(row pgx.Row) (*review.Review, error) {
	var rev review.Review
	err := row.Scan(
		&rev.ID, &rev.TenantID, &rev.EmployeeID, &rev.ReviewerID, &rev.ReviewDate,
		&rev.Ratings.TasksCompleted, &rev.Ratings.WorkVolume, &rev.Ratings.ProblemSolving,
		&rev.Ratings.Communication, &rev.Ratings.Leadership,
		&rev.Goals, &rev.Achievements, &rev.AreasForImprovement,
		&rev.IsSelfAssessment, &rev.IsCommitted, &rev.CommittedAt, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, review.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to scan review: %w", err)
	}

	return &rev, nil
}

func scanReviewRows(rows pgx.Rows) (*review.Review, error) {
	var rev review.Review
	err := rows.Scan(
		&rev.ID, &rev.TenantID, &rev.EmployeeID, &rev.ReviewerID, &rev.ReviewDate,
		&rev.Ratings.TasksCompleted, &rev.Ratings.WorkVolume, &rev.Ratings.ProblemSolving,
		&rev.Ratings.Communication, &rev.Ratings.Leadership,
		&rev.Goals, &rev.Achievements, &rev.AreasForImprovement,
		&rev.IsSelfAssessment, &rev.IsCommitted, &rev.CommittedAt, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan review: %w", err)
	}

	return &rev, nil
}

func (r *reviewRepository) Update(ctx context.Context, tenantID, id string, req review.UpdateReviewRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{}
	args := []interface{}{}
	idx := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.Ratings != nil {
		addSet("tasks_completed", req.Ratings.TasksCompleted)
		addSet("work_volume", req.Ratings.WorkVolume)
		addSet("problem_solving", req.Ratings.ProblemSolving)
		addSet("communication", req.Ratings.Communication)
		addSet("leadership", req.Ratings.Leadership)
	}
	if req.Goals != nil {
		addSet("goals", *req.Goals)
	}
	if req.Achievements != nil {
		addSet("achievements", *req.Achievements)
	}
	if req.AreasForImprovement != nil {
		addSet("areas_for_improvement", *req.AreasForImprovement)
	}

	if len(sets) == 0 {
		return nil
	}
	addSet("updated_at", time.Now())

	// Drafts only. A committed row never matches, which keeps immutability
	// enforced at the storage layer as well as in the service.
	query := fmt.Sprintf(`
		UPDATE reviews SET %s
		WHERE tenant_id = $%d AND id = $%d AND is_committed = false
	`, strings.Join(sets, ", "), idx, idx+1)
	args = append(args, tenantID, id)

	result, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return review.ErrReviewImmutable
	}

	return nil
}

func (r *reviewRepository) Commit(ctx context.Context, tenantID, id string, committedAt time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reviews
		SET is_committed = true, committed_at = $1, updated_at = $1
		WHERE tenant_id = $2 AND id = $3 AND is_committed = false
	`
	result, err := q.Exec(ctx, query, committedAt, tenantID, id)
	if err != nil {
		return false, fmt.Errorf("failed to commit review: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *reviewRepository) Uncommit(ctx context.Context, tenantID, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reviews
		SET is_committed = false, committed_at = NULL, updated_at = $1
		WHERE tenant_id = $2 AND id = $3 AND is_committed = true
	`
	result, err := q.Exec(ctx, query, time.Now(), tenantID, id)
	if err != nil {
		return false, fmt.Errorf("failed to uncommit review: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *reviewRepository) ListByEmployee(ctx context.Context, tenantID, employeeID string, page, pageSize int) ([]*review.Review, int, error) {
	return r.list(ctx, tenantID, "employee_id", employeeID, page, pageSize)
}

func (r *reviewRepository) ListByReviewer(ctx context.Context, tenantID, reviewerID string, page, pageSize int) ([]*review.Review, int, error) {
	return r.list(ctx, tenantID, "reviewer_id", reviewerID, page, pageSize)
}

func (r *reviewRepository) list(ctx context.Context, tenantID, column, value string, page, pageSize int) ([]*review.Review, int, error) {
	q := GetQuerier(ctx, r.db)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM reviews WHERE tenant_id = $1 AND %s = $2`, column)
	if err := q.QueryRow(ctx, countQuery, tenantID, value).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM reviews
		WHERE tenant_id = $1 AND %s = $2
		ORDER BY review_date DESC, is_self_assessment
		LIMIT $3 OFFSET $4
	`, reviewColumns, column)

	rows, err := q.Query(ctx, query, tenantID, value, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*review.Review
	for rows.Next() {
		rev, err := scanReviewRows(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rev)
	}

	return reviews, total, rows.Err()
}
