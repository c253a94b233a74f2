package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/absence"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
)

type insightRepository struct {
	db *database.DB
}

// NewInsightRepository creates a new absence insight repository
func NewInsightRepository(db *database.DB) absence.InsightRepository {
	return &insightRepository{db: db}
}

const insightColumns = `id, tenant_id, employee_id, pattern_type, priority, status, summary,
	bradford_score, related_absence_ids, reviewed_by, reviewed_at, action_notes, created_at, updated_at`

func (r *insightRepository) Create(ctx context.Context, i *absence.AbsenceInsight) error {
	q := GetQuerier(ctx, r.db)

	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.Status == "" {
		i.Status = absence.InsightStatusNew
	}
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO absence_insights (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, insightColumns)

	_, err := q.Exec(ctx, query,
		i.ID, i.TenantID, i.EmployeeID, string(i.PatternType), string(i.Priority), string(i.Status),
		i.Summary, i.BradfordScore, i.RelatedAbsenceIDs, i.ReviewedBy, i.ReviewedAt, i.ActionNotes,
		i.CreatedAt, i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create absence insight: %w", err)
	}

	return nil
}

func (r *insightRepository) GetByID(ctx context.Context, tenantID, id string) (*absence.AbsenceInsight, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM absence_insights WHERE tenant_id = $1 AND id = $2`, insightColumns)

	var i absence.AbsenceInsight
	var pattern, priority, status string
	err := q.QueryRow(ctx, query, tenantID, id).Scan(
		&i.ID, &i.TenantID, &i.EmployeeID, &pattern, &priority, &status,
		&i.Summary, &i.BradfordScore, &i.RelatedAbsenceIDs, &i.ReviewedBy, &i.ReviewedAt, &i.ActionNotes,
		&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, absence.ErrInsightNotFound
		}
		return nil, fmt.Errorf("failed to get absence insight: %w", err)
	}
	i.PatternType = absence.PatternType(pattern)
	i.Priority = absence.InsightPriority(priority)
	i.Status = absence.InsightStatus(status)

	return &i, nil
}

func (r *insightRepository) List(ctx context.Context, tenantID string, status *absence.InsightStatus, page, pageSize int) ([]*absence.AbsenceInsight, int, error) {
	q := GetQuerier(ctx, r.db)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	where := `tenant_id = $1`
	args := []interface{}{tenantID}
	if status != nil {
		where += ` AND status = $2`
		args = append(args, string(*status))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM absence_insights WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count absence insights: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM absence_insights
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, insightColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list absence insights: %w", err)
	}
	defer rows.Close()

	insights, err := collectInsights(rows)
	if err != nil {
		return nil, 0, err
	}

	return insights, total, nil
}

func (r *insightRepository) ListByEmployee(ctx context.Context, tenantID, employeeID string) ([]*absence.AbsenceInsight, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM absence_insights
		WHERE tenant_id = $1 AND employee_id = $2
		ORDER BY created_at DESC
	`, insightColumns)

	rows, err := q.Query(ctx, query, tenantID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence insights: %w", err)
	}
	defer rows.Close()

	return collectInsights(rows)
}

func collectInsights(rows pgx.Rows) ([]*absence.AbsenceInsight, error) {
	var insights []*absence.AbsenceInsight
	for rows.Next() {
		var i absence.AbsenceInsight
		var pattern, priority, status string
		if err := rows.Scan(
			&i.ID, &i.TenantID, &i.EmployeeID, &pattern, &priority, &status,
			&i.Summary, &i.BradfordScore, &i.RelatedAbsenceIDs, &i.ReviewedBy, &i.ReviewedAt, &i.ActionNotes,
			&i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan absence insight: %w", err)
		}
		i.PatternType = absence.PatternType(pattern)
		i.Priority = absence.InsightPriority(priority)
		i.Status = absence.InsightStatus(status)
		insights = append(insights, &i)
	}

	return insights, rows.Err()
}

func (r *insightRepository) HasOpenInsight(ctx context.Context, tenantID, employeeID string, pattern absence.PatternType) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM absence_insights
			WHERE tenant_id = $1 AND employee_id = $2 AND pattern_type = $3
				AND status IN ('new', 'pending_review', 'reviewed')
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, tenantID, employeeID, string(pattern)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check open insight: %w", err)
	}

	return exists, nil
}

func (r *insightRepository) UpdateStatus(ctx context.Context, tenantID, id string, status absence.InsightStatus, reviewedBy string, reviewedAt time.Time, actionNotes *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE absence_insights
		SET status = $1, reviewed_by = $2, reviewed_at = $3, action_notes = COALESCE($4, action_notes), updated_at = $5
		WHERE tenant_id = $6 AND id = $7
	`
	result, err := q.Exec(ctx, query, string(status), reviewedBy, reviewedAt, actionNotes, time.Now(), tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to update insight status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return absence.ErrInsightNotFound
	}

	return nil
}
