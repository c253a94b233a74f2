package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/recruitment"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
)

type recruitmentRepository struct {
	db *database.DB
}

// NewRecruitmentRepository creates a new recruitment repository
func NewRecruitmentRepository(db *database.DB) recruitment.Repository {
	return &recruitmentRepository{db: db}
}

const opportunityColumns = `id, tenant_id, title, department, description, status, created_by, created_at, updated_at`

func (r *recruitmentRepository) CreateOpportunity(ctx context.Context, o *recruitment.Opportunity) error {
	q := GetQuerier(ctx, r.db)

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Status == "" {
		o.Status = recruitment.OpportunityOpen
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO opportunities (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, opportunityColumns)

	_, err := q.Exec(ctx, query,
		o.ID, o.TenantID, o.Title, o.Department, o.Description, string(o.Status), o.CreatedBy, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create opportunity: %w", err)
	}

	return nil
}

func (r *recruitmentRepository) GetOpportunity(ctx context.Context, tenantID, id string) (*recruitment.Opportunity, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM opportunities WHERE tenant_id = $1 AND id = $2`, opportunityColumns)

	var o recruitment.Opportunity
	var status string
	err := q.QueryRow(ctx, query, tenantID, id).Scan(
		&o.ID, &o.TenantID, &o.Title, &o.Department, &o.Description, &status, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, recruitment.ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	o.Status = recruitment.OpportunityStatus(status)

	return &o, nil
}

func (r *recruitmentRepository) ListOpportunities(ctx context.Context, tenantID string, status *recruitment.OpportunityStatus, page, pageSize int) ([]*recruitment.Opportunity, int, error) {
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
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM opportunities WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count opportunities: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM opportunities
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, opportunityColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	var opportunities []*recruitment.Opportunity
	for rows.Next() {
		var o recruitment.Opportunity
		var statusStr string
		if err := rows.Scan(
			&o.ID, &o.TenantID, &o.Title, &o.Department, &o.Description, &statusStr, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		o.Status = recruitment.OpportunityStatus(statusStr)
		opportunities = append(opportunities, &o)
	}

	return opportunities, total, rows.Err()
}

func (r *recruitmentRepository) SetOpportunityStatus(ctx context.Context, tenantID, id string, status recruitment.OpportunityStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE opportunities SET status = $1, updated_at = $2 WHERE tenant_id = $3 AND id = $4`
	result, err := q.Exec(ctx, query, string(status), time.Now(), tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to set opportunity status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return recruitment.ErrOpportunityNotFound
	}

	return nil
}

const applicationColumns = `id, tenant_id, opportunity_id, candidate_name, candidate_email,
	resume_url, stage, notes, created_at, updated_at`

func (r *recruitmentRepository) CreateApplication(ctx context.Context, a *recruitment.Application) error {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Stage == "" {
		a.Stage = recruitment.StageApplied
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO applications (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, applicationColumns)

	_, err := q.Exec(ctx, query,
		a.ID, a.TenantID, a.OpportunityID, a.CandidateName, a.CandidateEmail,
		a.ResumeURL, string(a.Stage), a.Notes, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return recruitment.ErrDuplicateApplication
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

func (r *recruitmentRepository) GetApplication(ctx context.Context, tenantID, id string) (*recruitment.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM applications WHERE tenant_id = $1 AND id = $2`, applicationColumns)

	var a recruitment.Application
	var stage string
	err := q.QueryRow(ctx, query, tenantID, id).Scan(
		&a.ID, &a.TenantID, &a.OpportunityID, &a.CandidateName, &a.CandidateEmail,
		&a.ResumeURL, &stage, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, recruitment.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	a.Stage = recruitment.ApplicationStage(stage)

	return &a, nil
}

func (r *recruitmentRepository) ListApplications(ctx context.Context, tenantID, opportunityID string) ([]*recruitment.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM applications
		WHERE tenant_id = $1 AND opportunity_id = $2
		ORDER BY created_at
	`, applicationColumns)

	rows, err := q.Query(ctx, query, tenantID, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var applications []*recruitment.Application
	for rows.Next() {
		var a recruitment.Application
		var stage string
		if err := rows.Scan(
			&a.ID, &a.TenantID, &a.OpportunityID, &a.CandidateName, &a.CandidateEmail,
			&a.ResumeURL, &stage, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		a.Stage = recruitment.ApplicationStage(stage)
		applications = append(applications, &a)
	}

	return applications, rows.Err()
}

func (r *recruitmentRepository) SetApplicationStage(ctx context.Context, tenantID, id string, stage recruitment.ApplicationStage, notes *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE applications
		SET stage = $1, notes = COALESCE($2, notes), updated_at = $3
		WHERE tenant_id = $4 AND id = $5
	`
	result, err := q.Exec(ctx, query, string(stage), notes, time.Now(), tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to set application stage: %w", err)
	}
	if result.RowsAffected() == 0 {
		return recruitment.ErrApplicationNotFound
	}

	return nil
}
