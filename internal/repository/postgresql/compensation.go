package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/compensation"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
)

type compensationRepository struct {
	db *database.DB
}

// NewCompensationRepository creates a new compensation repository
func NewCompensationRepository(db *database.DB) compensation.Repository {
	return &compensationRepository{db: db}
}

func (r *compensationRepository) CreatePayBand(ctx context.Context, b *compensation.PayBand) error {
	q := GetQuerier(ctx, r.db)

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `
		INSERT INTO pay_bands (id, tenant_id, name, min_salary, max_salary, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query, b.ID, b.TenantID, b.Name, b.MinSalary, b.MaxSalary, b.Currency, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create pay band: %w", err)
	}

	return nil
}

func (r *compensationRepository) GetPayBand(ctx context.Context, tenantID, id string) (*compensation.PayBand, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, name, min_salary, max_salary, currency, created_at, updated_at
		FROM pay_bands
		WHERE tenant_id = $1 AND id = $2
	`

	var b compensation.PayBand
	err := q.QueryRow(ctx, query, tenantID, id).Scan(
		&b.ID, &b.TenantID, &b.Name, &b.MinSalary, &b.MaxSalary, &b.Currency, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, compensation.ErrPayBandNotFound
		}
		return nil, fmt.Errorf("failed to get pay band: %w", err)
	}

	return &b, nil
}

func (r *compensationRepository) ListPayBands(ctx context.Context, tenantID string) ([]*compensation.PayBand, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, name, min_salary, max_salary, currency, created_at, updated_at
		FROM pay_bands
		WHERE tenant_id = $1
		ORDER BY min_salary
	`

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay bands: %w", err)
	}
	defer rows.Close()

	var bands []*compensation.PayBand
	for rows.Next() {
		var b compensation.PayBand
		if err := rows.Scan(&b.ID, &b.TenantID, &b.Name, &b.MinSalary, &b.MaxSalary, &b.Currency, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pay band: %w", err)
		}
		bands = append(bands, &b)
	}

	return bands, rows.Err()
}

func (r *compensationRepository) UpdatePayBand(ctx context.Context, b *compensation.PayBand) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_bands
		SET name = $1, min_salary = $2, max_salary = $3, currency = $4, updated_at = $5
		WHERE tenant_id = $6 AND id = $7
	`
	result, err := q.Exec(ctx, query, b.Name, b.MinSalary, b.MaxSalary, b.Currency, time.Now(), b.TenantID, b.ID)
	if err != nil {
		return fmt.Errorf("failed to update pay band: %w", err)
	}
	if result.RowsAffected() == 0 {
		return compensation.ErrPayBandNotFound
	}

	return nil
}

func (r *compensationRepository) DeletePayBand(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM pay_bands WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to delete pay band: %w", err)
	}
	if result.RowsAffected() == 0 {
		return compensation.ErrPayBandNotFound
	}

	return nil
}

func (r *compensationRepository) CreateRecord(ctx context.Context, rec *compensation.Record) error {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec.CreatedAt = time.Now()

	query := `
		INSERT INTO compensation_records
			(id, tenant_id, employee_id, pay_band_id, salary, currency, effective_date, change_reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := q.Exec(ctx, query,
		rec.ID, rec.TenantID, rec.EmployeeID, rec.PayBandID, rec.Salary, rec.Currency,
		rec.EffectiveDate, rec.ChangeReason, rec.CreatedBy, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create compensation record: %w", err)
	}

	return nil
}

const compensationRecordColumns = `id, tenant_id, employee_id, pay_band_id, salary, currency,
	effective_date, change_reason, created_by, created_at`

func (r *compensationRepository) ListRecordsByEmployee(ctx context.Context, tenantID, employeeID string) ([]*compensation.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM compensation_records
		WHERE tenant_id = $1 AND employee_id = $2
		ORDER BY effective_date DESC
	`, compensationRecordColumns)

	rows, err := q.Query(ctx, query, tenantID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list compensation records: %w", err)
	}
	defer rows.Close()

	var records []*compensation.Record
	for rows.Next() {
		var rec compensation.Record
		if err := rows.Scan(
			&rec.ID, &rec.TenantID, &rec.EmployeeID, &rec.PayBandID, &rec.Salary, &rec.Currency,
			&rec.EffectiveDate, &rec.ChangeReason, &rec.CreatedBy, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan compensation record: %w", err)
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

func (r *compensationRepository) GetCurrentRecord(ctx context.Context, tenantID, employeeID string) (*compensation.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM compensation_records
		WHERE tenant_id = $1 AND employee_id = $2 AND effective_date <= $3
		ORDER BY effective_date DESC
		LIMIT 1
	`, compensationRecordColumns)

	var rec compensation.Record
	err := q.QueryRow(ctx, query, tenantID, employeeID, time.Now()).Scan(
		&rec.ID, &rec.TenantID, &rec.EmployeeID, &rec.PayBandID, &rec.Salary, &rec.Currency,
		&rec.EffectiveDate, &rec.ChangeReason, &rec.CreatedBy, &rec.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, compensation.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get current compensation record: %w", err)
	}

	return &rec, nil
}
