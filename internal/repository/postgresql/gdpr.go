package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/gdpr"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
)

type gdprRepository struct {
	db *database.DB
}

// NewGDPRRepository creates a new gdpr repository
func NewGDPRRepository(db *database.DB) gdpr.Repository {
	return &gdprRepository{db: db}
}

const dataRequestColumns = `id, tenant_id, employee_id, requested_by, type, status, reason,
	processed_by, processed_at, rejection_reason, export_path, created_at, updated_at`

func (r *gdprRepository) Create(ctx context.Context, req *gdpr.DataRequest) error {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.Status == "" {
		req.Status = gdpr.StatusPending
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO gdpr_requests (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, dataRequestColumns)

	_, err := q.Exec(ctx, query,
		req.ID, req.TenantID, req.EmployeeID, req.RequestedBy, string(req.Type), string(req.Status), req.Reason,
		req.ProcessedBy, req.ProcessedAt, req.RejectionReason, req.ExportPath, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create gdpr request: %w", err)
	}

	return nil
}

func (r *gdprRepository) GetByID(ctx context.Context, tenantID, id string) (*gdpr.DataRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM gdpr_requests WHERE tenant_id = $1 AND id = $2`, dataRequestColumns)

	var req gdpr.DataRequest
	var reqType, status string
	err := q.QueryRow(ctx, query, tenantID, id).Scan(
		&req.ID, &req.TenantID, &req.EmployeeID, &req.RequestedBy, &reqType, &status, &req.Reason,
		&req.ProcessedBy, &req.ProcessedAt, &req.RejectionReason, &req.ExportPath, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, gdpr.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get gdpr request: %w", err)
	}
	req.Type = gdpr.RequestType(reqType)
	req.Status = gdpr.RequestStatus(status)

	return &req, nil
}

func (r *gdprRepository) List(ctx context.Context, tenantID string, page, pageSize int) ([]*gdpr.DataRequest, int, error) {
	q := GetQuerier(ctx, r.db)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM gdpr_requests WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count gdpr requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM gdpr_requests
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, dataRequestColumns)

	rows, err := q.Query(ctx, query, tenantID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list gdpr requests: %w", err)
	}
	defer rows.Close()

	requests, err := collectDataRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *gdprRepository) ListByEmployee(ctx context.Context, tenantID, employeeID string) ([]*gdpr.DataRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM gdpr_requests
		WHERE tenant_id = $1 AND employee_id = $2
		ORDER BY created_at DESC
	`, dataRequestColumns)

	rows, err := q.Query(ctx, query, tenantID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gdpr requests: %w", err)
	}
	defer rows.Close()

	return collectDataRequests(rows)
}

func collectDataRequests(rows pgx.Rows) ([]*gdpr.DataRequest, error) {
	var requests []*gdpr.DataRequest
	for rows.Next() {
		var req gdpr.DataRequest
		var reqType, status string
		if err := rows.Scan(
			&req.ID, &req.TenantID, &req.EmployeeID, &req.RequestedBy, &reqType, &status, &req.Reason,
			&req.ProcessedBy, &req.ProcessedAt, &req.RejectionReason, &req.ExportPath, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan gdpr request: %w", err)
		}
		req.Type = gdpr.RequestType(reqType)
		req.Status = gdpr.RequestStatus(status)
		requests = append(requests, &req)
	}

	return requests, rows.Err()
}

func (r *gdprRepository) HasOpenRequest(ctx context.Context, tenantID, employeeID string, reqType gdpr.RequestType) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM gdpr_requests
			WHERE tenant_id = $1 AND employee_id = $2 AND type = $3
				AND status IN ('pending', 'processing')
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, tenantID, employeeID, string(reqType)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check open gdpr request: %w", err)
	}

	return exists, nil
}

func (r *gdprRepository) SetStatus(ctx context.Context, tenantID, id string, status gdpr.RequestStatus, processedBy *string, processedAt *time.Time, rejectionReason, exportPath *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE gdpr_requests
		SET status = $1, processed_by = $2, processed_at = $3,
			rejection_reason = $4, export_path = COALESCE($5, export_path), updated_at = $6
		WHERE tenant_id = $7 AND id = $8
	`
	result, err := q.Exec(ctx, query, string(status), processedBy, processedAt, rejectionReason, exportPath, time.Now(), tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to set gdpr request status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return gdpr.ErrRequestNotFound
	}

	return nil
}

func (r *gdprRepository) CollectExportBundle(ctx context.Context, tenantID, employeeID string) (*gdpr.ExportBundle, error) {
	q := GetQuerier(ctx, r.db)

	var bundle gdpr.ExportBundle

	err := q.QueryRow(ctx, `
		SELECT first_name, last_name, email, job_title, department, hired_at, employment_status
		FROM employees
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, employeeID).Scan(
		&bundle.Employee.FirstName, &bundle.Employee.LastName, &bundle.Employee.Email,
		&bundle.Employee.JobTitle, &bundle.Employee.Department, &bundle.Employee.HiredAt,
		&bundle.Employee.EmploymentStatus)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, gdpr.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to collect employee data: %w", err)
	}

	reviewRows, err := q.Query(ctx, `
		SELECT review_date, is_self_assessment, is_committed, goals, achievements
		FROM reviews
		WHERE tenant_id = $1 AND employee_id = $2
		ORDER BY review_date
	`, tenantID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect review data: %w", err)
	}
	defer reviewRows.Close()

	for reviewRows.Next() {
		var rev gdpr.ExportReview
		if err := reviewRows.Scan(&rev.ReviewDate, &rev.IsSelfAssessment, &rev.IsCommitted, &rev.Goals, &rev.Achievements); err != nil {
			return nil, fmt.Errorf("failed to scan review data: %w", err)
		}
		bundle.Reviews = append(bundle.Reviews, rev)
	}
	if err := reviewRows.Err(); err != nil {
		return nil, err
	}

	leaveRows, err := q.Query(ctx, `
		SELECT type, start_date, end_date, total_days, status
		FROM leave_requests
		WHERE tenant_id = $1 AND employee_id = $2
		ORDER BY start_date
	`, tenantID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect leave data: %w", err)
	}
	defer leaveRows.Close()

	for leaveRows.Next() {
		var lv gdpr.ExportLeave
		if err := leaveRows.Scan(&lv.Type, &lv.StartDate, &lv.EndDate, &lv.TotalDays, &lv.Status); err != nil {
			return nil, fmt.Errorf("failed to scan leave data: %w", err)
		}
		bundle.LeaveRequests = append(bundle.LeaveRequests, lv)
	}

	return &bundle, leaveRows.Err()
}
