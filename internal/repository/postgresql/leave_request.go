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

type leaveRequestRepository struct {
	db *database.DB
}

// NewLeaveRequestRepository creates a new leave request repository
func NewLeaveRequestRepository(db *database.DB) absence.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `id, tenant_id, employee_id, type, start_date, end_date, total_days,
	reason, status, requested_at, approved_by, approved_at, rejection_reason, created_at, updated_at`

func (r *leaveRequestRepository) Create(ctx context.Context, l *absence.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO leave_requests (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, leaveRequestColumns)

	_, err := q.Exec(ctx, query,
		l.ID, l.TenantID, l.EmployeeID, string(l.Type), l.StartDate, l.EndDate, l.TotalDays,
		l.Reason, string(l.Status), l.RequestedAt, l.ApprovedBy, l.ApprovedAt, l.RejectionReason,
		l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}

	return nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, tenantID, id string) (*absence.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM leave_requests WHERE tenant_id = $1 AND id = $2`, leaveRequestColumns)

	var l absence.LeaveRequest
	var leaveType, status string
	err := q.QueryRow(ctx, query, tenantID, id).Scan(
		&l.ID, &l.TenantID, &l.EmployeeID, &leaveType, &l.StartDate, &l.EndDate, &l.TotalDays,
		&l.Reason, &status, &l.RequestedAt, &l.ApprovedBy, &l.ApprovedAt, &l.RejectionReason,
		&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, absence.ErrLeaveRequestNotFound
		}
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}
	l.Type = absence.LeaveType(leaveType)
	l.Status = absence.LeaveRequestStatus(status)

	return &l, nil
}

func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, tenantID, employeeID string, since time.Time) ([]*absence.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_requests
		WHERE tenant_id = $1 AND employee_id = $2 AND start_date >= $3
		ORDER BY start_date DESC
	`, leaveRequestColumns)

	rows, err := q.Query(ctx, query, tenantID, employeeID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepository) ListByStatus(ctx context.Context, tenantID string, status absence.LeaveRequestStatus, page, pageSize int) ([]*absence.LeaveRequest, int, error) {
	q := GetQuerier(ctx, r.db)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int
	countQuery := `SELECT COUNT(*) FROM leave_requests WHERE tenant_id = $1 AND status = $2`
	if err := q.QueryRow(ctx, countQuery, tenantID, string(status)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM leave_requests
		WHERE tenant_id = $1 AND status = $2
		ORDER BY requested_at DESC
		LIMIT $3 OFFSET $4
	`, leaveRequestColumns)

	rows, err := q.Query(ctx, query, tenantID, string(status), pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]*absence.LeaveRequest, error) {
	var requests []*absence.LeaveRequest
	for rows.Next() {
		var l absence.LeaveRequest
		var leaveType, status string
		if err := rows.Scan(
			&l.ID, &l.TenantID, &l.EmployeeID, &leaveType, &l.StartDate, &l.EndDate, &l.TotalDays,
			&l.Reason, &status, &l.RequestedAt, &l.ApprovedBy, &l.ApprovedAt, &l.RejectionReason,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		l.Type = absence.LeaveType(leaveType)
		l.Status = absence.LeaveRequestStatus(status)
		requests = append(requests, &l)
	}

	return requests, rows.Err()
}

func (r *leaveRequestRepository) CheckOverlapping(ctx context.Context, tenantID, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE tenant_id = $1 AND employee_id = $2
				AND status IN ('waiting_approval', 'approved')
				AND start_date <= $4 AND end_date >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, tenantID, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave: %w", err)
	}

	return exists, nil
}

func (r *leaveRequestRepository) SetStatus(ctx context.Context, tenantID, id string, status absence.LeaveRequestStatus, approvedBy *string, approvedAt *time.Time, rejectionReason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4, updated_at = $5
		WHERE tenant_id = $6 AND id = $7
	`
	result, err := q.Exec(ctx, query, string(status), approvedBy, approvedAt, rejectionReason, time.Now(), tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to set leave request status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return absence.ErrLeaveRequestNotFound
	}

	return nil
}

func (r *leaveRequestRepository) ListEmployeeIDsWithLeave(ctx context.Context, tenantID string, since time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employee_id FROM leave_requests
		WHERE tenant_id = $1 AND status = 'approved' AND start_date >= $2
	`

	rows, err := q.Query(ctx, query, tenantID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees with leave: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
