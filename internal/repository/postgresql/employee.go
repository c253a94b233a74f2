package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/employee"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, tenant_id, user_id, first_name, last_name, email, job_title,
	department, manager_id, hired_at, employment_status, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.EmploymentStatus == "" {
		e.EmploymentStatus = employee.StatusActive
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO employees (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, employeeColumns)

	_, err := q.Exec(ctx, query,
		e.ID, e.TenantID, e.UserID, e.FirstName, e.LastName, e.Email, e.JobTitle,
		e.Department, e.ManagerID, e.HiredAt, string(e.EmploymentStatus), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, tenantID, id string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE tenant_id = $1 AND id = $2`, employeeColumns)
	return scanEmployee(q.QueryRow(ctx, query, tenantID, id))
}

func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE user_id = $1`, employeeColumns)
	return scanEmployee(q.QueryRow(ctx, query, userID))
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var e employee.Employee
	var status string
	err := row.Scan(&e.ID, &e.TenantID, &e.UserID, &e.FirstName, &e.LastName, &e.Email, &e.JobTitle,
		&e.Department, &e.ManagerID, &e.HiredAt, &status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	e.EmploymentStatus = employee.EmploymentStatus(status)

	return &e, nil
}

func (r *employeeRepository) List(ctx context.Context, tenantID string, page, pageSize int) ([]*employee.Employee, int, error) {
	q := GetQuerier(ctx, r.db)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE tenant_id = $1
		ORDER BY last_name, first_name
		LIMIT $2 OFFSET $3
	`, employeeColumns)

	rows, err := q.Query(ctx, query, tenantID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *employeeRepository) ListByManager(ctx context.Context, tenantID, managerEmployeeID string) ([]*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE tenant_id = $1 AND manager_id = $2
		ORDER BY last_name, first_name
	`, employeeColumns)

	rows, err := q.Query(ctx, query, tenantID, managerEmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by manager: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	for rows.Next() {
		var e employee.Employee
		var status string
		if err := rows.Scan(&e.ID, &e.TenantID, &e.UserID, &e.FirstName, &e.LastName, &e.Email, &e.JobTitle,
			&e.Department, &e.ManagerID, &e.HiredAt, &status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.EmploymentStatus = employee.EmploymentStatus(status)
		employees = append(employees, &e)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, tenantID, id string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{}
	args := []interface{}{}
	idx := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.FirstName != nil {
		addSet("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		addSet("last_name", *req.LastName)
	}
	if req.JobTitle != nil {
		addSet("job_title", *req.JobTitle)
	}
	if req.Department != nil {
		addSet("department", *req.Department)
	}
	if req.ManagerID != nil {
		addSet("manager_id", *req.ManagerID)
	}

	if len(sets) == 0 {
		return nil
	}
	addSet("updated_at", time.Now())

	query := fmt.Sprintf(`UPDATE employees SET %s WHERE tenant_id = $%d AND id = $%d`,
		strings.Join(sets, ", "), idx, idx+1)
	args = append(args, tenantID, id)

	result, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) SetEmploymentStatus(ctx context.Context, tenantID, id string, status employee.EmploymentStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE employees SET employment_status = $1, updated_at = $2 WHERE tenant_id = $3 AND id = $4`
	result, err := q.Exec(ctx, query, string(status), time.Now(), tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to set employment status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Anonymize blanks personal fields while keeping the row for referential integrity.
func (r *employeeRepository) Anonymize(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET first_name = 'Redacted', last_name = 'Employee',
			email = CONCAT('redacted-', id, '@anonymized.invalid'),
			job_title = '', department = '', manager_id = NULL, user_id = NULL,
			updated_at = $1
		WHERE tenant_id = $2 AND id = $3
	`
	result, err := q.Exec(ctx, query, time.Now(), tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to anonymize employee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
