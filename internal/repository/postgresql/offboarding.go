package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/offboarding"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
)

type offboardingRepository struct {
	db *database.DB
}

// NewOffboardingRepository creates a new offboarding repository
func NewOffboardingRepository(db *database.DB) offboarding.Repository {
	return &offboardingRepository{db: db}
}

const workflowColumns = `id, tenant_id, employee_id, initiated_by, termination_type, reason,
	last_working_day, status, completed_at, created_at, updated_at`

func (r *offboardingRepository) CreateWorkflow(ctx context.Context, w *offboarding.Workflow, items []*offboarding.ChecklistItem, interview *offboarding.ExitInterview) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`
			INSERT INTO offboarding_workflows (%s)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, workflowColumns)

		_, err := tx.Exec(ctx, query,
			w.ID, w.TenantID, w.EmployeeID, w.InitiatedBy, string(w.TerminationType), w.Reason,
			w.LastWorkingDay, string(w.Status), w.CompletedAt, w.CreatedAt, w.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create offboarding workflow: %w", err)
		}

		for _, item := range items {
			_, err := tx.Exec(ctx, `
				INSERT INTO offboarding_checklist_items
					(id, workflow_id, item_type, title, assignee_role, sort_order, completed)
				VALUES ($1, $2, $3, $4, $5, $6, false)
			`, item.ID, item.WorkflowID, item.ItemType, item.Title, item.AssigneeRole, item.SortOrder)
			if err != nil {
				return fmt.Errorf("failed to create checklist item: %w", err)
			}
		}

		if interview != nil {
			if interview.ID == "" {
				interview.ID = uuid.New().String()
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO exit_interviews (id, workflow_id, scheduled_at, conducted_by, feedback, completed_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, interview.ID, interview.WorkflowID, interview.ScheduledAt, interview.ConductedBy, interview.Feedback, interview.CompletedAt)
			if err != nil {
				return fmt.Errorf("failed to create exit interview: %w", err)
			}
		}

		return nil
	})
}

func (r *offboardingRepository) GetWorkflow(ctx context.Context, tenantID, id string) (*offboarding.Workflow, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM offboarding_workflows WHERE tenant_id = $1 AND id = $2`, workflowColumns)
	return scanWorkflow(q.QueryRow(ctx, query, tenantID, id))
}

func (r *offboardingRepository) GetActiveByEmployee(ctx context.Context, tenantID, employeeID string) (*offboarding.Workflow, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM offboarding_workflows
		WHERE tenant_id = $1 AND employee_id = $2 AND status IN ('pending', 'in_progress')
	`, workflowColumns)
	return scanWorkflow(q.QueryRow(ctx, query, tenantID, employeeID))
}

func scanWorkflow(row pgx.Row) (*offboarding.Workflow, error) {
	var w offboarding.Workflow
	var termType, status string
	err := row.Scan(
		&w.ID, &w.TenantID, &w.EmployeeID, &w.InitiatedBy, &termType, &w.Reason,
		&w.LastWorkingDay, &status, &w.CompletedAt, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, offboarding.ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("failed to get offboarding workflow: %w", err)
	}
	w.TerminationType = offboarding.TerminationType(termType)
	w.Status = offboarding.WorkflowStatus(status)

	return &w, nil
}

func (r *offboardingRepository) ListWorkflows(ctx context.Context, tenantID string, status *offboarding.WorkflowStatus, page, pageSize int) ([]*offboarding.Workflow, int, error) {
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
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM offboarding_workflows WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count offboarding workflows: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM offboarding_workflows
		WHERE %s
		ORDER BY last_working_day
		LIMIT $%d OFFSET $%d
	`, workflowColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list offboarding workflows: %w", err)
	}
	defer rows.Close()

	workflows, err := collectWorkflows(rows)
	if err != nil {
		return nil, 0, err
	}

	return workflows, total, nil
}

func collectWorkflows(rows pgx.Rows) ([]*offboarding.Workflow, error) {
	var workflows []*offboarding.Workflow
	for rows.Next() {
		var w offboarding.Workflow
		var termType, status string
		if err := rows.Scan(
			&w.ID, &w.TenantID, &w.EmployeeID, &w.InitiatedBy, &termType, &w.Reason,
			&w.LastWorkingDay, &status, &w.CompletedAt, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan offboarding workflow: %w", err)
		}
		w.TerminationType = offboarding.TerminationType(termType)
		w.Status = offboarding.WorkflowStatus(status)
		workflows = append(workflows, &w)
	}

	return workflows, rows.Err()
}

func (r *offboardingRepository) SetWorkflowStatus(ctx context.Context, tenantID, id string, status offboarding.WorkflowStatus, completedAt *time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE offboarding_workflows
		SET status = $1, completed_at = $2, updated_at = $3
		WHERE tenant_id = $4 AND id = $5
	`
	result, err := q.Exec(ctx, query, string(status), completedAt, time.Now(), tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to set workflow status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return offboarding.ErrWorkflowNotFound
	}

	return nil
}

const checklistItemColumns = `id, workflow_id, item_type, title, assignee_role, sort_order,
	completed, completed_by, completed_at, notes`

func (r *offboardingRepository) GetChecklist(ctx context.Context, workflowID string) ([]*offboarding.ChecklistItem, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM offboarding_checklist_items
		WHERE workflow_id = $1
		ORDER BY sort_order
	`, checklistItemColumns)

	rows, err := q.Query(ctx, query, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist: %w", err)
	}
	defer rows.Close()

	var items []*offboarding.ChecklistItem
	for rows.Next() {
		var item offboarding.ChecklistItem
		if err := rows.Scan(
			&item.ID, &item.WorkflowID, &item.ItemType, &item.Title, &item.AssigneeRole, &item.SortOrder,
			&item.Completed, &item.CompletedBy, &item.CompletedAt, &item.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *offboardingRepository) GetChecklistItem(ctx context.Context, id string) (*offboarding.ChecklistItem, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM offboarding_checklist_items WHERE id = $1`, checklistItemColumns)

	var item offboarding.ChecklistItem
	err := q.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.WorkflowID, &item.ItemType, &item.Title, &item.AssigneeRole, &item.SortOrder,
		&item.Completed, &item.CompletedBy, &item.CompletedAt, &item.Notes)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, offboarding.ErrChecklistItemNotFound
		}
		return nil, fmt.Errorf("failed to get checklist item: %w", err)
	}

	return &item, nil
}

func (r *offboardingRepository) UpdateChecklistItem(ctx context.Context, id string, completed bool, completedBy *string, completedAt *time.Time, notes *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE offboarding_checklist_items
		SET completed = $1, completed_by = $2, completed_at = $3, notes = COALESCE($4, notes)
		WHERE id = $5
	`
	result, err := q.Exec(ctx, query, completed, completedBy, completedAt, notes, id)
	if err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return offboarding.ErrChecklistItemNotFound
	}

	return nil
}

func (r *offboardingRepository) CountIncompleteItems(ctx context.Context, workflowID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	query := `SELECT COUNT(*) FROM offboarding_checklist_items WHERE workflow_id = $1 AND completed = false`
	if err := q.QueryRow(ctx, query, workflowID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count incomplete items: %w", err)
	}

	return count, nil
}

func (r *offboardingRepository) CreateHandoverItem(ctx context.Context, h *offboarding.HandoverItem) error {
	q := GetQuerier(ctx, r.db)

	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.Status == "" {
		h.Status = offboarding.HandoverPending
	}
	h.CreatedAt = time.Now()

	query := `
		INSERT INTO offboarding_handover_items (id, workflow_id, title, description, recipient_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query, h.ID, h.WorkflowID, h.Title, h.Description, h.RecipientID, string(h.Status), h.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create handover item: %w", err)
	}

	return nil
}

func (r *offboardingRepository) ListHandoverItems(ctx context.Context, workflowID string) ([]*offboarding.HandoverItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, workflow_id, title, description, recipient_id, status, created_at
		FROM offboarding_handover_items
		WHERE workflow_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list handover items: %w", err)
	}
	defer rows.Close()

	var items []*offboarding.HandoverItem
	for rows.Next() {
		var h offboarding.HandoverItem
		var status string
		if err := rows.Scan(&h.ID, &h.WorkflowID, &h.Title, &h.Description, &h.RecipientID, &status, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan handover item: %w", err)
		}
		h.Status = offboarding.HandoverItemStatus(status)
		items = append(items, &h)
	}

	return items, rows.Err()
}

func (r *offboardingRepository) SetHandoverItemStatus(ctx context.Context, id string, status offboarding.HandoverItemStatus) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `UPDATE offboarding_handover_items SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to set handover item status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return offboarding.ErrHandoverItemNotFound
	}

	return nil
}

func (r *offboardingRepository) GetExitInterview(ctx context.Context, workflowID string) (*offboarding.ExitInterview, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, workflow_id, scheduled_at, conducted_by, feedback, completed_at
		FROM exit_interviews
		WHERE workflow_id = $1
	`

	var iv offboarding.ExitInterview
	err := q.QueryRow(ctx, query, workflowID).Scan(
		&iv.ID, &iv.WorkflowID, &iv.ScheduledAt, &iv.ConductedBy, &iv.Feedback, &iv.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, offboarding.ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to get exit interview: %w", err)
	}

	return &iv, nil
}

func (r *offboardingRepository) SubmitExitInterview(ctx context.Context, workflowID, conductedBy, feedback string, completedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE exit_interviews
		SET conducted_by = $1, feedback = $2, completed_at = $3
		WHERE workflow_id = $4
	`
	result, err := q.Exec(ctx, query, conductedBy, feedback, completedAt, workflowID)
	if err != nil {
		return fmt.Errorf("failed to submit exit interview: %w", err)
	}
	if result.RowsAffected() == 0 {
		return offboarding.ErrInterviewNotFound
	}

	return nil
}

func (r *offboardingRepository) CompleteWorkflow(ctx context.Context, tenantID, id string, completedAt time.Time) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var employeeID string
		var incomplete int

		// Lock the workflow row so two completion requests serialize.
		err := tx.QueryRow(ctx, `
			SELECT employee_id FROM offboarding_workflows
			WHERE tenant_id = $1 AND id = $2 AND status IN ('pending', 'in_progress')
			FOR UPDATE
		`, tenantID, id).Scan(&employeeID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return offboarding.ErrWorkflowNotFound
			}
			return fmt.Errorf("failed to lock workflow: %w", err)
		}

		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM offboarding_checklist_items
			WHERE workflow_id = $1 AND completed = false
		`, id).Scan(&incomplete)
		if err != nil {
			return fmt.Errorf("failed to count incomplete items: %w", err)
		}
		if incomplete > 0 {
			return offboarding.ErrChecklistIncomplete
		}

		_, err = tx.Exec(ctx, `
			UPDATE offboarding_workflows
			SET status = 'completed', completed_at = $1, updated_at = $1
			WHERE tenant_id = $2 AND id = $3
		`, completedAt, tenantID, id)
		if err != nil {
			return fmt.Errorf("failed to complete workflow: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE employees
			SET employment_status = 'offboarded', updated_at = $1
			WHERE tenant_id = $2 AND id = $3
		`, completedAt, tenantID, employeeID)
		if err != nil {
			return fmt.Errorf("failed to offboard employee: %w", err)
		}

		return nil
	})
}

func (r *offboardingRepository) ListByLastWorkingDay(ctx context.Context, day time.Time) ([]*offboarding.Workflow, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM offboarding_workflows
		WHERE last_working_day = $1 AND status IN ('pending', 'in_progress')
	`, workflowColumns)

	rows, err := q.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows by last working day: %w", err)
	}
	defer rows.Close()

	return collectWorkflows(rows)
}
