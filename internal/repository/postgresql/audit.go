package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/audit"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepository{db: db}
}

const auditColumns = `id, tenant_id, actor_id, action, target_type, target_id, details, created_at`

func (r *auditRepository) Record(ctx context.Context, e *audit.Event) error {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	detailsJSON, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO audit_events (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, auditColumns)

	_, err = q.Exec(ctx, query,
		e.ID, e.TenantID, e.ActorID, e.Action, e.TargetType, e.TargetID, detailsJSON, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}

	return nil
}

func (r *auditRepository) List(ctx context.Context, tenantID string, page, pageSize int) ([]*audit.Event, int, error) {
	q := GetQuerier(ctx, r.db)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM audit_events WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM audit_events
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, auditColumns)

	rows, err := q.Query(ctx, query, tenantID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	events, err := collectAuditEvents(rows)
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *auditRepository) ListByTarget(ctx context.Context, tenantID, targetType, targetID string) ([]*audit.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM audit_events
		WHERE tenant_id = $1 AND target_type = $2 AND target_id = $3
		ORDER BY created_at DESC
	`, auditColumns)

	rows, err := q.Query(ctx, query, tenantID, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	return collectAuditEvents(rows)
}

func collectAuditEvents(rows pgx.Rows) ([]*audit.Event, error) {
	var events []*audit.Event
	for rows.Next() {
		var e audit.Event
		var detailsJSON []byte
		if err := rows.Scan(&e.ID, &e.TenantID, &e.ActorID, &e.Action, &e.TargetType, &e.TargetID, &detailsJSON, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		if detailsJSON != nil {
			if err := json.Unmarshal(detailsJSON, &e.Details); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit details: %w", err)
			}
		}
		events = append(events, &e)
	}

	return events, rows.Err()
}
