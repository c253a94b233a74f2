package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/tenant"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
)

type sessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) session.Repository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *session.Session) error {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.CreatedAt = time.Now()

	query := `
		INSERT INTO sessions (id, tenant_id, user_id, employee_id, role, tier, csrf_token,
			audit_verified_at, ip_address, user_agent, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := q.Exec(ctx, query,
		s.ID, s.TenantID, s.UserID, s.EmployeeID, string(s.Role), int(s.Tier), s.CSRFToken,
		s.AuditVerifiedAt, s.IPAddress, s.UserAgent, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, user_id, employee_id, role, tier, csrf_token,
			audit_verified_at, ip_address, user_agent, created_at, expires_at
		FROM sessions
		WHERE id = $1
	`

	var s session.Session
	var role string
	var tier int
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.TenantID, &s.UserID, &s.EmployeeID, &role, &tier, &s.CSRFToken,
		&s.AuditVerifiedAt, &s.IPAddress, &s.UserAgent, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	s.Role = user.Role(role)
	s.Tier = tenant.Tier(tier)

	return &s, nil
}

func (r *sessionRepository) SetAuditVerifiedAt(ctx context.Context, id string, verifiedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE sessions SET audit_verified_at = $1 WHERE id = $2`
	result, err := q.Exec(ctx, query, verifiedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark session audit verified: %w", err)
	}
	if result.RowsAffected() == 0 {
		return session.ErrSessionNotFound
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete sessions for user: %w", err)
	}

	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return result.RowsAffected(), nil
}
