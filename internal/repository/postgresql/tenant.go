package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/tenant"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
)

type tenantRepository struct {
	db *database.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *database.DB) tenant.Repository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO tenants (id, name, slug, tier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query, t.ID, t.Name, t.Slug, int(t.Tier), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return tenant.ErrSlugExists
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	return nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *tenantRepository) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	return r.getBy(ctx, "slug = $1", slug)
}

func (r *tenantRepository) getBy(ctx context.Context, where string, arg interface{}) (*tenant.Tenant, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT id, name, slug, tier, created_at, updated_at
		FROM tenants
		WHERE %s
	`, where)

	var t tenant.Tenant
	var tier int
	err := q.QueryRow(ctx, query, arg).Scan(&t.ID, &t.Name, &t.Slug, &tier, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	t.Tier = tenant.Tier(tier)

	return &t, nil
}

func (r *tenantRepository) ListIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM tenants ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenant ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan tenant id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *tenantRepository) UpdateTier(ctx context.Context, id string, tier tenant.Tier) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE tenants SET tier = $1, updated_at = $2 WHERE id = $3`
	result, err := q.Exec(ctx, query, int(tier), time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update tenant tier: %w", err)
	}
	if result.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}

	return nil
}
