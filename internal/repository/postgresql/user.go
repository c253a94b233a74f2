package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

const userColumns = `u.id, u.tenant_id, u.email, u.password_hash, u.role,
	u.oauth_provider, u.oauth_id, u.is_active, u.created_at, u.updated_at, e.id`

// userSelect joins the employee record so callers get the employee id in one
// round trip.
const userSelect = `
	SELECT ` + userColumns + `
	FROM users u
	LEFT JOIN employees e ON e.user_id = u.id
`

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	q := GetQuerier(ctx, r.db)

	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	query := `
		INSERT INTO users (id, tenant_id, email, password_hash, role, oauth_provider, oauth_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := q.Exec(ctx, query,
		u.ID, u.TenantID, strings.ToLower(u.Email), u.PasswordHash, string(u.Role),
		u.OAuthProvider, u.OAuthID, u.IsActive, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	q := GetQuerier(ctx, r.db)

	return scanUser(q.QueryRow(ctx, userSelect+` WHERE u.id = $1`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, tenantID, email string) (*user.User, error) {
	q := GetQuerier(ctx, r.db)

	return scanUser(q.QueryRow(ctx, userSelect+` WHERE u.tenant_id = $1 AND u.email = LOWER($2)`, tenantID, email))
}

func (r *userRepository) GetByEmailAnyTenant(ctx context.Context, email string) (*user.User, error) {
	q := GetQuerier(ctx, r.db)

	return scanUser(q.QueryRow(ctx, userSelect+` WHERE u.email = LOWER($1) ORDER BY u.created_at LIMIT 1`, email))
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	var role string
	err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &role,
		&u.OAuthProvider, &u.OAuthID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.EmployeeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Role = user.Role(role)

	return &u, nil
}

func (r *userRepository) ListByRole(ctx context.Context, tenantID string, roles []user.Role) ([]*user.User, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	placeholders := make([]string, len(roles))
	args := make([]interface{}, len(roles)+1)
	args[0] = tenantID
	for i, role := range roles {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args[i+1] = string(role)
	}

	query := userSelect + fmt.Sprintf(`
		WHERE u.tenant_id = $1 AND u.role IN (%s) AND u.is_active = true
		ORDER BY u.email
	`, strings.Join(placeholders, ", "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		var u user.User
		var roleStr string
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &roleStr,
			&u.OAuthProvider, &u.OAuthID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.EmployeeID); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Role = user.Role(roleStr)
		users = append(users, &u)
	}

	return users, rows.Err()
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role user.Role) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`
	result, err := q.Exec(ctx, query, string(role), time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET is_active = false, updated_at = $1 WHERE id = $2`
	result, err := q.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
