package user

import "context"

// Repository defines the user repository interface
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*User, error)
	GetByEmailAnyTenant(ctx context.Context, email string) (*User, error)
	ListByRole(ctx context.Context, tenantID string, roles []Role) ([]*User, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	Deactivate(ctx context.Context, id string) error
}
