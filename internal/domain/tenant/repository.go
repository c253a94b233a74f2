package tenant

import "context"

// Repository defines the tenant repository interface
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	UpdateTier(ctx context.Context, id string, tier Tier) error

	// ListIDs returns every tenant id; scheduled sweeps iterate it.
	ListIDs(ctx context.Context) ([]string, error)
}
