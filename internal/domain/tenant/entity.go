package tenant

import "time"

// Tier is the subscription level of a tenant. Premium modules (absence
// insights, recruitment) require a minimum tier unless the caller's role
// overrides the check.
type Tier int

const (
	TierStarter      Tier = 1
	TierProfessional Tier = 2
	TierEnterprise   Tier = 3
)

type Tenant struct {
	ID        string
	Name      string
	Slug      string
	Tier      Tier
	CreatedAt time.Time
	UpdatedAt time.Time
}
