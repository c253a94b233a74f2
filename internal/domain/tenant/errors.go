package tenant

import "errors"

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrSlugExists     = errors.New("tenant slug already taken")
	ErrTierRequired   = errors.New("subscription tier does not include this feature")
)
