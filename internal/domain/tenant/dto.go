package tenant

import (
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/validator"
)

type UpdateTierRequest struct {
	Tier int `json:"tier"`
}

func (r *UpdateTierRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Tier < int(TierStarter) || r.Tier > int(TierEnterprise) {
		errs = append(errs, validator.ValidationError{Field: "tier", Message: "tier must be between 1 and 3"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TenantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Tier int    `json:"tier"`
}

func ToResponse(t *Tenant) TenantResponse {
	return TenantResponse{
		ID:   t.ID,
		Name: t.Name,
		Slug: t.Slug,
		Tier: int(t.Tier),
	}
}
