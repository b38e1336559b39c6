package tenant

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/identity"
)

var ErrTenantNotFound = errors.New("tenant not found")

// Lookup finds the tenant linked to a user through one relation. Each
// method reports found=false when the relation does not exist.
type Lookup interface {
	TenantIDByOwner(ctx context.Context, userID uint) (uint, bool, error)
	TenantIDByPersonnel(ctx context.Context, userID uint) (uint, bool, error)
	TenantIDByProfile(ctx context.Context, userID uint) (uint, bool, error)
}

type Resolver struct {
	lookup Lookup
}

func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve returns the tenant of p. Ownership wins over a personnel link,
// which wins over the profile's cached tenant.
func (r *Resolver) Resolve(ctx context.Context, p *identity.Principal) (uint, error) {
	if p == nil || p.ID == 0 {
		return 0, ErrTenantNotFound
	}

	steps := []func(context.Context, uint) (uint, bool, error){
		r.lookup.TenantIDByOwner,
		r.lookup.TenantIDByPersonnel,
		r.lookup.TenantIDByProfile,
	}

	for _, step := range steps {
		id, found, err := step(ctx, p.ID)
		if err != nil {
			return 0, err
		}
		if found && id != 0 {
			return id, nil
		}
	}

	return 0, ErrTenantNotFound
}
