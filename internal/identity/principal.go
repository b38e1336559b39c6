package identity

import (
	"context"
	"slices"
)

// Principal is the authenticated caller.
type Principal struct {
	ID       uint
	Role     string
	Metadata map[string]any
}

func (p *Principal) HasRole(roles ...string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(roles, p.Role)
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// CurrentPrincipal returns the principal attached to ctx, or nil.
func CurrentPrincipal(ctx context.Context) *Principal {
	p, _ := ctx.Value(ctxKey{}).(*Principal)
	return p
}
