// Package auth carries the authenticated caller through a request context.
// Authentication middleware stores a Principal; handlers read it back
// explicitly instead of reaching into framework-owned request state.
package auth

import (
	"context"

	"academy_portal/internal/model"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Role   model.Role
}

// IsStaff reports whether the principal may manage the catalog.
func (p Principal) IsStaff() bool {
	return p.Role == model.RoleStaff || p.Role == model.RoleAdmin
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored in ctx. The boolean is false for
// unauthenticated requests.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
