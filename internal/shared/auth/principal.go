// Package auth carries the authenticated caller through a request context.
package auth

import (
	"context"
	"slices"
	"time"
)

// Well-known role names.
const (
	RoleUser          = "User"
	RoleAdministrator = "Administrator"
)

// Principal is the identity derived from a validated bearer token.
// It is built once per request and never mutated afterwards.
type Principal struct {
	UserID    string
	Username  string
	Email     string
	Roles     []string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Claims    map[string]any
}

// HasRole reports whether the principal holds any of the given roles.
func (p *Principal) HasRole(roles ...string) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if slices.Contains(p.Roles, r) {
			return true
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by WithPrincipal, if any.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
