package service

import (
	"slices"

	"github.com/MKhiriev/go-auth-keeper/models"
)

// AuthorizationGate is an immutable set of roles allowed through a route.
// The zero value allows nobody.
type AuthorizationGate struct {
	roles map[models.Role]struct{}
}

// NewAuthorizationGate builds a gate admitting the given roles. Empty and
// unknown roles are dropped; a gate left with no roles forbids everything.
func NewAuthorizationGate(roles ...models.Role) AuthorizationGate {
	set := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		if role.IsValid() {
			set[role] = struct{}{}
		}
	}

	return AuthorizationGate{roles: set}
}

// Authorize admits identity iff its role belongs to the gate.
// A nil or unresolved identity is always forbidden.
func (g AuthorizationGate) Authorize(identity *models.Identity) (models.Permit, error) {
	if identity == nil || !identity.IsResolved() {
		return models.Permit{}, ErrForbidden
	}

	if _, ok := g.roles[identity.Role]; !ok {
		return models.Permit{}, ErrForbidden
	}

	return models.Permit{Identity: *identity, GrantedBy: identity.Role}, nil
}

// Roles returns the admitted roles in sorted order.
func (g AuthorizationGate) Roles() []models.Role {
	roles := make([]models.Role, 0, len(g.roles))
	for role := range g.roles {
		roles = append(roles, role)
	}
	slices.Sort(roles)

	return roles
}
