// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

// Package sec provides security primitives shared across the platform:
// the effective session identity, role tags, password hashing, and the
// signed session cookie token.
//
// # Architecture
//
// This package isolates security-sensitive code from the domain logic. The
// [Identity] type defined here is the single representation of "who is acting"
// that middleware, handlers, and services consume — whether it is the real
// session or an impersonated one is decided upstream by the session store.
package sec

// Identity is the authenticated principal as visible to the application.
//
// It is the payload stored in the server-side session slot and returned by
// the session probe endpoint. An Identity with an empty role set is invalid
// and must be treated as "no session" by every consumer.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Roles []Role `json:"roles"`

	// OrganizationID is required semantically for USER identities (a customer
	// belongs to exactly one organization) and absent for ADMIN identities.
	OrganizationID *string `json:"organization_id,omitempty"`

	// Locale preferences. Display-only, never load-bearing for authorization.
	Language string `json:"language,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Valid reports whether the identity can be treated as a live session.
// A nil identity or one with an empty role set is equivalent to "no session".
func (i *Identity) Valid() bool {
	return i != nil && len(i.Roles) > 0
}

// HasRole reports whether the identity carries the given role tag.
func (i *Identity) HasRole(role Role) bool {
	if i == nil {
		return false
	}
	return HasRole(i.Roles, role)
}

// HasAnyRole reports whether the identity's role set intersects the required set.
func (i *Identity) HasAnyRole(required ...Role) bool {
	if !i.Valid() {
		return false
	}
	return Intersects(i.Roles, required)
}

// IsAdmin reports whether the identity carries the ADMIN role.
func (i *Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}
