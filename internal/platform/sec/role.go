// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package sec

// # User Roles

// Role represents an authorization tag granted to an identity.
//
// Terralens has exactly two areas — the internal admin console and the
// customer application — so the role model is a flat set, not a hierarchy.
type Role string

const (
	// Platform operators: manage organizations, accounts, and all projects.
	RoleAdmin Role = "ADMIN"

	// Customer members: scoped to the projects of their own organization.
	RoleUser Role = "USER"
)

// Valid reports whether the role is one of the known enumeration values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// # Role Set Operations

// HasRole reports whether the set contains the given role.
func HasRole(set []Role, role Role) bool {
	for _, r := range set {
		if r == role {
			return true
		}
	}
	return false
}

// Intersects reports whether the two role sets share at least one role.
func Intersects(set, required []Role) bool {
	for _, r := range required {
		if HasRole(set, r) {
			return true
		}
	}
	return false
}

// RolesToStrings converts a role set for storage drivers expecting []string.
func RolesToStrings(set []Role) []string {
	out := make([]string, len(set))
	for i, r := range set {
		out[i] = string(r)
	}
	return out
}

// RolesFromStrings converts stored role tags back into a role set.
func RolesFromStrings(raw []string) []Role {
	out := make([]Role, len(raw))
	for i, s := range raw {
		out[i] = Role(s)
	}
	return out
}
