// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terralens/terralens/internal/platform/sec"
)

/*
TestIdentity_Valid verifies that an identity without roles counts as no session.
*/
func TestIdentity_Valid(t *testing.T) {
	tests := []struct {
		name     string
		identity *sec.Identity
		valid    bool
	}{
		{"nil_identity", nil, false},
		{"no_roles", &sec.Identity{ID: "user-123"}, false},
		{"empty_roles", &sec.Identity{ID: "user-123", Roles: []sec.Role{}}, false},
		{"with_role", &sec.Identity{ID: "user-123", Roles: []sec.Role{sec.RoleUser}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.identity.Valid())
		})
	}
}

/*
TestIdentity_HasAnyRole verifies role set intersection on the identity.
*/
func TestIdentity_HasAnyRole(t *testing.T) {
	admin := &sec.Identity{ID: "a", Roles: []sec.Role{sec.RoleAdmin}}
	user := &sec.Identity{ID: "u", Roles: []sec.Role{sec.RoleUser}}
	both := &sec.Identity{ID: "b", Roles: []sec.Role{sec.RoleAdmin, sec.RoleUser}}

	assert.True(t, admin.HasAnyRole(sec.RoleAdmin))
	assert.False(t, admin.HasAnyRole(sec.RoleUser))
	assert.True(t, user.HasAnyRole(sec.RoleAdmin, sec.RoleUser))
	assert.True(t, both.HasAnyRole(sec.RoleUser))

	// An invalid identity never intersects anything.
	var none *sec.Identity
	assert.False(t, none.HasAnyRole(sec.RoleAdmin))
	assert.False(t, (&sec.Identity{ID: "x"}).HasAnyRole(sec.RoleAdmin))
}

/*
TestIdentity_IsAdmin verifies the ADMIN shortcut.
*/
func TestIdentity_IsAdmin(t *testing.T) {
	assert.True(t, (&sec.Identity{Roles: []sec.Role{sec.RoleAdmin}}).IsAdmin())
	assert.True(t, (&sec.Identity{Roles: []sec.Role{sec.RoleUser, sec.RoleAdmin}}).IsAdmin())
	assert.False(t, (&sec.Identity{Roles: []sec.Role{sec.RoleUser}}).IsAdmin())
}

/*
TestRoles_StringConversion verifies the storage-driver conversions.
*/
func TestRoles_StringConversion(t *testing.T) {
	roles := []sec.Role{sec.RoleAdmin, sec.RoleUser}

	raw := sec.RolesToStrings(roles)
	assert.Equal(t, []string{"ADMIN", "USER"}, raw)

	assert.Equal(t, roles, sec.RolesFromStrings(raw))
}

/*
TestPasswordHash verifies the bcrypt round trip.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
}
