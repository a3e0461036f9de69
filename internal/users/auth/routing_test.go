// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terralens/terralens/internal/platform/constants"
	"github.com/terralens/terralens/internal/platform/sec"
	"github.com/terralens/terralens/internal/users/auth"
)

/*
TestLandingPath checks role-aware routing after authentication.
*/
func TestLandingPath(t *testing.T) {
	tests := []struct {
		name     string
		identity *sec.Identity
		expected string
	}{
		{
			"admin_lands_on_admin_console",
			&sec.Identity{ID: "a", Roles: []sec.Role{sec.RoleAdmin}},
			constants.AdminLandingPath,
		},
		{
			"admin_with_extra_roles_still_admin",
			&sec.Identity{ID: "a", Roles: []sec.Role{sec.RoleUser, sec.RoleAdmin}},
			constants.AdminLandingPath,
		},
		{
			"customer_lands_on_app",
			&sec.Identity{ID: "u", Roles: []sec.Role{sec.RoleUser}},
			constants.CustomerLandingPath,
		},
		{
			"roleless_identity_goes_to_login",
			&sec.Identity{ID: "u"},
			constants.LoginPath,
		},
		{
			"nil_identity_goes_to_login",
			nil,
			constants.LoginPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, auth.LandingPath(tt.identity))
		})
	}
}
