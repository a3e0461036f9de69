// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package sessionkit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terralens/terralens/internal/platform/constants"
	"github.com/terralens/terralens/internal/platform/sec"
	"github.com/terralens/terralens/pkg/sessionkit"
)

/*
TestEvaluate covers the gate over nil, disjoint and overlapping role sets.
*/
func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		session  *sec.Identity
		required []sec.Role
		expected sessionkit.Verdict
	}{
		{
			"no_session",
			nil,
			[]sec.Role{sec.RoleUser},
			sessionkit.VerdictUnauthenticated,
		},
		{
			"empty_roles_counts_as_no_session",
			&sec.Identity{ID: "u"},
			[]sec.Role{sec.RoleUser},
			sessionkit.VerdictUnauthenticated,
		},
		{
			"disjoint_roles",
			&sec.Identity{ID: "u", Roles: []sec.Role{sec.RoleUser}},
			[]sec.Role{sec.RoleAdmin},
			sessionkit.VerdictUnauthorized,
		},
		{
			"overlapping_roles",
			&sec.Identity{ID: "u", Roles: []sec.Role{sec.RoleUser, sec.RoleAdmin}},
			[]sec.Role{sec.RoleAdmin},
			sessionkit.VerdictGranted,
		},
		{
			"exact_match",
			&sec.Identity{ID: "u", Roles: []sec.Role{sec.RoleUser}},
			[]sec.Role{sec.RoleUser},
			sessionkit.VerdictGranted,
		},
		{
			"no_required_roles_needs_only_a_session",
			&sec.Identity{ID: "u", Roles: []sec.Role{sec.RoleUser}},
			nil,
			sessionkit.VerdictGranted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{serverSession: tt.session}
			provider := newProvider(backend)
			provider.Refresh(context.Background())

			assert.Equal(t, tt.expected, provider.Evaluate(tt.required...))
		})
	}
}

/*
TestEvaluate_PendingWhileLoading verifies no verdict-driven redirect happens
before the first probe completes.
*/
func TestEvaluate_PendingWhileLoading(t *testing.T) {
	provider := newProvider(&fakeBackend{})

	verdict := provider.Evaluate(sec.RoleAdmin)
	assert.Equal(t, sessionkit.VerdictPending, verdict)
	assert.Empty(t, verdict.RedirectPath())
}

/*
TestVerdict_RedirectPath verifies both denials route to the same login path.
*/
func TestVerdict_RedirectPath(t *testing.T) {
	assert.Equal(t, constants.LoginPath, sessionkit.VerdictUnauthenticated.RedirectPath())
	assert.Equal(t, constants.LoginPath, sessionkit.VerdictUnauthorized.RedirectPath())
	assert.Empty(t, sessionkit.VerdictGranted.RedirectPath())
	assert.Empty(t, sessionkit.VerdictPending.RedirectPath())
}

/*
TestRouteAfterLogin covers the role-aware landing decision.
*/
func TestRouteAfterLogin(t *testing.T) {
	tests := []struct {
		name     string
		session  *sec.Identity
		expected string
	}{
		{"admin", &sec.Identity{ID: "a", Roles: []sec.Role{sec.RoleAdmin}}, constants.AdminLandingPath},
		{"admin_and_user", &sec.Identity{ID: "a", Roles: []sec.Role{sec.RoleAdmin, sec.RoleUser}}, constants.AdminLandingPath},
		{"user", &sec.Identity{ID: "u", Roles: []sec.Role{sec.RoleUser}}, constants.CustomerLandingPath},
		{"empty_roles", &sec.Identity{ID: "u"}, constants.LoginPath},
		{"signed_out", nil, constants.LoginPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{serverSession: tt.session}
			provider := newProvider(backend)
			provider.Refresh(context.Background())

			assert.Equal(t, tt.expected, provider.RouteAfterLogin())
		})
	}
}

/*
TestGateAfterLogout verifies the gate denies immediately after logout.
*/
func TestGateAfterLogout(t *testing.T) {
	backend := &fakeBackend{}
	provider := newProvider(backend)

	require.True(t, provider.Login(context.Background(), "user@terralens.earth", "pw"))
	require.True(t, provider.Evaluate(sec.RoleUser).Granted())

	provider.Logout(context.Background())
	assert.Equal(t, sessionkit.VerdictUnauthenticated, provider.Evaluate(sec.RoleUser))
}
