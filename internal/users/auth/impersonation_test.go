// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terralens/terralens/internal/platform/apperr"
	"github.com/terralens/terralens/internal/users/auth"
)

func impersonationFixture(t *testing.T) (*auth.Service, *auth.Impersonator, *memorySessions) {
	t.Helper()

	accounts := newMemoryAccounts(adminAccount(t), customerAccount(t))
	sessions := newMemorySessions()
	impersonations := newMemoryImpersonations()
	directory := &staticDirectory{names: map[string]string{
		"018f3b1a-0000-7000-8000-0000000000aa": "Wetlands Research Collective",
	}}

	service := auth.NewService(accounts, sessions, impersonations, testTokens(t), testLogger())
	impersonator := auth.NewImpersonator(accounts, sessions, impersonations, directory, testLogger())
	return service, impersonator, sessions
}

/*
TestImpersonator_RoundTrip verifies that ending an impersonation restores the
session slot to the exact bytes it held before the impersonation started.
*/
func TestImpersonator_RoundTrip(t *testing.T) {
	ctx := context.Background()
	service, impersonator, sessions := impersonationFixture(t)

	result, err := service.Login(ctx, "admin@terralens.earth", "correct horse")
	require.NoError(t, err)
	sessionID, err := service.SessionID(result.Token)
	require.NoError(t, err)

	before, err := sessions.FindRaw(ctx, sessionID)
	require.NoError(t, err)

	record, err := impersonator.Start(ctx, sessionID, "", customerAccount(t).ID)
	require.NoError(t, err)
	assert.True(t, record.Active)
	assert.Equal(t, "Wetlands Research Collective", record.OrganizationName)

	// While impersonating, the slot resolves to the target user.
	effective, err := service.ResolveSession(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, customerAccount(t).ID, effective.ID)
	assert.False(t, effective.IsAdmin())

	restored, err := impersonator.End(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, restored.IsAdmin())

	after, err := sessions.FindRaw(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "restored slot must be byte-for-byte identical")

	// The record is gone after the restore.
	active, err := impersonator.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

/*
TestImpersonator_NonAdminRejected verifies a non-admin start fails and leaves
both the session slot and the impersonation record untouched.
*/
func TestImpersonator_NonAdminRejected(t *testing.T) {
	ctx := context.Background()
	service, impersonator, sessions := impersonationFixture(t)

	result, err := service.Login(ctx, "analyst@wetlands.example", "correct horse")
	require.NoError(t, err)
	sessionID, err := service.SessionID(result.Token)
	require.NoError(t, err)

	before, err := sessions.FindRaw(ctx, sessionID)
	require.NoError(t, err)

	_, err = impersonator.Start(ctx, sessionID, "", adminAccount(t).ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	after, err := sessions.FindRaw(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	active, err := impersonator.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

/*
TestImpersonator_NestedStartRejected verifies a second start on the same
session is refused while the first is active.
*/
func TestImpersonator_NestedStartRejected(t *testing.T) {
	ctx := context.Background()
	service, impersonator, _ := impersonationFixture(t)

	result, err := service.Login(ctx, "admin@terralens.earth", "correct horse")
	require.NoError(t, err)
	sessionID, err := service.SessionID(result.Token)
	require.NoError(t, err)

	_, err = impersonator.Start(ctx, sessionID, "", customerAccount(t).ID)
	require.NoError(t, err)

	_, err = impersonator.Start(ctx, sessionID, "", customerAccount(t).ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestImpersonator_UnknownTarget verifies the target must exist before any
state is touched.
*/
func TestImpersonator_UnknownTarget(t *testing.T) {
	ctx := context.Background()
	service, impersonator, _ := impersonationFixture(t)

	result, err := service.Login(ctx, "admin@terralens.earth", "correct horse")
	require.NoError(t, err)
	sessionID, err := service.SessionID(result.Token)
	require.NoError(t, err)

	_, err = impersonator.Start(ctx, sessionID, "", "018f3b1a-0000-7000-8000-00000000dead")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	active, err := impersonator.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

/*
TestImpersonator_OrganizationMismatch verifies the target must belong to the
requested organization.
*/
func TestImpersonator_OrganizationMismatch(t *testing.T) {
	ctx := context.Background()
	service, impersonator, _ := impersonationFixture(t)

	result, err := service.Login(ctx, "admin@terralens.earth", "correct horse")
	require.NoError(t, err)
	sessionID, err := service.SessionID(result.Token)
	require.NoError(t, err)

	_, err = impersonator.Start(ctx, sessionID, "018f3b1a-0000-7000-8000-0000000000bb", customerAccount(t).ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestImpersonator_AdminTargetRejected verifies that an administrator account
cannot be impersonated and that a rejected start leaves the slot untouched.
*/
func TestImpersonator_AdminTargetRejected(t *testing.T) {
	ctx := context.Background()
	service, impersonator, sessions := impersonationFixture(t)

	result, err := service.Login(ctx, "admin@terralens.earth", "correct horse")
	require.NoError(t, err)
	sessionID, err := service.SessionID(result.Token)
	require.NoError(t, err)

	before, err := sessions.FindRaw(ctx, sessionID)
	require.NoError(t, err)

	_, err = impersonator.Start(ctx, sessionID, "", adminAccount(t).ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	after, err := sessions.FindRaw(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	active, err := impersonator.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

/*
TestImpersonator_EndWithoutActive verifies that ending without an active
impersonation is a no-op returning the unchanged session identity.
*/
func TestImpersonator_EndWithoutActive(t *testing.T) {
	ctx := context.Background()
	service, impersonator, sessions := impersonationFixture(t)

	result, err := service.Login(ctx, "admin@terralens.earth", "correct horse")
	require.NoError(t, err)
	sessionID, err := service.SessionID(result.Token)
	require.NoError(t, err)

	before, err := sessions.FindRaw(ctx, sessionID)
	require.NoError(t, err)

	current, err := impersonator.End(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, adminAccount(t).ID, current.ID)
	assert.True(t, current.IsAdmin())

	after, err := sessions.FindRaw(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
