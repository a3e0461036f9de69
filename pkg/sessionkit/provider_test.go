// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package sessionkit_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terralens/terralens/internal/platform/sec"
	"github.com/terralens/terralens/pkg/sessionkit"
)

// fakeBackend simulates the API with a controllable server-side session.
type fakeBackend struct {
	serverSession *sec.Identity
	fetchErr      error
	loginErr      error
	logoutErr     error

	// onLogout observes the provider's cache from inside the network call.
	onLogout func()
}

func (backend *fakeBackend) FetchIdentity(_ context.Context) (*sec.Identity, error) {
	if backend.fetchErr != nil {
		return nil, backend.fetchErr
	}
	if backend.serverSession == nil {
		return nil, errors.New("no session")
	}
	return backend.serverSession, nil
}

func (backend *fakeBackend) Login(_ context.Context, email, _ string) error {
	if backend.loginErr != nil {
		return backend.loginErr
	}
	roles := []sec.Role{sec.RoleUser}
	if email == "admin@terralens.earth" {
		roles = []sec.Role{sec.RoleAdmin}
	}
	backend.serverSession = &sec.Identity{ID: "u1", Email: email, Roles: roles}
	return nil
}

func (backend *fakeBackend) Logout(_ context.Context) error {
	if backend.onLogout != nil {
		backend.onLogout()
	}
	if backend.logoutErr != nil {
		return backend.logoutErr
	}
	backend.serverSession = nil
	return nil
}

func newProvider(backend *fakeBackend) *sessionkit.Provider {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return sessionkit.NewProvider(backend, logger)
}

/*
TestProvider_Loading verifies the not-yet-probed state and its resolution.
*/
func TestProvider_Loading(t *testing.T) {
	provider := newProvider(&fakeBackend{})

	assert.True(t, provider.Loading())
	assert.Nil(t, provider.CurrentIdentity())

	provider.Refresh(context.Background())
	assert.False(t, provider.Loading())
	assert.Nil(t, provider.CurrentIdentity())
}

/*
TestProvider_RefreshFailureSignsOut verifies any probe failure resolves to a
signed-out cache, never an error.
*/
func TestProvider_RefreshFailureSignsOut(t *testing.T) {
	backend := &fakeBackend{
		serverSession: &sec.Identity{ID: "u1", Roles: []sec.Role{sec.RoleUser}},
	}
	provider := newProvider(backend)

	provider.Refresh(context.Background())
	require.NotNil(t, provider.CurrentIdentity())

	backend.fetchErr = errors.New("api down")
	provider.Refresh(context.Background())
	assert.Nil(t, provider.CurrentIdentity())
	assert.False(t, provider.Loading())
}

/*
TestProvider_LoginRefreshesBeforeReturn verifies the cache already holds the
fresh session when Login returns true.
*/
func TestProvider_LoginRefreshesBeforeReturn(t *testing.T) {
	provider := newProvider(&fakeBackend{})

	ok := provider.Login(context.Background(), "admin@terralens.earth", "pw")
	require.True(t, ok)

	session := provider.CurrentIdentity()
	require.NotNil(t, session)
	assert.True(t, session.IsAdmin())
	assert.False(t, provider.Loading())
}

/*
TestProvider_LoginFailure verifies a rejected login leaves the cache alone.
*/
func TestProvider_LoginFailure(t *testing.T) {
	backend := &fakeBackend{loginErr: errors.New("bad credentials")}
	provider := newProvider(backend)
	provider.Refresh(context.Background())

	ok := provider.Login(context.Background(), "x@terralens.earth", "wrong")
	assert.False(t, ok)
	assert.Nil(t, provider.CurrentIdentity())
}

/*
TestProvider_LogoutClearsBeforeNetworkCall observes the cache from inside the
backend's logout call: it must already be empty.
*/
func TestProvider_LogoutClearsBeforeNetworkCall(t *testing.T) {
	backend := &fakeBackend{}
	provider := newProvider(backend)

	require.True(t, provider.Login(context.Background(), "user@terralens.earth", "pw"))
	require.NotNil(t, provider.CurrentIdentity())

	observed := false
	backend.onLogout = func() {
		observed = true
		assert.Nil(t, provider.CurrentIdentity(), "cache must be cleared before the network call")
	}

	provider.Logout(context.Background())
	assert.True(t, observed)
	assert.Nil(t, provider.CurrentIdentity())
}

/*
TestProvider_LogoutSwallowsNetworkFailure verifies a failed server logout
still leaves the client signed out.
*/
func TestProvider_LogoutSwallowsNetworkFailure(t *testing.T) {
	backend := &fakeBackend{logoutErr: errors.New("api down")}
	provider := newProvider(backend)

	require.True(t, provider.Login(context.Background(), "user@terralens.earth", "pw"))

	provider.Logout(context.Background())
	assert.Nil(t, provider.CurrentIdentity())
}
