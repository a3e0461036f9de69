// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package sessionkit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/terralens/terralens/internal/platform/sec"
)

// # Provider

// Provider caches the current session and keeps it consistent across
// login, logout and refresh.
//
// # Concurrency
//
// All methods are safe for concurrent use. The cache is guarded by one
// mutex; network calls happen outside the critical section.
type Provider struct {
	backend Backend
	logger  *slog.Logger

	mu      sync.RWMutex
	session *sec.Identity
	loading bool
}

// NewProvider creates a Provider that has not probed the server yet.
// Until the first Refresh completes, [Provider.Loading] reports true and the
// gate answers Pending instead of redirecting.
func NewProvider(backend Backend, logger *slog.Logger) *Provider {
	return &Provider{
		backend: backend,
		logger:  logger,
		loading: true,
	}
}

/*
CurrentIdentity returns the cached session without any network traffic.

Returns:
  - *sec.Identity: The cached identity, nil when signed out or not yet probed
*/
func (provider *Provider) CurrentIdentity() *sec.Identity {
	provider.mu.RLock()
	defer provider.mu.RUnlock()
	return provider.session
}

// Loading reports whether the initial session probe is still outstanding.
// It distinguishes "not yet probed" from "probed and signed out".
func (provider *Provider) Loading() bool {
	provider.mu.RLock()
	defer provider.mu.RUnlock()
	return provider.loading
}

/*
Refresh replaces the cached session with the server's current one.

Description: Any failure — network, 401, malformed body — resolves to a
signed-out cache. The caller never receives an error; a dashboard cannot do
anything with a failed probe except treat it as "no session".

Parameters:
  - ctx: context.Context
*/
func (provider *Provider) Refresh(ctx context.Context) {
	identity, err := provider.backend.FetchIdentity(ctx)
	if err != nil {
		provider.logger.Debug("session_refresh_failed", slog.String("error", err.Error()))
		identity = nil
	}

	provider.mu.Lock()
	provider.session = identity
	provider.loading = false
	provider.mu.Unlock()
}

/*
Login authenticates and synchronously refreshes the cached session.

Description: When this returns true, CurrentIdentity already reflects the
fresh session — the internal refresh completes before control returns, so a
caller can route on the result immediately.

Parameters:
  - ctx: context.Context
  - email: string
  - password: string

Returns:
  - bool: true when the session was established
*/
func (provider *Provider) Login(ctx context.Context, email, password string) bool {
	if err := provider.backend.Login(ctx, email, password); err != nil {
		provider.logger.Debug("session_login_failed", slog.String("error", err.Error()))
		return false
	}

	provider.Refresh(ctx)
	return provider.CurrentIdentity() != nil
}

/*
Logout signs out locally first, then closes the server session.

Description: The cache is cleared before the network call starts, so the UI
flips to signed-out immediately even when the server is unreachable. A
failed network logout is logged and swallowed.

Parameters:
  - ctx: context.Context
*/
func (provider *Provider) Logout(ctx context.Context) {
	provider.mu.Lock()
	provider.session = nil
	provider.loading = false
	provider.mu.Unlock()

	if err := provider.backend.Logout(ctx); err != nil {
		provider.logger.Debug("session_logout_failed", slog.String("error", err.Error()))
	}
}
