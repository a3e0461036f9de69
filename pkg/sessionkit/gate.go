// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package sessionkit

import (
	"github.com/terralens/terralens/internal/platform/constants"
	"github.com/terralens/terralens/internal/platform/sec"
)

// # Role Gate

// Verdict is the gate's answer for one route evaluation.
type Verdict int

const (
	// VerdictPending means the initial probe has not finished; render
	// nothing and do not redirect yet.
	VerdictPending Verdict = iota
	// VerdictUnauthenticated means there is no session.
	VerdictUnauthenticated
	// VerdictUnauthorized means the session lacks every required role.
	VerdictUnauthorized
	// VerdictGranted means at least one required role is present.
	VerdictGranted
)

// Granted reports whether the route content may render.
func (verdict Verdict) Granted() bool {
	return verdict == VerdictGranted
}

// RedirectPath returns where the dashboard should navigate for this verdict.
// Unauthenticated and Unauthorized deliberately resolve to the same login
// path — the gate does not reveal why access was denied. Pending and Granted
// return an empty path, meaning stay put.
func (verdict Verdict) RedirectPath() string {
	switch verdict {
	case VerdictUnauthenticated, VerdictUnauthorized:
		return constants.LoginPath
	default:
		return ""
	}
}

/*
Evaluate answers whether the cached session may enter a route guarded by the
given roles.

Description: Purely cache-based, no network. An empty required set only
demands a live session. The decision is the intersection test: the session
passes when it holds at least one required role.

Parameters:
  - required: ...sec.Role

Returns:
  - Verdict: Pending, Unauthenticated, Unauthorized or Granted
*/
func (provider *Provider) Evaluate(required ...sec.Role) Verdict {
	provider.mu.RLock()
	session, loading := provider.session, provider.loading
	provider.mu.RUnlock()

	if loading {
		return VerdictPending
	}
	if !session.Valid() {
		return VerdictUnauthenticated
	}
	if len(required) > 0 && !session.HasAnyRole(required...) {
		return VerdictUnauthorized
	}
	return VerdictGranted
}

/*
RouteAfterLogin returns the landing path for a freshly established session.

Description: Administrators land on the admin console, everyone else on the
customer application. With no session it falls back to the login path.

Returns:
  - string: Landing path
*/
func (provider *Provider) RouteAfterLogin() string {
	session := provider.CurrentIdentity()
	if !session.Valid() {
		return constants.LoginPath
	}
	if session.IsAdmin() {
		return constants.AdminLandingPath
	}
	return constants.CustomerLandingPath
}
