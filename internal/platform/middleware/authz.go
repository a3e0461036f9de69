// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

// Package middleware provides the HTTP middleware chain for the Terralens API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/terralens/terralens/internal/platform/apperr"
	"github.com/terralens/terralens/internal/platform/constants"
	"github.com/terralens/terralens/internal/platform/ctxutil"
	"github.com/terralens/terralens/internal/platform/respond"
	"github.com/terralens/terralens/internal/platform/sec"
)

// SessionResolver defines the interface needed to resolve session cookies
// into effective identities.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject fakes during unit
// testing. The resolver is expected to return whatever identity currently
// occupies the session slot — the impersonated one when an overlay is active.
type SessionResolver interface {
	ResolveSession(ctx context.Context, cookieToken string) (*sec.Identity, error)
}

// Authenticate extracts the session cookie and resolves the effective identity.
//
// # Flow
//  1. Check for the session cookie.
//  2. If absent, request proceeds as anonymous.
//  3. If present, verify the signed token and load the session slot.
//  4. Inject [*sec.Identity] into the request context for downstream use.
//
// # Failure Semantics
//
// A stale, forged, or expired cookie degrades silently to an anonymous
// request — never a hard error. Absence of access always looks the same to
// the client: the gate downstream answers 401 and the dashboard routes to
// the login view.
func Authenticate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Session Resolution ─────────────────────────────────────────
			identity, err := resolver.ResolveSession(request.Context(), cookie.Value)
			if err != nil || !identity.Valid() {
				if err != nil {
					ctxutil.GetLogger(request.Context()).Debug("session_resolution_failed",
						slog.String("error", err.Error()),
					)
				}
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRoles blocks requests whose effective identity does not hold at
// least one of the required roles.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It implies
// [RequireAuth], so there is no need to mount both.
//
// # Denial Semantics
//
// An absent session and a role mismatch produce the exact same 401 response.
// The gate deliberately does not leak WHY access was denied — the dashboard
// treats every denial as "please log in".
func RequireRoles(required ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			if !identity.HasAnyRole(required...) {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
