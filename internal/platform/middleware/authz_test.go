// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terralens/terralens/internal/platform/constants"
	"github.com/terralens/terralens/internal/platform/ctxutil"
	"github.com/terralens/terralens/internal/platform/middleware"
	"github.com/terralens/terralens/internal/platform/sec"
)

// fakeResolver resolves a fixed cookie token to a fixed identity.
type fakeResolver struct {
	token    string
	identity *sec.Identity
	err      error
}

func (resolver *fakeResolver) ResolveSession(_ context.Context, cookieToken string) (*sec.Identity, error) {
	if resolver.err != nil {
		return nil, resolver.err
	}
	if cookieToken != resolver.token {
		return nil, errors.New("unknown session")
	}
	return resolver.identity, nil
}

// identityEcho records the identity seen by the downstream handler.
func identityEcho(seen **sec.Identity) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*seen = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate_ValidCookie verifies that a resolvable cookie injects the
effective identity into the request context.
*/
func TestAuthenticate_ValidCookie(t *testing.T) {
	identity := &sec.Identity{ID: "user-123", Roles: []sec.Role{sec.RoleUser}}
	resolver := &fakeResolver{token: "good-token", identity: identity}

	var seen *sec.Identity
	handler := middleware.Authenticate(resolver)(identityEcho(&seen))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "good-token"})
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotNil(t, seen)
	assert.Equal(t, "user-123", seen.ID)
}

/*
TestAuthenticate_DegradesToAnonymous verifies that missing, stale, and forged
cookies all proceed as anonymous requests instead of hard errors.
*/
func TestAuthenticate_DegradesToAnonymous(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
	}{
		{"no_cookie", ""},
		{"forged_cookie", "forged-token"},
	}

	resolver := &fakeResolver{token: "good-token", identity: &sec.Identity{
		ID:    "user-123",
		Roles: []sec.Role{sec.RoleUser},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *sec.Identity
			handler := middleware.Authenticate(resolver)(identityEcho(&seen))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: tt.cookie})
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Nil(t, seen)
		})
	}
}

/*
TestRequireRoles_IdenticalDenials verifies that an absent session and a role
mismatch produce byte-identical 401 responses.
*/
func TestRequireRoles_IdenticalDenials(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	gate := middleware.RequireRoles(sec.RoleAdmin)(next)

	// 1. Anonymous request (no identity in context)
	anonymous := httptest.NewRequest(http.MethodGet, "/", nil)
	anonymousRecorder := httptest.NewRecorder()
	gate.ServeHTTP(anonymousRecorder, anonymous)

	// 2. Authenticated request lacking the required role
	customer := httptest.NewRequest(http.MethodGet, "/", nil)
	customer = customer.WithContext(ctxutil.WithIdentity(customer.Context(), &sec.Identity{
		ID:    "user-123",
		Roles: []sec.Role{sec.RoleUser},
	}))
	customerRecorder := httptest.NewRecorder()
	gate.ServeHTTP(customerRecorder, customer)

	assert.Equal(t, http.StatusUnauthorized, anonymousRecorder.Code)
	assert.Equal(t, http.StatusUnauthorized, customerRecorder.Code)

	// The gate must not leak WHY access was denied.
	assert.Equal(t, anonymousRecorder.Body.String(), customerRecorder.Body.String())
}

/*
TestRequireRoles_Granted verifies that an intersecting role set passes through.
*/
func TestRequireRoles_Granted(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		called = true
		writer.WriteHeader(http.StatusOK)
	})
	gate := middleware.RequireRoles(sec.RoleAdmin, sec.RoleUser)(next)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithIdentity(request.Context(), &sec.Identity{
		ID:    "admin-1",
		Roles: []sec.Role{sec.RoleAdmin},
	}))
	recorder := httptest.NewRecorder()

	gate.ServeHTTP(recorder, request)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireAuth verifies the plain authentication gate.
*/
func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	gate := middleware.RequireAuth(next)

	anonymous := httptest.NewRequest(http.MethodGet, "/", nil)
	anonymousRecorder := httptest.NewRecorder()
	gate.ServeHTTP(anonymousRecorder, anonymous)
	assert.Equal(t, http.StatusUnauthorized, anonymousRecorder.Code)

	authenticated := httptest.NewRequest(http.MethodGet, "/", nil)
	authenticated = authenticated.WithContext(ctxutil.WithIdentity(authenticated.Context(), &sec.Identity{
		ID:    "user-123",
		Roles: []sec.Role{sec.RoleUser},
	}))
	authenticatedRecorder := httptest.NewRecorder()
	gate.ServeHTTP(authenticatedRecorder, authenticated)
	assert.Equal(t, http.StatusOK, authenticatedRecorder.Code)
}
