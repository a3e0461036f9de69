// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

/*
Package sessionkit is the dashboard-side session layer for the Terralens API.

It keeps one cached session snapshot per Provider, refreshes it through the
server's session probe, and answers access-control questions (the role gate)
from the cache without extra network calls.

# Session Semantics

The cached session is replaced whole on every refresh, never merged. A
refresh that fails for any reason leaves the Provider signed out — the
cache can hold either a live identity or nothing, no stale in-between.
*/
package sessionkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/terralens/terralens/internal/platform/sec"
)

// # Backend

/*
Backend is the transport the Provider talks to. The HTTP implementation
speaks to the Terralens API; tests substitute an in-memory fake.
*/
type Backend interface {
	/*
		FetchIdentity probes the current session.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - *sec.Identity: The effective identity
		  - error: Any transport or authentication failure
	*/
	FetchIdentity(ctx context.Context) (*sec.Identity, error)

	/*
		Login submits credentials and establishes the server session.

		Parameters:
		  - ctx: context.Context
		  - email: string
		  - password: string

		Returns:
		  - error: Rejected credentials or transport failures
	*/
	Login(ctx context.Context, email, password string) error

	/*
		Logout closes the server session.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - error: Transport failures
	*/
	Logout(ctx context.Context) error
}

// # HTTP Backend

// requestTimeout bounds every call the backend makes; the dashboard must
// never hang on a dead API.
const requestTimeout = 10 * time.Second

// HTTPBackend implements [Backend] against the Terralens API. The session
// cookie is held in the client's cookie jar.
type HTTPBackend struct {
	baseURL string
	client  *http.Client
}

// NewHTTPBackend creates a backend rooted at baseURL (e.g.
// "https://api.terralens.earth/api/v1").
func NewHTTPBackend(baseURL string) (*HTTPBackend, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("sessionkit_cookie_jar_failed: %w", err)
	}

	return &HTTPBackend{
		baseURL: baseURL,
		client: &http.Client{
			Jar:     jar,
			Timeout: requestTimeout,
		},
	}, nil
}

// envelope mirrors the API's success response wrapper.
type envelope struct {
	Data struct {
		User *sec.Identity `json:"user"`
	} `json:"data"`
}

func (backend *HTTPBackend) FetchIdentity(ctx context.Context) (*sec.Identity, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, backend.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, err
	}

	response, err := backend.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sessionkit_probe_status_%d", response.StatusCode)
	}

	body := &envelope{}
	if err := json.NewDecoder(response.Body).Decode(body); err != nil {
		return nil, err
	}
	if !body.Data.User.Valid() {
		return nil, fmt.Errorf("sessionkit_probe_empty_identity")
	}

	return body.Data.User, nil
}

func (backend *HTTPBackend) Login(ctx context.Context, email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, backend.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := backend.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("sessionkit_login_status_%d", response.StatusCode)
	}

	return nil
}

func (backend *HTTPBackend) Logout(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodPut, backend.baseURL+"/auth/logout", nil)
	if err != nil {
		return err
	}

	response, err := backend.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("sessionkit_logout_status_%d", response.StatusCode)
	}

	return nil
}
