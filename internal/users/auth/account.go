// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

/*
Package auth implements the session and access-control core of Terralens.

It owns the full lifecycle of "who is logged in right now": credential
verification, the server-side session slot, the session probe consumed by the
dashboard on every page load, and the admin-only impersonation overlay that
temporarily substitutes a customer identity for preview purposes.

# Architecture

  - Service: Login/Logout/session resolution (single writer of the session slot).
  - Impersonator: Decorator over the same slot — snapshot, shadow, restore.
  - Repository: Abstracted interfaces for Postgres (accounts) and Redis (sessions).

The session slot in Redis is the one shared mutable "current session" storage.
Only the Service and the Impersonator ever write to it.
*/
package auth

import (
	"time"

	"github.com/terralens/terralens/internal/platform/sec"
)

// # Domain Entities

// Account represents a registered Terralens dashboard user.
type Account struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	Name         string     `json:"name,omitempty"`
	Roles        []sec.Role `json:"roles"`

	// OrganizationID is set for USER accounts (a customer belongs to exactly
	// one organization) and NULL for ADMIN accounts.
	OrganizationID *string `json:"organization_id,omitempty"`

	Language  string    `json:"language,omitempty"`
	Timezone  string    `json:"timezone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity maps the stored account onto the session identity handed to the
// rest of the application.
func (account *Account) Identity() *sec.Identity {
	return &sec.Identity{
		ID:             account.ID,
		Email:          account.Email,
		Name:           account.Name,
		Roles:          account.Roles,
		OrganizationID: account.OrganizationID,
		Language:       account.Language,
		Timezone:       account.Timezone,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldOrganizationID = "organization_id"
	FieldUserID         = "user_id"
	FieldSuccess        = "success"
	FieldUser           = "user"
	FieldLandingPath    = "landing_path"
	FieldMessage        = "message"
)
