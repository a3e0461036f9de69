// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

/*
Package organization manages customer organizations.

An organization is the tenant boundary of Terralens: every customer user
belongs to exactly one, and every project is owned by one. Administrators
operate across all organizations; customer users only ever see their own.
*/
package organization

import "time"

// # Core Entities

// Organization represents a customer tenant.
type Organization struct {
	ID           string     `json:"id"` // UUIDv7
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Description  *string    `json:"description,omitempty"`
	Website      *string    `json:"website,omitempty"`
	ContactEmail *string    `json:"contact_email,omitempty"`
	Country      *string    `json:"country,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// # Search & Filtering

// Filter holds parameters for listing organizations.
type Filter struct {
	Query string `json:"q"`
}

// # Field Identifiers

const (
	FieldName         = "name"
	FieldDescription  = "description"
	FieldWebsite      = "website"
	FieldContactEmail = "contact_email"
	FieldCountry      = "country"
	FieldSlug         = "slug"
)
