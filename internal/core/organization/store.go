// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package organization

import (
	"context"

	"github.com/terralens/terralens/pkg/pagination"
)

// # Organization Data Access

// Repository defines the data access contract for organizations.
type Repository interface {

	/*
		List returns a filtered, paginated slice of organizations and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - page: pagination.Params

		Returns:
		  - []*Organization: Slice of matching organizations
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, page pagination.Params) ([]*Organization, int, error)

	/*
		FindByID retrieves an organization by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Organization: Hydrated entity
		  - error: apperr.NotFound if missing or deleted
	*/
	FindByID(context context.Context, id string) (*Organization, error)

	/*
		FindBySlug retrieves an organization by its human-readable identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Organization: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Organization, error)

	/*
		Create persists a new organization.

		Parameters:
		  - context: context.Context
		  - organization: *Organization

		Returns:
		  - error: apperr.Conflict on duplicate slug, persistence failures
	*/
	Create(context context.Context, organization *Organization) error

	/*
		Update modifies an existing organization's metadata.

		Parameters:
		  - context: context.Context
		  - organization: *Organization

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, organization *Organization) error

	/*
		SoftDelete marks an organization as deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	SoftDelete(context context.Context, id string) error
}
