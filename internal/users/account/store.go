// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

/*
Package account implements administrative user management: listing,
provisioning and deactivating the accounts that can sign in to the
platform.
*/
package account

import (
	"context"

	"github.com/terralens/terralens/pkg/pagination"
	"github.com/terralens/terralens/internal/users/auth"
)

// ListFilter narrows an account listing.
type ListFilter struct {
	OrganizationID string
	Role           string
}

/*
Repository defines persistence operations for user accounts.
*/
type Repository interface {
	/*
		List returns a page of active accounts matching the filter.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter
		  - page: pagination.Params

		Returns:
		  - []*auth.Account: Matching accounts
		  - int: Total match count across all pages
		  - error: Database errors
	*/
	List(context context.Context, filter ListFilter, page pagination.Params) ([]*auth.Account, int, error)

	/*
		FindByID returns the active account with the given identifier.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *auth.Account: Hydrated account
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*auth.Account, error)

	/*
		Create persists a new account.

		Parameters:
		  - context: context.Context
		  - account: *auth.Account

		Returns:
		  - error: apperr.Conflict on duplicate email, database errors
	*/
	Create(context context.Context, account *auth.Account) error

	/*
		SoftDelete deactivates an account while keeping its row for audit.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or database errors
	*/
	SoftDelete(context context.Context, id string) error
}
