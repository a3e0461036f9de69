// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package project

import (
	"context"

	"github.com/terralens/terralens/pkg/pagination"
)

// # Project Data Access

// Repository defines the data access contract for projects and their
// status logs.
type Repository interface {

	/*
		List returns a filtered, paginated slice of projects and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - page: pagination.Params

		Returns:
		  - []*Project: Slice of matching projects
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, page pagination.Params) ([]*Project, int, error)

	/*
		FindByID retrieves a project by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Project: Hydrated entity
		  - error: apperr.NotFound if missing or deleted
	*/
	FindByID(context context.Context, id string) (*Project, error)

	/*
		Create persists a new project.

		Parameters:
		  - context: context.Context
		  - project: *Project

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, project *Project) error

	/*
		Update modifies an existing project.

		Parameters:
		  - context: context.Context
		  - project: *Project

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, project *Project) error

	/*
		SoftDelete marks a project as deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	SoftDelete(context context.Context, id string) error

	/*
		AppendStatusLog appends one status change to the project's log.

		Parameters:
		  - context: context.Context
		  - entry: *StatusLogEntry

		Returns:
		  - error: Persistence failures
	*/
	AppendStatusLog(context context.Context, entry *StatusLogEntry) error

	/*
		StatusLog returns the full status history of a project, oldest first.

		Parameters:
		  - context: context.Context
		  - projectID: string

		Returns:
		  - []*StatusLogEntry: Ordered history
		  - error: Database retrieval failures
	*/
	StatusLog(context context.Context, projectID string) ([]*StatusLogEntry, error)
}
