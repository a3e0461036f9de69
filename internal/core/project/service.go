// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package project

import (
	"context"
	"log/slog"
	"time"

	"github.com/terralens/terralens/internal/platform/apperr"
	"github.com/terralens/terralens/internal/platform/sec"
	"github.com/terralens/terralens/internal/platform/validate"
	"github.com/terralens/terralens/pkg/pagination"
	"github.com/terralens/terralens/pkg/slug"
	"github.com/terralens/terralens/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business rules for analysis projects.
//
// # Tenant Scoping
//
// Every operation takes the caller's identity. Administrators see all
// organizations; customer users are clamped to their own, and foreign
// projects resolve to NotFound rather than Forbidden.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new project [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Project Management

/*
List retrieves a paginated, filtered list of projects visible to the caller.

Description: For customer users the organization filter is forcibly replaced
by their own organization, whatever the request asked for.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*Project: List of projects
  - pagination.Meta: Page metadata
  - error: Retrieval errors
*/
func (service *Service) List(context context.Context, caller *sec.Identity, filter Filter, page pagination.Params) ([]*Project, pagination.Meta, error) {
	filter = service.clampFilter(caller, filter)

	projects, total, err := service.repo.List(context, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return projects, pagination.NewMeta(page.Page, page.Limit, total), nil
}

/*
Get retrieves a single project visible to the caller.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - id: string

Returns:
  - *Project: Hydrated entity
  - error: apperr.NotFound if missing or out of scope
*/
func (service *Service) Get(context context.Context, caller *sec.Identity, id string) (*Project, error) {
	found, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !service.visible(caller, found) {
		return nil, apperr.NotFound("Project")
	}

	return found, nil
}

// CreateInput carries the fields needed to open a new project.
type CreateInput struct {
	OrganizationID string
	Name           string
	Theme          Theme
	Description    *string
	AreaHectares   *float64
	Country        *string
}

/*
Create opens a new project in draft status and writes the first status log
entry.

Description: Customer users can only create projects inside their own
organization; the input's organization is overridden accordingly.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - input: CreateInput

Returns:
  - *Project: The persisted project
  - error: Validation or persistence failures
*/
func (service *Service) Create(context context.Context, caller *sec.Identity, input CreateInput) (*Project, error) {
	if !caller.IsAdmin() {
		if caller.OrganizationID == nil {
			return nil, apperr.Forbidden("You do not belong to an organization")
		}
		input.OrganizationID = *caller.OrganizationID
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		Required(FieldOrganizationID, input.OrganizationID).
		UUID(FieldOrganizationID, input.OrganizationID).
		Custom(FieldTheme, !ValidTheme(input.Theme), "Unknown project theme")

	if input.AreaHectares != nil && *input.AreaHectares <= 0 {
		validator.Custom(FieldAreaHectares, true, "Area must be positive")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := &Project{
		ID:             uuidv7.New(),
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		Slug:           slug.From(input.Name),
		Theme:          input.Theme,
		Status:         StatusDraft,
		Description:    input.Description,
		AreaHectares:   input.AreaHectares,
		Country:        input.Country,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := service.repo.Create(context, created); err != nil {
		return nil, err
	}

	if err := service.repo.AppendStatusLog(context, &StatusLogEntry{
		ID:        uuidv7.New(),
		ProjectID: created.ID,
		ToStatus:  StatusDraft,
		ChangedBy: caller.ID,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	service.logger.Info("project_created",
		slog.String("project_id", created.ID),
		slog.String("organization_id", created.OrganizationID),
		slog.String(FieldTheme, string(created.Theme)),
	)

	return created, nil
}

// UpdateInput defines the mutable subset of project fields.
type UpdateInput struct {
	Name         *string
	Description  *string
	AreaHectares *float64
	Country      *string
	Status       *Status
	StatusNote   *string
}

/*
Update applies a partial set of changes to a project.

Description: A status change is validated against the pipeline's allowed
transitions and appends a status log entry carrying the optional note.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - id: string
  - input: UpdateInput

Returns:
  - *Project: The updated entity
  - error: Validation, transition or persistence failures
*/
func (service *Service) Update(context context.Context, caller *sec.Identity, id string, input UpdateInput) (*Project, error) {
	found, err := service.Get(context, caller, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 200)
	}
	if input.AreaHectares != nil && *input.AreaHectares <= 0 {
		validator.Custom(FieldAreaHectares, true, "Area must be positive")
	}
	if input.Status != nil && !input.Status.Valid() {
		validator.Custom(FieldStatus, true, "Unknown project status")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	previous := found.Status
	statusChanged := input.Status != nil && *input.Status != previous

	if statusChanged && !previous.CanTransitionTo(*input.Status) {
		return nil, apperr.Unprocessable("Status change not allowed from " + string(previous))
	}

	if input.Name != nil {
		found.Name = *input.Name
		found.Slug = slug.From(*input.Name)
	}
	if input.Description != nil {
		found.Description = input.Description
	}
	if input.AreaHectares != nil {
		found.AreaHectares = input.AreaHectares
	}
	if input.Country != nil {
		found.Country = input.Country
	}
	if statusChanged {
		found.Status = *input.Status
	}
	found.UpdatedAt = time.Now().UTC()

	if err := service.repo.Update(context, found); err != nil {
		return nil, err
	}

	if statusChanged {
		if err := service.repo.AppendStatusLog(context, &StatusLogEntry{
			ID:         uuidv7.New(),
			ProjectID:  found.ID,
			FromStatus: &previous,
			ToStatus:   found.Status,
			ChangedBy:  caller.ID,
			Note:       input.StatusNote,
			CreatedAt:  found.UpdatedAt,
		}); err != nil {
			return nil, err
		}

		service.logger.Info("project_status_changed",
			slog.String("project_id", found.ID),
			slog.String("from", string(previous)),
			slog.String("to", string(found.Status)),
		)
	}

	return found, nil
}

/*
Delete soft-deletes a project visible to the caller.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - id: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (service *Service) Delete(context context.Context, caller *sec.Identity, id string) error {
	if _, err := service.Get(context, caller, id); err != nil {
		return err
	}

	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Warn("project_deleted", slog.String("project_id", id))

	return nil
}

/*
StatusLog returns the full status history of a project visible to the caller.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - id: string

Returns:
  - []*StatusLogEntry: Ordered history, oldest first
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) StatusLog(context context.Context, caller *sec.Identity, id string) ([]*StatusLogEntry, error) {
	if _, err := service.Get(context, caller, id); err != nil {
		return nil, err
	}

	return service.repo.StatusLog(context, id)
}

// # Scoping Helpers

// clampFilter forces a customer user's listing to their own organization.
func (service *Service) clampFilter(caller *sec.Identity, filter Filter) Filter {
	if !caller.IsAdmin() && caller.OrganizationID != nil {
		filter.OrganizationID = *caller.OrganizationID
	}
	return filter
}

// visible reports whether the caller may see the project.
func (service *Service) visible(caller *sec.Identity, found *Project) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller.OrganizationID != nil && *caller.OrganizationID == found.OrganizationID
}
