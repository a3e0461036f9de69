// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package organization

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

// Service orchestrates business rules for customer organizations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new organization [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Organization Management

/*
List retrieves a paginated and filtered list of organizations.

Description: Administrator only; customer users never list tenants.

Parameters:
  - context: context.Context
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*Organization: List of organizations
  - pagination.Meta: Page metadata
  - error: Retrieval errors
*/
func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*Organization, pagination.Meta, error) {
	organizations, total, err := service.repo.List(context, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return organizations, pagination.NewMeta(page.Page, page.Limit, total), nil
}

/*
Get retrieves an organization by UUID or slug, scoped to the caller.

Description: A customer user may only read their own organization. Any other
tenant resolves to NotFound rather than Forbidden, so the response does not
confirm that the identifier exists.

Parameters:
  - context: context.Context
  - caller: *sec.Identity
  - identifier: string

Returns:
  - *Organization: Hydrated entity
  - error: apperr.NotFound if missing or out of scope
*/
func (service *Service) Get(context context.Context, caller *sec.Identity, identifier string) (*Organization, error) {
	found, err := service.find(context, identifier)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() {
		if caller.OrganizationID == nil || *caller.OrganizationID != found.ID {
			return nil, apperr.NotFound("Organization")
		}
	}

	return found, nil
}

/*
FindName returns the display name of an organization.

Description: Satisfies auth.OrganizationDirectory for the impersonation
banner. Unknown organizations yield an empty name, not an error.

Parameters:
  - context: context.Context
  - organizationID: string

Returns:
  - string: Display name
  - error: Database errors
*/
func (service *Service) FindName(context context.Context, organizationID string) (string, error) {
	found, err := service.repo.FindByID(context, organizationID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}

	return found.Name, nil
}

/*
Create provisions a new organization.

Parameters:
  - context: context.Context
  - organization: *Organization

Returns:
  - error: Validation or persistence failures
*/
func (service *Service) Create(context context.Context, organization *Organization) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, organization.Name).MaxLen(FieldName, organization.Name, 200)

	if organization.Website != nil {
		validator.URL(FieldWebsite, *organization.Website)
	}
	if organization.ContactEmail != nil {
		validator.Email(FieldContactEmail, *organization.ContactEmail)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	now := time.Now().UTC()
	organization.ID = uuidv7.New()
	organization.Slug = slug.From(organization.Name)
	organization.IsActive = true
	organization.CreatedAt = now
	organization.UpdatedAt = now

	if err := service.repo.Create(context, organization); err != nil {
		return err
	}

	service.logger.Info("organization_created",
		slog.String("organization_id", organization.ID),
		slog.String(FieldSlug, organization.Slug),
	)

	return nil
}

// UpdateInput defines the mutable subset of organization fields.
type UpdateInput struct {
	Name         *string
	Description  *string
	Website      *string
	ContactEmail *string
	Country      *string
}

/*
Update applies a partial set of changes to an organization.

Description: The slug follows the name, so renaming an organization changes
its human-readable identifier.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Organization: The updated entity
  - error: Validation or persistence failures
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Organization, error) {
	found, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 200)
	}
	if input.Website != nil && *input.Website != "" {
		validator.URL(FieldWebsite, *input.Website)
	}
	if input.ContactEmail != nil && *input.ContactEmail != "" {
		validator.Email(FieldContactEmail, *input.ContactEmail)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		found.Name = *input.Name
		found.Slug = slug.From(*input.Name)
	}
	if input.Description != nil {
		found.Description = input.Description
	}
	if input.Website != nil {
		found.Website = input.Website
	}
	if input.ContactEmail != nil {
		found.ContactEmail = input.ContactEmail
	}
	if input.Country != nil {
		found.Country = input.Country
	}
	found.UpdatedAt = time.Now().UTC()

	if err := service.repo.Update(context, found); err != nil {
		return nil, err
	}

	service.logger.Info("organization_updated", slog.String("organization_id", id))

	return found, nil
}

/*
Delete soft-deletes an organization.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Warn("organization_deleted", slog.String("organization_id", id))

	return nil
}

// find resolves an identifier to an organization by UUID or slug.
func (service *Service) find(context context.Context, identifier string) (*Organization, error) {
	// UUIDs have a fixed length of 36 characters in standard hyphenated format.
	if len(identifier) == 36 {
		return service.repo.FindByID(context, identifier)
	}

	return service.repo.FindBySlug(context, identifier)
}
