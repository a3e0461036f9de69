// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/terralens/terralens/internal/platform/apperr"
	"github.com/terralens/terralens/internal/platform/sec"
	"github.com/terralens/terralens/internal/users/auth"
	"github.com/terralens/terralens/pkg/pagination"
	"github.com/terralens/terralens/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates administrative account management.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
List returns a page of accounts matching the filter.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - page: pagination.Params

Returns:
  - []*auth.Account: Matching accounts
  - pagination.Meta: Page metadata
  - error: Database errors
*/
func (service *Service) List(context context.Context, filter ListFilter, page pagination.Params) ([]*auth.Account, pagination.Meta, error) {
	accounts, total, err := service.repository.List(context, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("account_service_list_failed: %w", err)
	}

	return accounts, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// CreateInput carries the fields needed to provision an account.
type CreateInput struct {
	Email          string
	Password       string
	Name           string
	Role           sec.Role
	OrganizationID *string
	Language       string
	Timezone       string
}

/*
Create provisions a new account.

Description: Customer users must belong to an organization; administrators
must not, since they operate across all of them. The password is hashed
before the account ever reaches storage.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *auth.Account: The persisted account
  - error: Validation, conflict or database errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*auth.Account, error) {
	switch input.Role {
	case sec.RoleUser:
		if input.OrganizationID == nil || *input.OrganizationID == "" {
			return nil, apperr.Unprocessable("A customer user must belong to an organization")
		}
	case sec.RoleAdmin:
		if input.OrganizationID != nil && *input.OrganizationID != "" {
			return nil, apperr.Unprocessable("An administrator cannot belong to an organization")
		}
		input.OrganizationID = nil
	default:
		return nil, apperr.Unprocessable("Unknown role")
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	now := time.Now().UTC()
	created := &auth.Account{
		ID:             uuidv7.Must(),
		Email:          input.Email,
		PasswordHash:   hash,
		Name:           input.Name,
		Roles:          []sec.Role{input.Role},
		OrganizationID: input.OrganizationID,
		Language:       input.Language,
		Timezone:       input.Timezone,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := service.repository.Create(context, created); err != nil {
		return nil, fmt.Errorf("account_service_create_failed: %w", err)
	}

	service.logger.Info("account_created",
		slog.String("user_id", created.ID),
		slog.String("role", string(input.Role)),
	)

	return created, nil
}

/*
Delete performs a soft-deletion of an account.

Description: The row is kept for audit; the account simply stops resolving
for login and listings. Self-deletion is refused so an administrator cannot
lock themselves out.

Parameters:
  - context: context.Context
  - callerID: string
  - userID: string

Returns:
  - error: apperr.NotFound, apperr.Conflict or database errors
*/
func (service *Service) Delete(context context.Context, callerID, userID string) error {
	if callerID == userID {
		return apperr.Conflict("You cannot delete your own account")
	}

	if err := service.repository.SoftDelete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.Warn("account_deleted", slog.String("user_id", userID))

	return nil
}
