// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terralens/terralens/internal/platform/apperr"
	"github.com/terralens/terralens/internal/platform/sec"
	"github.com/terralens/terralens/internal/users/account"
	"github.com/terralens/terralens/internal/users/auth"
	"github.com/terralens/terralens/pkg/pagination"
	"github.com/terralens/terralens/pkg/pointer"
)

type memoryRepository struct {
	accounts map[string]*auth.Account
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{accounts: map[string]*auth.Account{}}
}

func (repository *memoryRepository) List(_ context.Context, filter account.ListFilter, _ pagination.Params) ([]*auth.Account, int, error) {
	matches := []*auth.Account{}
	for _, candidate := range repository.accounts {
		if !candidate.IsActive {
			continue
		}
		if filter.OrganizationID != "" {
			if candidate.OrganizationID == nil || *candidate.OrganizationID != filter.OrganizationID {
				continue
			}
		}
		matches = append(matches, candidate)
	}
	return matches, len(matches), nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*auth.Account, error) {
	found, ok := repository.accounts[id]
	if !ok || !found.IsActive {
		return nil, apperr.NotFound("Account")
	}
	return found, nil
}

func (repository *memoryRepository) Create(_ context.Context, created *auth.Account) error {
	for _, existing := range repository.accounts {
		if existing.Email == created.Email {
			return apperr.Conflict("Account already exists")
		}
	}
	repository.accounts[created.ID] = created
	return nil
}

func (repository *memoryRepository) SoftDelete(_ context.Context, id string) error {
	found, ok := repository.accounts[id]
	if !ok || !found.IsActive {
		return apperr.NotFound("Account")
	}
	found.IsActive = false
	return nil
}

func testService(repository *memoryRepository) *account.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(repository, logger)
}

/*
TestService_Create verifies the role and organization pairing rules.
*/
func TestService_Create(t *testing.T) {
	organizationID := "018f3b1a-0000-7000-8000-0000000000aa"

	tests := []struct {
		name           string
		role           sec.Role
		organizationID *string
		errorCode      string
	}{
		{"customer_with_organization", sec.RoleUser, pointer.To(organizationID), ""},
		{"customer_without_organization", sec.RoleUser, nil, "UNPROCESSABLE"},
		{"admin_without_organization", sec.RoleAdmin, nil, ""},
		{"admin_with_organization", sec.RoleAdmin, pointer.To(organizationID), "UNPROCESSABLE"},
		{"unknown_role", sec.Role("AUDITOR"), nil, "UNPROCESSABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := testService(newMemoryRepository())

			created, err := service.Create(context.Background(), account.CreateInput{
				Email:          "person@terralens.earth",
				Password:       "a-long-enough-password",
				Name:           "Person",
				Role:           tt.role,
				OrganizationID: tt.organizationID,
			})

			if tt.errorCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errorCode, apperr.As(err).Code)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.True(t, created.IsActive)
			assert.NotEqual(t, "a-long-enough-password", created.PasswordHash)
			assert.True(t, sec.CheckPasswordHash("a-long-enough-password", created.PasswordHash))
		})
	}
}

/*
TestService_Create_DuplicateEmail verifies conflict propagation.
*/
func TestService_Create_DuplicateEmail(t *testing.T) {
	repository := newMemoryRepository()
	service := testService(repository)
	organizationID := "018f3b1a-0000-7000-8000-0000000000aa"

	input := account.CreateInput{
		Email:          "dup@terralens.earth",
		Password:       "a-long-enough-password",
		Name:           "First",
		Role:           sec.RoleUser,
		OrganizationID: &organizationID,
	}

	_, err := service.Create(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_Delete verifies soft-deletion and the self-delete guard.
*/
func TestService_Delete(t *testing.T) {
	repository := newMemoryRepository()
	service := testService(repository)
	organizationID := "018f3b1a-0000-7000-8000-0000000000aa"

	created, err := service.Create(context.Background(), account.CreateInput{
		Email:          "target@terralens.earth",
		Password:       "a-long-enough-password",
		Name:           "Target",
		Role:           sec.RoleUser,
		OrganizationID: &organizationID,
	})
	require.NoError(t, err)

	t.Run("self_delete_is_refused", func(t *testing.T) {
		err := service.Delete(context.Background(), created.ID, created.ID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("delete_deactivates", func(t *testing.T) {
		require.NoError(t, service.Delete(context.Background(), "admin-id", created.ID))

		_, err := repository.FindByID(context.Background(), created.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("second_delete_is_not_found", func(t *testing.T) {
		err := service.Delete(context.Background(), "admin-id", created.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}
