// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package project_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terralens/terralens/internal/core/project"
	"github.com/terralens/terralens/internal/platform/apperr"
	"github.com/terralens/terralens/internal/platform/sec"
	"github.com/terralens/terralens/pkg/pagination"
	"github.com/terralens/terralens/pkg/pointer"
)

type memoryRepository struct {
	projects map[string]*project.Project
	logs     map[string][]*project.StatusLogEntry
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		projects: map[string]*project.Project{},
		logs:     map[string][]*project.StatusLogEntry{},
	}
}

func (repository *memoryRepository) List(_ context.Context, filter project.Filter, _ pagination.Params) ([]*project.Project, int, error) {
	matches := []*project.Project{}
	for _, candidate := range repository.projects {
		if candidate.DeletedAt != nil {
			continue
		}
		if filter.OrganizationID != "" && candidate.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.Theme != "" && candidate.Theme != filter.Theme {
			continue
		}
		if filter.Status != "" && candidate.Status != filter.Status {
			continue
		}
		matches = append(matches, candidate)
	}
	return matches, len(matches), nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*project.Project, error) {
	found, ok := repository.projects[id]
	if !ok || found.DeletedAt != nil {
		return nil, apperr.NotFound("Project")
	}
	return found, nil
}

func (repository *memoryRepository) Create(_ context.Context, created *project.Project) error {
	repository.projects[created.ID] = created
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, updated *project.Project) error {
	repository.projects[updated.ID] = updated
	return nil
}

func (repository *memoryRepository) SoftDelete(_ context.Context, id string) error {
	found, ok := repository.projects[id]
	if !ok || found.DeletedAt != nil {
		return apperr.NotFound("Project")
	}
	now := found.UpdatedAt
	found.DeletedAt = &now
	return nil
}

func (repository *memoryRepository) AppendStatusLog(_ context.Context, entry *project.StatusLogEntry) error {
	repository.logs[entry.ProjectID] = append(repository.logs[entry.ProjectID], entry)
	return nil
}

func (repository *memoryRepository) StatusLog(_ context.Context, projectID string) ([]*project.StatusLogEntry, error) {
	return repository.logs[projectID], nil
}

const (
	ownOrganization     = "018f3b1a-0000-7000-8000-0000000000aa"
	foreignOrganization = "018f3b1a-0000-7000-8000-0000000000bb"
)

func admin() *sec.Identity {
	return &sec.Identity{ID: "admin", Roles: []sec.Role{sec.RoleAdmin}}
}

func customer() *sec.Identity {
	return &sec.Identity{
		ID:             "customer",
		Roles:          []sec.Role{sec.RoleUser},
		OrganizationID: pointer.To(ownOrganization),
	}
}

func testService(repository *memoryRepository) *project.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return project.NewService(repository, logger)
}

func seedProject(t *testing.T, service *project.Service, organizationID string) *project.Project {
	t.Helper()
	created, err := service.Create(context.Background(), admin(), project.CreateInput{
		OrganizationID: organizationID,
		Name:           "Peat Restoration North",
		Theme:          project.ThemePeatland,
	})
	require.NoError(t, err)
	return created
}

/*
TestService_Create verifies creation defaults and the initial log entry.
*/
func TestService_Create(t *testing.T) {
	repository := newMemoryRepository()
	service := testService(repository)

	created := seedProject(t, service, ownOrganization)
	assert.Equal(t, project.StatusDraft, created.Status)
	assert.Equal(t, "peat-restoration-north", created.Slug)

	entries, err := service.StatusLog(context.Background(), admin(), created.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].FromStatus)
	assert.Equal(t, project.StatusDraft, entries[0].ToStatus)

	t.Run("unknown_theme_rejected", func(t *testing.T) {
		_, err := service.Create(context.Background(), admin(), project.CreateInput{
			OrganizationID: ownOrganization,
			Name:           "X",
			Theme:          project.Theme("volcano"),
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("customer_clamped_to_own_organization", func(t *testing.T) {
		created, err := service.Create(context.Background(), customer(), project.CreateInput{
			OrganizationID: foreignOrganization,
			Name:           "Sneaky",
			Theme:          project.ThemeForest,
		})
		require.NoError(t, err)
		assert.Equal(t, ownOrganization, created.OrganizationID)
	})
}

/*
TestService_TenantScoping verifies customer users cannot see foreign projects.
*/
func TestService_TenantScoping(t *testing.T) {
	repository := newMemoryRepository()
	service := testService(repository)
	own := seedProject(t, service, ownOrganization)
	foreign := seedProject(t, service, foreignOrganization)

	t.Run("list_is_clamped", func(t *testing.T) {
		projects, _, err := service.List(context.Background(), customer(), project.Filter{
			OrganizationID: foreignOrganization,
		}, pagination.Params{Page: 1, Limit: 20})
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, own.ID, projects[0].ID)
	})

	t.Run("admin_sees_everything", func(t *testing.T) {
		projects, _, err := service.List(context.Background(), admin(), project.Filter{}, pagination.Params{Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Len(t, projects, 2)
	})

	t.Run("foreign_get_looks_missing", func(t *testing.T) {
		_, err := service.Get(context.Background(), customer(), foreign.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("foreign_status_log_looks_missing", func(t *testing.T) {
		_, err := service.StatusLog(context.Background(), customer(), foreign.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}

/*
TestService_StatusPipeline verifies allowed and rejected transitions and the
append-only log.
*/
func TestService_StatusPipeline(t *testing.T) {
	repository := newMemoryRepository()
	service := testService(repository)
	created := seedProject(t, service, ownOrganization)

	advance := func(t *testing.T, to project.Status, note *string) *project.Project {
		t.Helper()
		updated, err := service.Update(context.Background(), admin(), created.ID, project.UpdateInput{
			Status:     &to,
			StatusNote: note,
		})
		require.NoError(t, err)
		return updated
	}

	t.Run("ordered_pipeline", func(t *testing.T) {
		updated := advance(t, project.StatusDataCollection, pointer.To("field team dispatched"))
		assert.Equal(t, project.StatusDataCollection, updated.Status)

		advance(t, project.StatusAnalysis, nil)
		advance(t, project.StatusMonitoring, nil)
		updated = advance(t, project.StatusCompleted, nil)
		assert.Equal(t, project.StatusCompleted, updated.Status)

		entries, err := service.StatusLog(context.Background(), admin(), created.ID)
		require.NoError(t, err)
		require.Len(t, entries, 5) // creation + 4 transitions
		assert.Equal(t, "field team dispatched", *entries[1].Note)
		assert.Equal(t, project.StatusDraft, *entries[1].FromStatus)
	})

	t.Run("skipping_a_stage_rejected", func(t *testing.T) {
		other := seedProject(t, service, ownOrganization)
		status := project.StatusMonitoring
		_, err := service.Update(context.Background(), admin(), other.ID, project.UpdateInput{Status: &status})
		require.Error(t, err)
		assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
	})

	t.Run("archive_from_anywhere", func(t *testing.T) {
		other := seedProject(t, service, ownOrganization)
		status := project.StatusArchived
		updated, err := service.Update(context.Background(), admin(), other.ID, project.UpdateInput{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, project.StatusArchived, updated.Status)

		// Terminal: nothing leaves archived.
		status = project.StatusDraft
		_, err = service.Update(context.Background(), admin(), other.ID, project.UpdateInput{Status: &status})
		require.Error(t, err)
	})
}

/*
TestService_Delete verifies soft-deletion respects tenant scoping.
*/
func TestService_Delete(t *testing.T) {
	repository := newMemoryRepository()
	service := testService(repository)
	foreign := seedProject(t, service, foreignOrganization)

	t.Run("customer_cannot_delete_foreign", func(t *testing.T) {
		err := service.Delete(context.Background(), customer(), foreign.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("admin_deletes", func(t *testing.T) {
		require.NoError(t, service.Delete(context.Background(), admin(), foreign.ID))
		_, err := service.Get(context.Background(), admin(), foreign.ID)
		require.Error(t, err)
	})
}

/*
TestThemes checks the fixed descriptor list.
*/
func TestThemes(t *testing.T) {
	themes := project.Themes()
	require.Len(t, themes, 5)

	values := []project.Theme{}
	for _, descriptor := range themes {
		assert.NotEmpty(t, descriptor.Label)
		assert.NotEmpty(t, descriptor.Description)
		values = append(values, descriptor.Value)
	}

	assert.Equal(t, []project.Theme{
		project.ThemeForest,
		project.ThemeWetland,
		project.ThemeGrassland,
		project.ThemePeatland,
		project.ThemeAgroforestry,
	}, values)
}
