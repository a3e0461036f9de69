// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package project

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terralens/terralens/internal/platform/dberr"
	"github.com/terralens/terralens/pkg/pagination"
)

// PostgresRepository implements [Repository] using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL-backed project Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const projectColumns = `
	id, organization_id, name, slug, theme, status, description,
	area_hectares, country, created_at, updated_at, deleted_at`

func scanProject(row pgx.Row) (*Project, error) {
	entity := &Project{}

	err := row.Scan(
		&entity.ID,
		&entity.OrganizationID,
		&entity.Name,
		&entity.Slug,
		&entity.Theme,
		&entity.Status,
		&entity.Description,
		&entity.AreaHectares,
		&entity.Country,
		&entity.CreatedAt,
		&entity.UpdatedAt,
		&entity.DeletedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Project")
	}

	return entity, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, page pagination.Params) ([]*Project, int, error) {
	where := `WHERE deleted_at IS NULL`
	args := []any{}

	if filter.OrganizationID != "" {
		args = append(args, filter.OrganizationID)
		where += fmt.Sprintf(" AND organization_id = $%d", len(args))
	}
	if filter.Theme != "" {
		args = append(args, filter.Theme)
		where += fmt.Sprintf(" AND theme = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}

	total := 0
	countQuery := `SELECT COUNT(*) FROM core.project ` + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Project")
	}

	args = append(args, page.Limit, page.Offset())
	listQuery := `SELECT ` + projectColumns + `
		FROM core.project ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprint(len(args)-1) + ` OFFSET $` + fmt.Sprint(len(args))

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Project")
	}
	defer rows.Close()

	projects := []*Project{}
	for rows.Next() {
		entity, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Project")
	}

	return projects, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM core.project
		WHERE id = $1 AND deleted_at IS NULL`

	return scanProject(repository.pool.QueryRow(context, query, id))
}

func (repository *PostgresRepository) Create(context context.Context, entity *Project) error {
	query := `
		INSERT INTO core.project (
			id, organization_id, name, slug, theme, status, description,
			area_hectares, country, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := repository.pool.Exec(context, query,
		entity.ID,
		entity.OrganizationID,
		entity.Name,
		entity.Slug,
		entity.Theme,
		entity.Status,
		entity.Description,
		entity.AreaHectares,
		entity.Country,
		entity.CreatedAt,
		entity.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Project")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, entity *Project) error {
	query := `
		UPDATE core.project
		SET name = $2, slug = $3, status = $4, description = $5,
			area_hectares = $6, country = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(context, query,
		entity.ID,
		entity.Name,
		entity.Slug,
		entity.Status,
		entity.Description,
		entity.AreaHectares,
		entity.Country,
		entity.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Project")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Project")
	}

	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := `
		UPDATE core.project
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Project")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Project")
	}

	return nil
}

func (repository *PostgresRepository) AppendStatusLog(context context.Context, entry *StatusLogEntry) error {
	query := `
		INSERT INTO core.projectstatuslog (
			id, project_id, from_status, to_status, changed_by, note, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := repository.pool.Exec(context, query,
		entry.ID,
		entry.ProjectID,
		entry.FromStatus,
		entry.ToStatus,
		entry.ChangedBy,
		entry.Note,
		entry.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Status log")
	}

	return nil
}

func (repository *PostgresRepository) StatusLog(context context.Context, projectID string) ([]*StatusLogEntry, error) {
	query := `
		SELECT id, project_id, from_status, to_status, changed_by, note, created_at
		FROM core.projectstatuslog
		WHERE project_id = $1
		ORDER BY created_at ASC`

	rows, err := repository.pool.Query(context, query, projectID)
	if err != nil {
		return nil, dberr.Wrap(err, "Status log")
	}
	defer rows.Close()

	entries := []*StatusLogEntry{}
	for rows.Next() {
		entry := &StatusLogEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.ProjectID,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.ChangedBy,
			&entry.Note,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "Status log")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Status log")
	}

	return entries, nil
}
