// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package organization

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

// NewRepository creates a new PostgreSQL-backed organization Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const organizationColumns = `
	id, name, slug, description, website, contact_email, country,
	is_active, created_at, updated_at, deleted_at`

func scanOrganization(row pgx.Row) (*Organization, error) {
	organization := &Organization{}

	err := row.Scan(
		&organization.ID,
		&organization.Name,
		&organization.Slug,
		&organization.Description,
		&organization.Website,
		&organization.ContactEmail,
		&organization.Country,
		&organization.IsActive,
		&organization.CreatedAt,
		&organization.UpdatedAt,
		&organization.DeletedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Organization")
	}

	return organization, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, page pagination.Params) ([]*Organization, int, error) {
	where := `WHERE deleted_at IS NULL`
	args := []any{}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}

	total := 0
	countQuery := `SELECT COUNT(*) FROM core.organization ` + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Organization")
	}

	args = append(args, page.Limit, page.Offset())
	listQuery := `SELECT ` + organizationColumns + `
		FROM core.organization ` + where + `
		ORDER BY name ASC
		LIMIT $` + fmt.Sprint(len(args)-1) + ` OFFSET $` + fmt.Sprint(len(args))

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Organization")
	}
	defer rows.Close()

	organizations := []*Organization{}
	for rows.Next() {
		organization, err := scanOrganization(rows)
		if err != nil {
			return nil, 0, err
		}
		organizations = append(organizations, organization)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Organization")
	}

	return organizations, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Organization, error) {
	query := `SELECT ` + organizationColumns + `
		FROM core.organization
		WHERE id = $1 AND deleted_at IS NULL`

	return scanOrganization(repository.pool.QueryRow(context, query, id))
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Organization, error) {
	query := `SELECT ` + organizationColumns + `
		FROM core.organization
		WHERE slug = $1 AND deleted_at IS NULL`

	return scanOrganization(repository.pool.QueryRow(context, query, slug))
}

func (repository *PostgresRepository) Create(context context.Context, organization *Organization) error {
	query := `
		INSERT INTO core.organization (
			id, name, slug, description, website, contact_email, country,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := repository.pool.Exec(context, query,
		organization.ID,
		organization.Name,
		organization.Slug,
		organization.Description,
		organization.Website,
		organization.ContactEmail,
		organization.Country,
		organization.IsActive,
		organization.CreatedAt,
		organization.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Organization")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, organization *Organization) error {
	query := `
		UPDATE core.organization
		SET name = $2, slug = $3, description = $4, website = $5,
			contact_email = $6, country = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(context, query,
		organization.ID,
		organization.Name,
		organization.Slug,
		organization.Description,
		organization.Website,
		organization.ContactEmail,
		organization.Country,
		organization.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Organization")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Organization")
	}

	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := `
		UPDATE core.organization
		SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Organization")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Organization")
	}

	return nil
}
