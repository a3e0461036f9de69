// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terralens/terralens/internal/platform/dberr"
	"github.com/terralens/terralens/internal/platform/sec"
	"github.com/terralens/terralens/internal/users/auth"
	"github.com/terralens/terralens/pkg/pagination"
)

// PostgresRepository implements [Repository] using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL-backed account Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const accountColumns = `
	id, email, password_hash, name, roles, organization_id,
	language, timezone, is_active, created_at, updated_at`

func scanAccount(row pgx.Row) (*auth.Account, error) {
	account := &auth.Account{}
	roles := []string{}

	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Name,
		&roles,
		&account.OrganizationID,
		&account.Language,
		&account.Timezone,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Account")
	}

	account.Roles = sec.RolesFromStrings(roles)
	return account, nil
}

func (repository *PostgresRepository) List(context context.Context, filter ListFilter, page pagination.Params) ([]*auth.Account, int, error) {
	where := `WHERE is_active = TRUE`
	args := []any{}

	if filter.OrganizationID != "" {
		args = append(args, filter.OrganizationID)
		where += fmt.Sprintf(" AND organization_id = $%d", len(args))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		where += fmt.Sprintf(" AND $%d = ANY(roles)", len(args))
	}

	total := 0
	countQuery := `SELECT COUNT(*) FROM users.account ` + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Account")
	}

	args = append(args, page.Limit, page.Offset())
	listQuery := `SELECT ` + accountColumns + `
		FROM users.account ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprint(len(args)-1) + ` OFFSET $` + fmt.Sprint(len(args))

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Account")
	}
	defer rows.Close()

	accounts := []*auth.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Account")
	}

	return accounts, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM users.account
		WHERE id = $1 AND is_active = TRUE`

	return scanAccount(repository.pool.QueryRow(context, query, id))
}

func (repository *PostgresRepository) Create(context context.Context, account *auth.Account) error {
	query := `
		INSERT INTO users.account (
			id, email, password_hash, name, roles, organization_id,
			language, timezone, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := repository.pool.Exec(context, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Name,
		sec.RolesToStrings(account.Roles),
		account.OrganizationID,
		account.Language,
		account.Timezone,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Account")
	}

	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := `
		UPDATE users.account
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Account")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Account")
	}

	return nil
}
