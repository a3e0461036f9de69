// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

package auth

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terralens/terralens/internal/platform/dberr"
	"github.com/terralens/terralens/internal/platform/sec"
)

// PostgresAccountRepository implements [AccountRepository] using PostgreSQL.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL-backed AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

const accountColumns = `
	id, email, password_hash, name, roles, organization_id,
	language, timezone, is_active, created_at, updated_at`

// scanAccount hydrates an Account from a row.
func scanAccount(row pgx.Row) (*Account, error) {
	account := &Account{}
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

/*
FindByID returns the account with the given identifier.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Account: Hydrated account
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM users.account
		WHERE id = $1 AND is_active = TRUE`

	return scanAccount(repository.pool.QueryRow(context, query, id))
}

/*
FindByEmail returns the active account registered under the given email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Account: Hydrated account
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM users.account
		WHERE LOWER(email) = LOWER($1) AND is_active = TRUE`

	return scanAccount(repository.pool.QueryRow(context, query, email))
}
