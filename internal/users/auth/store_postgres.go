// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shophub/internal/platform/apperr"
	"github.com/taibuivan/shophub/internal/platform/database/schema"
	"github.com/taibuivan/shophub/internal/platform/dberr"
	"github.com/taibuivan/shophub/pkg/pagination"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on shop.useraccount.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
	schema.ShopUserAccount.ID,
	schema.ShopUserAccount.Username,
	schema.ShopUserAccount.Email,
	schema.ShopUserAccount.Password,
	schema.ShopUserAccount.CreatedAt,
	schema.ShopUserAccount.UpdatedAt,
)

/*
Create inserts a new account row. Timestamps are initialised when unset.
The unique email constraint is the final arbiter for concurrent sign-ups.
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.ShopUserAccount.Table, userColumns)

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return dberr.Wrap(err, "User", "postgres_user_repo_create_failed")
}

/*
FindByEmail retrieves the account registered under email.
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.ShopUserAccount.Table, schema.ShopUserAccount.Email)

	user := &User{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_user_repo_find_by_email_failed")
	}

	return user, nil
}

/*
DeleteByEmail physically removes the account registered under email.
*/
func (repository *PostgresUserRepository) DeleteByEmail(context context.Context, email string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ShopUserAccount.Table, schema.ShopUserAccount.Email)

	tag, err := repository.pool.Exec(context, query, email)
	if err != nil {
		return dberr.Wrap(err, "User", "postgres_user_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

/*
List returns a page of accounts ordered by creation time, newest first.
*/
func (repository *PostgresUserRepository) List(context context.Context, params pagination.Params) ([]*User, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		userColumns,
		schema.ShopUserAccount.Table,
		schema.ShopUserAccount.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User", "postgres_user_repo_list_failed")
	}
	defer rows.Close()

	users := []*User{}
	var totalCount int

	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "User", "postgres_user_repo_scan_failed")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "User", "postgres_user_repo_list_failed")
	}

	return users, totalCount, nil
}
