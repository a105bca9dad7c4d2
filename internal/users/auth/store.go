// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/shophub/pkg/pagination"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByEmail returns the account with the given email.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when no account matches
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Returns:
		  - error: apperr.Duplicate when the email is already registered
	*/
	Create(context context.Context, user *User) error

	/*
		DeleteByEmail removes the account with the given email.

		Returns:
		  - error: apperr.NotFound when nothing was deleted
	*/
	DeleteByEmail(context context.Context, email string) error

	/*
		List returns one page of accounts, newest first, plus the total count.
	*/
	List(context context.Context, params pagination.Params) ([]*User, int, error)
}
