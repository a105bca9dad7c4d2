// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account registration, login and removal.

# Architecture

The package follows the handler / service / store layering used across the
API. The service owns the rules (duplicate detection, password checks, token
minting); the store is an interface so tests can run without PostgreSQL.
*/
package auth

import "time"

// # Domain Entities

// User is a registered shopper. The record never changes after creation; it
// only goes away through an explicit delete.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldFirstName = "firstname"
	FieldLastName  = "lastname"
	FieldEmail     = "email"
	FieldPassword  = "password"
)

// maxNameLength bounds each half of the display name.
const maxNameLength = 100

// # Client Messages

const (
	msgMissingCredentials = "Missing credentials."
	msgInvalidAccount     = "Invalid account details."
	msgUserExists         = "User already exist in database."
	msgUserCreated        = "User created in database."
	msgUserNotFound       = "User not found in database."
	msgInvalidCredentials = "Invalid credentials"
	msgLoginSuccess       = "Login success"
	msgUserDeleted        = "User deleted successfully"
	msgUsersFetched       = "Users fetched successfully."
	msgCurrentUser        = "Authenticated user."
)
