// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/shophub/internal/platform/apperr"
	"github.com/taibuivan/shophub/internal/platform/ctxutil"
	"github.com/taibuivan/shophub/internal/platform/metrics"
	"github.com/taibuivan/shophub/internal/platform/sec"
	"github.com/taibuivan/shophub/pkg/pagination"
	"github.com/taibuivan/shophub/pkg/uuid"
)

// # Contracts & Types

// PasswordHasher is the part of [sec.Hasher] the service depends on.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}

// TokenIssuer is the part of [sec.TokenService] the service depends on.
type TokenIssuer interface {
	Issue(identity sec.Identity, timeToLive time.Duration) (string, error)
}

// Service implements the account use cases.
type Service struct {
	userRepository UserRepository
	hasher         PasswordHasher
	tokens         TokenIssuer
	tokenTTL       time.Duration
	recorder       metrics.Recorder
}

// NewService constructs a new [Service]. A nil recorder disables metrics.
func NewService(
	userRepo UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	tokenTTL time.Duration,
	recorder metrics.Recorder,
) *Service {
	if recorder == nil {
		recorder = (*metrics.Collector)(nil)
	}
	return &Service{
		userRepository: userRepo,
		hasher:         hasher,
		tokens:         tokens,
		tokenTTL:       tokenTTL,
		recorder:       recorder,
	}
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new shopper.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

/*
Register hashes the password and persists a new account.

The username is "<firstname> <lastname>". A pre-check on the email gives the
common case a clean error; the unique constraint covers concurrent sign-ups.

Returns:
  - *User: Created entity
  - error: Duplicate (email taken), Validation (password too long) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	email := NormalizeEmail(input.Email)

	_, err := service.userRepository.FindByEmail(context, email)
	switch {
	case err == nil:
		return nil, apperr.Duplicate(msgUserExists)
	case !apperr.HasCode(err, apperr.CodeNotFound):
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	hashedPassword, err := service.hasher.Hash(context, input.Password)
	if err != nil {
		if errors.Is(err, sec.ErrPasswordTooLong) {
			return nil, apperr.ValidationError("Password must be at most 72 bytes.",
				apperr.FieldError{Field: FieldPassword, Message: "too long"})
		}
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(input.FirstName) + " " + strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.HasCode(err, apperr.CodeDuplicate) {
			return nil, apperr.Duplicate(msgUserExists).WithCause(err)
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.recorder.RecordRegistration()
	ctxutil.Logger(context).InfoContext(context, "user_registered", slog.String("user_id", user.ID))

	return user, nil
}

// # Login Flow

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	User  *User
	Token string
}

/*
Login verifies a password and mints a bearer token.

Returns:
  - LoginResult: The account and its token
  - error: NotFound (unknown email), InvalidCredentials (wrong password)
*/
func (service *Service) Login(context context.Context, email, password string) (LoginResult, error) {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		service.recorder.RecordLogin(metrics.OutcomeFailure)
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return LoginResult{}, apperr.NotFound("User").WithMessage(msgUserNotFound)
		}
		return LoginResult{}, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	matched, err := service.hasher.Verify(context, password, user.PasswordHash)
	if err != nil {
		service.recorder.RecordLogin(metrics.OutcomeFailure)
		if errors.Is(err, sec.ErrPasswordTooLong) {
			return LoginResult{}, apperr.InvalidCredentials(msgInvalidCredentials)
		}
		return LoginResult{}, fmt.Errorf("auth_service_verify_failed: %w", err)
	}
	if !matched {
		service.recorder.RecordLogin(metrics.OutcomeFailure)
		return LoginResult{}, apperr.InvalidCredentials(msgInvalidCredentials)
	}

	token, err := service.tokens.Issue(sec.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	}, service.tokenTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth_service_issue_token_failed: %w", err)
	}

	service.recorder.RecordLogin(metrics.OutcomeSuccess)
	return LoginResult{User: user, Token: token}, nil
}

// # Account Administration

/*
Delete removes the account registered under email. Tokens already issued to
the account stay valid until they expire.
*/
func (service *Service) Delete(context context.Context, email string) error {
	if err := service.userRepository.DeleteByEmail(context, NormalizeEmail(email)); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return apperr.NotFound("User").WithMessage(msgUserNotFound)
		}
		return fmt.Errorf("auth_service_delete_failed: %w", err)
	}

	ctxutil.Logger(context).InfoContext(context, "user_deleted")
	return nil
}

// List returns one page of accounts for the admin listing.
func (service *Service) List(context context.Context, params pagination.Params) ([]*User, int, error) {
	users, total, err := service.userRepository.List(context, params)
	if err != nil {
		return nil, 0, fmt.Errorf("auth_service_list_failed: %w", err)
	}
	return users, total, nil
}
