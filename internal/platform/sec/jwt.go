// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, JWT
// signing) from the domain logic. It is injected into the auth service and
// the access gate as plain dependencies; nothing here reads global state.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is returned when an empty token is presented.
	ErrMissingToken = errors.New("sec: missing token")

	// ErrInvalidToken covers every verification failure: bad signature,
	// unexpected algorithm, malformed structure, wrong issuer, or expiry.
	ErrInvalidToken = errors.New("sec: invalid token")
)

// Identity is the set of user attributes minted into a token.
type Identity struct {
	UserID   string
	Email    string
	Username string
}

// AuthClaims represents the payload embedded inside a bearer token.
//
// The identity fields travel with the token so that the access gate can
// rebuild the caller without a database round trip.
type AuthClaims struct {
	jwt.RegisteredClaims

	Email    string `json:"email"`
	Username string `json:"username"`
	UserID   string `json:"userid"`
}

// TokenService issues and verifies HS256 bearer tokens.
//
// The secret is fixed at construction and never mutated, so a single
// instance is safe for concurrent use.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// TokenOption customises a [TokenService].
type TokenOption func(*TokenService)

// WithClock overrides the time source used for iat/exp and for verification.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a new TokenService keyed by secret.
func NewTokenService(secret, issuer string, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: token secret must not be empty")
	}

	service := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Issue mints a signed token for identity that expires after timeToLive.
func (service *TokenService) Issue(identity Identity, timeToLive time.Duration) (string, error) {
	if timeToLive <= 0 {
		return "", fmt.Errorf("sec: token ttl must be positive, got %s", timeToLive)
	}

	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Email:    identity.Email,
		Username: identity.Username,
		UserID:   identity.UserID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a token string and
// returns its claims. It performs no I/O.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{},
		func(token *jwt.Token) (any, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Reject non-canonical base64 so every altered signature character fails.
		jwt.WithStrictDecoding(),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
