// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// MaxPasswordBytes is bcrypt's input limit. Longer input would be truncated.
const MaxPasswordBytes = 72

var (
	// ErrInvalidHashFormat is returned by [Hasher.Verify] when the stored hash is
	// truncated or corrupted. It is distinct from a password mismatch.
	ErrInvalidHashFormat = errors.New("sec: invalid password hash format")

	// ErrPasswordTooLong is returned when the plaintext exceeds bcrypt's 72-byte input limit.
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

// Hasher hashes and verifies passwords with bcrypt.
//
// bcrypt is deliberately slow, so every call first acquires one of a fixed
// number of worker slots. Under load, excess callers queue on the semaphore
// (honouring their context) instead of saturating every CPU.
type Hasher struct {
	cost  int
	slots *semaphore.Weighted
}

// NewHasher creates a [Hasher] with the given bcrypt cost and worker count.
func NewHasher(cost, workers int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("sec: bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if workers < 1 {
		return nil, fmt.Errorf("sec: hash workers must be positive, got %d", workers)
	}

	return &Hasher{
		cost:  cost,
		slots: semaphore.NewWeighted(int64(workers)),
	}, nil
}

// Hash returns a salted bcrypt hash of plaintext. Two calls with the same
// input yield different outputs.
func (hasher *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	if err := hasher.slots.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("sec: hash slot unavailable: %w", err)
	}
	defer hasher.slots.Release(1)

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify reports whether plaintext matches hashedValue.
//
// A mismatch is (false, nil). A malformed hashedValue yields [ErrInvalidHashFormat].
// Plaintext over [MaxPasswordBytes] yields [ErrPasswordTooLong], since its
// truncated prefix could otherwise match.
func (hasher *Hasher) Verify(ctx context.Context, plaintext, hashedValue string) (bool, error) {
	if len(plaintext) > MaxPasswordBytes {
		return false, ErrPasswordTooLong
	}

	if err := hasher.slots.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("sec: hash slot unavailable: %w", err)
	}
	defer hasher.slots.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hashedValue), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrInvalidHashFormat, err)
	}
}
