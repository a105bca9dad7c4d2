// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/shophub/internal/platform/sec"
)

func newTestHasher(t *testing.T, workers int) *sec.Hasher {
	t.Helper()
	hasher, err := sec.NewHasher(bcrypt.MinCost, workers)
	require.NoError(t, err)
	return hasher
}

/*
TestHasher_RoundTrip verifies hash/verify for matching and mismatching input.
*/
func TestHasher_RoundTrip(t *testing.T) {
	hasher := newTestHasher(t, 2)
	ctx := context.Background()

	hash, err := hasher.Hash(ctx, "correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	ok, err := hasher.Verify(ctx, "correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	// Mismatch is a normal false, not an error.
	ok, err = hasher.Verify(ctx, "battery staple", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

/*
TestHasher_SaltIsRandom verifies that equal inputs hash to different outputs.
*/
func TestHasher_SaltIsRandom(t *testing.T) {
	hasher := newTestHasher(t, 1)
	ctx := context.Background()

	first, err := hasher.Hash(ctx, "same-password")
	require.NoError(t, err)
	second, err := hasher.Hash(ctx, "same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestHasher_UsesConfiguredCost checks the cost embedded in the output.
*/
func TestHasher_UsesConfiguredCost(t *testing.T) {
	hasher, err := sec.NewHasher(bcrypt.MinCost+1, 1)
	require.NoError(t, err)

	hash, err := hasher.Hash(context.Background(), "pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

/*
TestHasher_InvalidHashFormat distinguishes corrupted hashes from mismatches.
*/
func TestHasher_InvalidHashFormat(t *testing.T) {
	hasher := newTestHasher(t, 1)
	ctx := context.Background()

	valid, err := hasher.Hash(ctx, "pw")
	require.NoError(t, err)

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"truncated", valid[:20]},
		{"bad_prefix", "x" + valid[1:]},
		{"not_bcrypt", strings.Repeat("a", 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := hasher.Verify(ctx, "pw", tt.hash)
			assert.False(t, ok)
			assert.ErrorIs(t, err, sec.ErrInvalidHashFormat)
		})
	}
}

/*
TestHasher_PasswordTooLong surfaces bcrypt's input limit.
*/
func TestHasher_PasswordTooLong(t *testing.T) {
	hasher := newTestHasher(t, 1)

	_, err := hasher.Hash(context.Background(), strings.Repeat("p", 73))
	assert.ErrorIs(t, err, sec.ErrPasswordTooLong)
}

/*
TestNewHasher_RejectsBadSettings validates constructor arguments.
*/
func TestNewHasher_RejectsBadSettings(t *testing.T) {
	_, err := sec.NewHasher(bcrypt.MinCost-1, 1)
	assert.Error(t, err)

	_, err = sec.NewHasher(bcrypt.MaxCost+1, 1)
	assert.Error(t, err)

	_, err = sec.NewHasher(sec.DefaultCost, 0)
	assert.Error(t, err)
}

/*
TestHasher_ContextCancelledWhileQueued verifies a queued caller gives up on cancellation.
*/
func TestHasher_ContextCancelledWhileQueued(t *testing.T) {
	hasher, err := sec.NewHasher(12, 1)
	require.NoError(t, err)

	// Occupy the only slot with a slow hash.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = hasher.Hash(context.Background(), "slow")
	}()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err = hasher.Hash(ctx, "queued")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	wg.Wait()
}

/*
TestHasher_ConcurrentUse runs more callers than slots.
*/
func TestHasher_ConcurrentUse(t *testing.T) {
	hasher := newTestHasher(t, 2)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := hasher.Hash(ctx, "pw")
			assert.NoError(t, err)
			ok, err := hasher.Verify(ctx, "pw", hash)
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}

/*
TestHasher_VerifyRejectsLongPlaintext keeps a longer password from matching
the hash of its first 72 bytes.
*/
func TestHasher_VerifyRejectsLongPlaintext(t *testing.T) {
	hasher := newTestHasher(t, 1)
	ctx := context.Background()

	password := strings.Repeat("p", sec.MaxPasswordBytes)
	hash, err := hasher.Hash(ctx, password)
	require.NoError(t, err)

	ok, err := hasher.Verify(ctx, password, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify(ctx, password+"EXTRA", hash)
	assert.False(t, ok)
	assert.ErrorIs(t, err, sec.ErrPasswordTooLong)
}
