// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/shophub/internal/platform/apperr"
	"github.com/taibuivan/shophub/internal/users/auth"
	"github.com/taibuivan/shophub/pkg/pagination"
)

// fakeUserRepository is an in-memory [auth.UserRepository] keyed by email.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*auth.User
	err   error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	if _, exists := f.users[user.Email]; exists {
		return apperr.Duplicate("User already exists")
	}
	clone := *user
	f.users[user.Email] = &clone
	return nil
}

func (f *fakeUserRepository) DeleteByEmail(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.users[email]; !exists {
		return apperr.NotFound("User")
	}
	delete(f.users, email)
	return nil
}

func (f *fakeUserRepository) List(_ context.Context, params pagination.Params) ([]*auth.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]*auth.User, 0, len(f.users))
	for _, user := range f.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	start := min(params.Offset(), len(all))
	end := min(start+params.Limit, len(all))
	return all[start:end], len(all), nil
}
