// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/shophub/pkg/pagination"
)

// invalidateBatch is the SCAN page size used when dropping cached pages.
const invalidateBatch = 100

/*
RedisPageCache implements [PageCache] with JSON values.

Keys under keyPrefix:
  - generation: counter bumped by every Invalidate
  - page:<generation>:<page>:<limit>: one cached listing page
*/
type RedisPageCache[T any] struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisPageCache creates a Redis-backed page cache.
func NewRedisPageCache[T any](client *redis.Client, keyPrefix string, ttl time.Duration) *RedisPageCache[T] {
	return &RedisPageCache[T]{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (cache *RedisPageCache[T]) generationKey() string {
	return cache.keyPrefix + "generation"
}

func (cache *RedisPageCache[T]) pageKey(generation int64, params pagination.Params) string {
	return cache.keyPrefix + "page:" + strconv.FormatInt(generation, 10) + ":" + params.Key()
}

/*
Load returns the cached page for params in the current generation, or a nil
page when absent. A missing counter is generation 0.
*/
func (cache *RedisPageCache[T]) Load(context context.Context, params pagination.Params) (*Page[T], int64, error) {
	generation, err := cache.client.Get(context, cache.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("redis_page_cache_generation_failed: %w", err)
	}

	raw, err := cache.client.Get(context, cache.pageKey(generation, params)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, generation, nil
		}
		return nil, 0, fmt.Errorf("redis_page_cache_get_failed: %w", err)
	}

	page := &Page[T]{}
	if err := json.Unmarshal(raw, page); err != nil {
		return nil, 0, fmt.Errorf("redis_page_cache_unmarshal_failed: %w", err)
	}
	return page, generation, nil
}

/*
Save stores page for params under generation with the configured TTL.
A page from a superseded generation is written but never read again.
*/
func (cache *RedisPageCache[T]) Save(context context.Context, params pagination.Params, generation int64, page *Page[T]) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("redis_page_cache_marshal_failed: %w", err)
	}
	if err := cache.client.Set(context, cache.pageKey(generation, params), data, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_page_cache_set_failed: %w", err)
	}
	return nil
}

/*
Invalidate bumps the generation, then deletes every cached page to free memory.
*/
func (cache *RedisPageCache[T]) Invalidate(context context.Context) error {
	if err := cache.client.Incr(context, cache.generationKey()).Err(); err != nil {
		return fmt.Errorf("redis_page_cache_incr_failed: %w", err)
	}

	iterator := cache.client.Scan(context, 0, cache.keyPrefix+"page:*", invalidateBatch).Iterator()

	var keys []string
	for iterator.Next(context) {
		keys = append(keys, iterator.Val())
	}
	if err := iterator.Err(); err != nil {
		return fmt.Errorf("redis_page_cache_scan_failed: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := cache.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_page_cache_del_failed: %w", err)
	}
	return nil
}
