// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/readverse/internal/platform/constants"
)

// Redis shares the cache between API replicas.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis wraps client. Entries expire after ttl.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (cache *Redis) Get(ctx context.Context, page, variant string) ([]byte, int64, bool, error) {
	generation, err := cache.generation(ctx, page)
	if err != nil {
		return nil, 0, false, err
	}

	body, err := cache.client.Get(ctx, entryKey(page, generation, variant)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, false, nil
	}
	if err != nil {
		return nil, generation, false, fmt.Errorf("pagecache: get %s: %w", page, err)
	}

	return body, generation, true, nil
}

// Set writes under the generation the caller read. Entries of a retired
// generation are never read again and expire by TTL.
func (cache *Redis) Set(ctx context.Context, page, variant string, generation int64, body []byte) error {
	if err := cache.client.Set(ctx, entryKey(page, generation, variant), body, cache.ttl).Err(); err != nil {
		return fmt.Errorf("pagecache: set %s: %w", page, err)
	}
	return nil
}

func (cache *Redis) Invalidate(ctx context.Context, page string) error {
	if err := cache.client.Incr(ctx, generationKey(page)).Err(); err != nil {
		return fmt.Errorf("pagecache: invalidate %s: %w", page, err)
	}
	return nil
}

func (cache *Redis) generation(ctx context.Context, page string) (int64, error) {
	generation, err := cache.client.Get(ctx, generationKey(page)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("pagecache: generation %s: %w", page, err)
	}
	return generation, nil
}

func generationKey(page string) string {
	return constants.RedisPrefixPage + page + ":gen"
}

func entryKey(page string, generation int64, variant string) string {
	return fmt.Sprintf("%s%s:%d:%s", constants.RedisPrefixPage, page, generation, variant)
}
