// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagecache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	body      []byte
	expiresAt time.Time
}

type memoryPage struct {
	generation int64
	variants   map[string]memoryEntry
}

// Memory is a single-process cache used when REDIS_URL is empty.
type Memory struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	pages map[string]*memoryPage
}

// NewMemory creates an empty cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:   ttl,
		now:   time.Now,
		pages: make(map[string]*memoryPage),
	}
}

func (cache *Memory) Get(ctx context.Context, page, variant string) ([]byte, int64, bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	current := cache.page(page)
	entry, found := current.variants[variant]
	if !found {
		return nil, current.generation, false, nil
	}
	if cache.now().After(entry.expiresAt) {
		delete(current.variants, variant)
		return nil, current.generation, false, nil
	}
	return entry.body, current.generation, true, nil
}

// Set drops writes for a generation that Invalidate has already retired.
func (cache *Memory) Set(ctx context.Context, page, variant string, generation int64, body []byte) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	current := cache.page(page)
	if generation != current.generation {
		return nil
	}
	current.variants[variant] = memoryEntry{body: body, expiresAt: cache.now().Add(cache.ttl)}
	return nil
}

func (cache *Memory) Invalidate(ctx context.Context, page string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	current := cache.page(page)
	current.generation++
	clear(current.variants)
	return nil
}

// page returns the state of name, creating it on first use. Callers hold mu.
func (cache *Memory) page(name string) *memoryPage {
	current, found := cache.pages[name]
	if !found {
		current = &memoryPage{variants: make(map[string]memoryEntry)}
		cache.pages[name] = current
	}
	return current
}
