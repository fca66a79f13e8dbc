// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pagecache caches rendered list responses per named page.

A page (for example "/admin/content") owns many variants, one per query string.
Invalidate drops every variant of a page at once by bumping the page's
generation, so readers never see a response rendered before the last write.

Get reports the generation it looked at and Set stores under that generation.
A body rendered from a read that raced with a write is therefore stored under
a generation the write has already retired, and nobody reads it.
*/
package pagecache

import "context"

// Cache stores rendered bodies by page and variant.
type Cache interface {
	// Get returns the cached body, or found=false on a miss. generation is
	// the page generation the lookup used; pass it to Set after a miss.
	Get(ctx context.Context, page, variant string) (body []byte, generation int64, found bool, err error)

	// Set stores body under generation. A generation retired by Invalidate
	// makes the write a no-op for readers.
	Set(ctx context.Context, page, variant string, generation int64, body []byte) error

	// Invalidate makes every cached variant of page unreachable.
	Invalidate(ctx context.Context, page string) error
}
