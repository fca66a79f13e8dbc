// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"

	"github.com/taibuivan/readverse/pkg/pagination"
)

// Repository persists contents. Implementations return [dberr.ErrNotFound]
// for missing records and a [dberr.DuplicateError] on a title collision.
type Repository interface {
	Create(context context.Context, content *Content) error

	// Update overwrites the editable fields of the record with content.ID:
	// title, slug, tags, status, genres, author, synonyms, description,
	// thumbnail, poster, gallery and updatedAt. Counters are left untouched.
	Update(context context.Context, content *Content) error

	FindByID(context context.Context, id string) (*Content, error)
	FindByTitle(context context.Context, title string) (*Content, error)

	// List runs a [ListQuery] and returns summaries with genre ids only.
	List(context context.Context, query ListQuery) ([]*Summary, error)

	// ListPage returns every content, newest first, with the total count.
	ListPage(context context.Context, params pagination.Params) ([]*Summary, int, error)
}
