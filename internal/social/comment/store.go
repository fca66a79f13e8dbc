// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/taibuivan/readverse/pkg/pagination"
)

// Repository persists comments. Missing records yield [dberr.ErrNotFound].
type Repository interface {
	Create(context context.Context, comment *Comment) error
	FindByID(context context.Context, id string) (*Comment, error)

	// Update overwrites message, the edited/reported/deleted flags and
	// updatedAt of the record with comment.ID.
	Update(context context.Context, comment *Comment) error

	// ListRoots returns one page of the thread's root comments.
	ListRoots(context context.Context, thread Thread, sortKey SortKey, params pagination.Params) ([]*Comment, error)

	// ListReplies returns the non-root comments of the trees headed by rootIDs.
	ListReplies(context context.Context, rootIDs []string) ([]*Comment, error)

	// Count returns the number of root comments and of all comments.
	Count(context context.Context, thread Thread) (roots int, total int, err error)
}
