// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import "context"

// Repository persists genres. Implementations return [dberr.ErrNotFound] for
// missing records and a [dberr.DuplicateError] on a name collision.
type Repository interface {
	Create(context context.Context, genre *Genre) error
	List(context context.Context) ([]*Genre, error)
	FindByName(context context.Context, name string) (*Genre, error)

	// FindByNames returns the genres whose name is in names, in any order.
	FindByNames(context context.Context, names []string) ([]*Genre, error)

	// FindByIDs returns the genres whose id is in ids, in any order.
	FindByIDs(context context.Context, ids []string) ([]*Genre, error)
}
