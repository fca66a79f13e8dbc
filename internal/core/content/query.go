// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"

	"github.com/taibuivan/readverse/internal/platform/constants"
)

// # List Request

// Recognised filterBy values.
const (
	FilterByTags   = "tags"
	FilterByGenres = "genres"
	FilterByStatus = "status"
)

// Recognised sortBy values.
const (
	SortByTrending     = "trending"
	SortByNew          = "new"
	SortByUpdatedToday = "updatedToday"
)

// ListFilter is the declarative list request. FilterBy selects which of Tags,
// Genres (names) or Status applies; the others are ignored.
type ListFilter struct {
	FilterBy string
	SortBy   string
	Tags     []Tag
	Genres   []string
	Status   Status
}

// # Backend-neutral Query

// MatchKind selects the record predicate of a [ListQuery].
type MatchKind int

const (
	// MatchAll matches every record.
	MatchAll MatchKind = iota

	// MatchTags matches records whose tags intersect Values. Empty Values
	// matches nothing.
	MatchTags

	// MatchStatus matches records whose status equals Values[0].
	MatchStatus

	// MatchGenres matches records whose genre ids intersect Values. Empty
	// Values matches nothing.
	MatchGenres
)

// Match is the predicate of a [ListQuery].
type Match struct {
	Kind   MatchKind
	Values []string
}

// SortField names a sortable attribute using the document field names.
type SortField string

const (
	SortRating            SortField = "rating"
	SortViews             SortField = "noOfViews"
	SortSubscribers       SortField = "noOfSubscribers"
	SortCreatedAt         SortField = "createdAt"
	SortChaptersUpdatedOn SortField = "chaptersUpdatedOn"
)

// SortKey is one ordering criterion. With Desc, records missing the field
// sort last.
type SortKey struct {
	Field SortField
	Desc  bool
}

// ListQuery is what every store backend translates into its native query.
// An empty Sort keeps the store's default order.
type ListQuery struct {
	Match        Match
	Sort         []SortKey
	Limit        int
	ExpandGenres bool
}

// # Query Builder

// GenreResolver resolves genre names to identifiers.
type GenreResolver interface {
	IDsByNames(context context.Context, names []string) ([]string, error)
}

// QueryBuilder turns a [ListFilter] into a [ListQuery].
type QueryBuilder struct {
	Genres       GenreResolver
	DefaultLimit int
}

/*
Build resolves filter and limit into a [ListQuery].

Description: Filters are mutually exclusive and selected by FilterBy.
Genre filters are resolved to identifiers through the [GenreResolver] first;
unknown names simply resolve to nothing. A limit of zero or less selects the
default limit; larger limits are capped.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - limit: int (0 when the caller supplied none)

Returns:
  - ListQuery: The backend-neutral query
  - error: Genre resolution failures
*/
func (builder QueryBuilder) Build(context context.Context, filter ListFilter, limit int) (ListQuery, error) {
	query := ListQuery{
		Sort:         sortKeys(filter.SortBy),
		Limit:        builder.limit(limit),
		ExpandGenres: filter.FilterBy == FilterByGenres,
	}

	switch filter.FilterBy {
	case FilterByTags:
		values := make([]string, 0, len(filter.Tags))
		for _, tag := range filter.Tags {
			values = append(values, string(tag))
		}
		query.Match = Match{Kind: MatchTags, Values: values}

	case FilterByStatus:
		query.Match = Match{Kind: MatchStatus, Values: []string{string(filter.Status)}}

	case FilterByGenres:
		ids, err := builder.Genres.IDsByNames(context, filter.Genres)
		if err != nil {
			return ListQuery{}, err
		}
		if ids == nil {
			ids = []string{}
		}
		query.Match = Match{Kind: MatchGenres, Values: ids}

	default:
		query.Match = Match{Kind: MatchAll}
	}

	return query, nil
}

func (builder QueryBuilder) limit(requested int) int {
	limit := requested
	if limit <= 0 {
		limit = builder.DefaultLimit
	}
	if limit <= 0 {
		limit = constants.ContentListDefaultLimit
	}
	return min(limit, constants.ContentListMaxLimit)
}

func sortKeys(sortBy string) []SortKey {
	switch sortBy {
	case SortByTrending:
		return []SortKey{
			{Field: SortRating, Desc: true},
			{Field: SortViews, Desc: true},
			{Field: SortSubscribers, Desc: true},
		}
	case SortByNew:
		return []SortKey{{Field: SortCreatedAt, Desc: true}}
	case SortByUpdatedToday:
		return []SortKey{{Field: SortChaptersUpdatedOn, Desc: true}}
	}
	return nil
}
