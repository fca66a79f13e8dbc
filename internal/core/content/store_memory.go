// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"cmp"
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/taibuivan/readverse/internal/platform/dberr"
	"github.com/taibuivan/readverse/pkg/pagination"
	"github.com/taibuivan/readverse/pkg/slice"
)

// MemoryRepository keeps contents in process memory (STORE_DRIVER=memory,
// tests). Insertion order is the default list order.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]Content
	order   []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]Content)}
}

func (repository *MemoryRepository) Create(context context.Context, content *Content) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.records[content.ID]; taken {
		return &dberr.DuplicateError{Key: "content_pkey"}
	}
	if repository.titleTaken(content.Title, content.ID) {
		return &dberr.DuplicateError{Key: "content_title_key"}
	}

	repository.records[content.ID] = clone(content)
	repository.order = append(repository.order, content.ID)
	return nil
}

func (repository *MemoryRepository) Update(context context.Context, content *Content) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, found := repository.records[content.ID]
	if !found {
		return dberr.ErrNotFound
	}
	if repository.titleTaken(content.Title, content.ID) {
		return &dberr.DuplicateError{Key: "content_title_key"}
	}

	update := clone(content)
	stored.Title = update.Title
	stored.Slug = update.Slug
	stored.Tags = update.Tags
	stored.Status = update.Status
	stored.GenreIDs = update.GenreIDs
	stored.Author = update.Author
	stored.Synonyms = update.Synonyms
	stored.Description = update.Description
	stored.Thumbnail = update.Thumbnail
	stored.Poster = update.Poster
	stored.ImagesAndWallpapers = update.ImagesAndWallpapers
	stored.UpdatedAt = update.UpdatedAt

	repository.records[content.ID] = stored
	return nil
}

func (repository *MemoryRepository) FindByID(context context.Context, id string) (*Content, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, found := repository.records[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	content := clone(&stored)
	return &content, nil
}

func (repository *MemoryRepository) FindByTitle(context context.Context, title string) (*Content, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, id := range repository.order {
		if stored := repository.records[id]; stored.Title == title {
			content := clone(&stored)
			return &content, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repository *MemoryRepository) List(context context.Context, query ListQuery) ([]*Summary, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	matched := make([]*Content, 0)
	for _, id := range repository.order {
		stored := repository.records[id]
		if matches(&stored, query.Match) {
			content := clone(&stored)
			matched = append(matched, &content)
		}
	}

	if len(query.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			return less(matched[i], matched[j], query.Sort)
		})
	}

	if query.Limit > 0 && len(matched) > query.Limit {
		matched = matched[:query.Limit]
	}

	summaries := make([]*Summary, 0, len(matched))
	for _, content := range matched {
		summaries = append(summaries, content.Summarize())
	}
	return summaries, nil
}

func (repository *MemoryRepository) ListPage(context context.Context, params pagination.Params) ([]*Summary, int, error) {
	all, err := repository.List(context, ListQuery{Sort: []SortKey{{Field: SortCreatedAt, Desc: true}}})
	if err != nil {
		return nil, 0, err
	}

	total := len(all)
	start := min(params.Offset(), total)
	end := min(start+params.Limit, total)
	return all[start:end], total, nil
}

// Seed stores contents as-is, counters and timestamps included.
func (repository *MemoryRepository) Seed(contents ...*Content) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, content := range contents {
		if _, exists := repository.records[content.ID]; !exists {
			repository.order = append(repository.order, content.ID)
		}
		repository.records[content.ID] = clone(content)
	}
}

func (repository *MemoryRepository) titleTaken(title, exceptID string) bool {
	for id, stored := range repository.records {
		if id != exceptID && stored.Title == title {
			return true
		}
	}
	return false
}

func matches(content *Content, match Match) bool {
	switch match.Kind {
	case MatchTags:
		return slice.Intersects(tagStrings(content.Tags), match.Values)
	case MatchStatus:
		return len(match.Values) > 0 && string(content.Status) == match.Values[0]
	case MatchGenres:
		return slice.Intersects(content.GenreIDs, match.Values)
	}
	return true
}

// less orders a before b under keys. A missing value compares lowest, as
// it does in MongoDB.
func less(a, b *Content, keys []SortKey) bool {
	for _, key := range keys {
		order := compareField(a, b, key.Field)
		if key.Desc {
			order = -order
		}
		if order != 0 {
			return order < 0
		}
	}
	return false
}

// compareField returns -1, 0 or 1 comparing a and b ascending.
func compareField(a, b *Content, field SortField) int {
	switch field {
	case SortRating:
		return cmp.Compare(a.Rating, b.Rating)
	case SortViews:
		return cmp.Compare(a.NoOfViews, b.NoOfViews)
	case SortSubscribers:
		return cmp.Compare(a.NoOfSubscribers, b.NoOfSubscribers)
	case SortCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortChaptersUpdatedOn:
		switch {
		case a.ChaptersUpdatedOn == nil && b.ChaptersUpdatedOn == nil:
			return 0
		case a.ChaptersUpdatedOn == nil:
			return -1
		case b.ChaptersUpdatedOn == nil:
			return 1
		}
		return a.ChaptersUpdatedOn.Compare(*b.ChaptersUpdatedOn)
	}
	return 0
}

func clone(content *Content) Content {
	copied := *content
	copied.Tags = slices.Clone(content.Tags)
	copied.GenreIDs = slices.Clone(content.GenreIDs)
	copied.Genres = slices.Clone(content.Genres)
	copied.Synonyms = slices.Clone(content.Synonyms)
	copied.ImagesAndWallpapers = slices.Clone(content.ImagesAndWallpapers)
	if content.ChaptersUpdatedOn != nil {
		updatedOn := *content.ChaptersUpdatedOn
		copied.ChaptersUpdatedOn = &updatedOn
	}
	return copied
}
