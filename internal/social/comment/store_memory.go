// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/taibuivan/readverse/internal/platform/dberr"
	"github.com/taibuivan/readverse/pkg/pagination"
)

// MemoryRepository keeps comments in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]Comment
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]Comment)}
}

func (repository *MemoryRepository) Create(context context.Context, comment *Comment) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.records[comment.ID]; taken {
		return &dberr.DuplicateError{Key: "comment_pkey"}
	}
	repository.records[comment.ID] = detach(comment)
	return nil
}

func (repository *MemoryRepository) FindByID(context context.Context, id string) (*Comment, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, found := repository.records[id]
	if !found {
		return nil, dberr.ErrNotFound
	}
	return &stored, nil
}

func (repository *MemoryRepository) Update(context context.Context, comment *Comment) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, found := repository.records[comment.ID]
	if !found {
		return dberr.ErrNotFound
	}

	stored.Message = comment.Message
	stored.IsEdited = comment.IsEdited
	stored.IsReported = comment.IsReported
	stored.IsDeleted = comment.IsDeleted
	stored.UpdatedAt = comment.UpdatedAt

	repository.records[comment.ID] = stored
	return nil
}

func (repository *MemoryRepository) ListRoots(context context.Context, thread Thread, sortKey SortKey, params pagination.Params) ([]*Comment, error) {
	roots := repository.collect(thread, true)

	sort.SliceStable(roots, func(i, j int) bool {
		a, b := roots[i], roots[j]
		switch sortKey {
		case SortBest:
			if a.Score() != b.Score() {
				return a.Score() > b.Score()
			}
			return a.CreatedAt.After(b.CreatedAt)
		case SortOldest:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	start := min(params.Offset(), len(roots))
	end := min(start+params.Limit, len(roots))
	return roots[start:end], nil
}

func (repository *MemoryRepository) ListReplies(context context.Context, rootIDs []string) ([]*Comment, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	result := make([]*Comment, 0)
	for _, stored := range repository.records {
		if stored.IsRoot() || !slices.Contains(rootIDs, stored.RootID) {
			continue
		}
		comment := stored
		result = append(result, &comment)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (repository *MemoryRepository) Count(context context.Context, thread Thread) (int, int, error) {
	roots := len(repository.collect(thread, true))
	return roots, roots + len(repository.collect(thread, false)), nil
}

// collect returns copies of the thread's root comments, or of its replies.
// Ties are broken by id so results do not depend on map order.
func (repository *MemoryRepository) collect(thread Thread, roots bool) []*Comment {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	result := make([]*Comment, 0)
	for _, stored := range repository.records {
		if stored.ContentID != thread.ContentID || stored.ChapterID != thread.ChapterID || stored.IsRoot() != roots {
			continue
		}
		comment := stored
		result = append(result, &comment)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func detach(comment *Comment) Comment {
	copied := *comment
	copied.Replies = nil
	return copied
}
