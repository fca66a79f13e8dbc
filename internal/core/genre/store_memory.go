// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/readverse/internal/platform/dberr"
)

// MemoryRepository keeps genres in process memory (STORE_DRIVER=memory, tests).
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]Genre
	byName map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[string]Genre),
		byName: make(map[string]string),
	}
}

func (repository *MemoryRepository) Create(context context.Context, genre *Genre) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.byName[genre.Name]; taken {
		return &dberr.DuplicateError{Key: "genre_name_key"}
	}
	if _, taken := repository.byID[genre.ID]; taken {
		return &dberr.DuplicateError{Key: "genre_pkey"}
	}

	repository.byID[genre.ID] = *genre
	repository.byName[genre.Name] = genre.ID
	return nil
}

func (repository *MemoryRepository) List(context context.Context) ([]*Genre, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	genres := make([]*Genre, 0, len(repository.byID))
	for _, stored := range repository.byID {
		genre := stored
		genres = append(genres, &genre)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return genres, nil
}

func (repository *MemoryRepository) FindByName(context context.Context, name string) (*Genre, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	id, found := repository.byName[name]
	if !found {
		return nil, dberr.ErrNotFound
	}
	genre := repository.byID[id]
	return &genre, nil
}

func (repository *MemoryRepository) FindByNames(context context.Context, names []string) ([]*Genre, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	genres := make([]*Genre, 0, len(names))
	for _, name := range names {
		if id, found := repository.byName[name]; found {
			genre := repository.byID[id]
			genres = append(genres, &genre)
		}
	}
	return genres, nil
}

func (repository *MemoryRepository) FindByIDs(context context.Context, ids []string) ([]*Genre, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	genres := make([]*Genre, 0, len(ids))
	for _, id := range ids {
		if stored, found := repository.byID[id]; found {
			genre := stored
			genres = append(genres, &genre)
		}
	}
	return genres, nil
}
