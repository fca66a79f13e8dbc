// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/readverse/internal/core/genre"
	"github.com/taibuivan/readverse/internal/platform/apperr"
	"github.com/taibuivan/readverse/internal/platform/blob"
	"github.com/taibuivan/readverse/internal/platform/constants"
	"github.com/taibuivan/readverse/internal/platform/dberr"
	"github.com/taibuivan/readverse/internal/platform/pagecache"
	"github.com/taibuivan/readverse/pkg/pagination"
	"github.com/taibuivan/readverse/pkg/slice"
)

// # Service Layer

// GenreDirectory is the genre lookup the content service depends on.
type GenreDirectory interface {
	GenreResolver
	ByIDs(context context.Context, ids []string) ([]*genre.Genre, error)
}

// Options tunes a [Service].
type Options struct {
	// DefaultLimit is the list size used when a request names none.
	DefaultLimit int

	// ImageSchemes are the accepted schemes of submitted image URLs.
	// Empty means http and https.
	ImageSchemes []string
}

// Service implements content listing, lookup and the admin upsert.
type Service struct {
	repo         Repository
	genres       GenreDirectory
	storage      blob.Store
	cache        pagecache.Cache
	queries      QueryBuilder
	imageSchemes []string
	logger       *slog.Logger
	now          func() time.Time
}

// NewService constructs a content [Service].
func NewService(
	repo Repository,
	genres GenreDirectory,
	storage blob.Store,
	cache pagecache.Cache,
	logger *slog.Logger,
	options Options,
) *Service {
	return &Service{
		repo:         repo,
		genres:       genres,
		storage:      storage,
		cache:        cache,
		queries:      QueryBuilder{Genres: genres, DefaultLimit: options.DefaultLimit},
		imageSchemes: options.ImageSchemes,
		logger:       logger,
		now:          time.Now,
	}
}

/*
List returns the content summaries selected by filter.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - limit: int (0 for the default limit)

Returns:
  - []*Summary: Genres are expanded when filtering by genre
  - error: Raw store errors
*/
func (service *Service) List(context context.Context, filter ListFilter, limit int) ([]*Summary, error) {
	query, err := service.queries.Build(context, filter, limit)
	if err != nil {
		return nil, err
	}

	summaries, err := service.repo.List(context, query)
	if err != nil {
		return nil, err
	}

	if query.ExpandGenres {
		if err := service.expandSummaries(context, summaries); err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

// Get returns the full record with genres expanded.
func (service *Service) Get(context context.Context, id string) (*Content, error) {
	content, err := service.repo.FindByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Content")
		}
		return nil, err
	}

	names, err := service.genreNames(context, content.GenreIDs)
	if err != nil {
		return nil, err
	}
	content.Genres = genreRefs(content.GenreIDs, names)

	return content, nil
}

// AdminList returns one page of every content, newest first.
func (service *Service) AdminList(context context.Context, params pagination.Params) ([]*Summary, pagination.Meta, error) {
	summaries, total, err := service.repo.ListPage(context, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return summaries, pagination.NewMeta(params, total), nil
}

// # Genre Expansion

func (service *Service) expandSummaries(context context.Context, summaries []*Summary) error {
	var ids []string
	for _, summary := range summaries {
		ids = append(ids, summary.GenreIDs...)
	}

	names, err := service.genreNames(context, ids)
	if err != nil {
		return err
	}

	for _, summary := range summaries {
		summary.Genres = genreRefs(summary.GenreIDs, names)
	}
	return nil
}

func (service *Service) genreNames(context context.Context, ids []string) (map[string]string, error) {
	genres, err := service.genres.ByIDs(context, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(genres))
	for _, entry := range genres {
		names[entry.ID] = entry.Name
	}
	return names, nil
}

// checkGenres fails validation when any id names no genre.
func (service *Service) checkGenres(context context.Context, ids []string) error {
	names, err := service.genreNames(context, ids)
	if err != nil {
		return err
	}

	unknown := slice.Filter(ids, func(id string) bool { _, found := names[id]; return !found })
	if len(unknown) > 0 {
		message := "Unknown genre " + unknown[0]
		return apperr.ValidationError(message, apperr.FieldError{Field: FieldGenres, Message: message})
	}
	return nil
}

// genreRefs keeps the order of ids and skips ids without a genre.
func genreRefs(ids []string, names map[string]string) []GenreRef {
	refs := make([]GenreRef, 0, len(ids))
	for _, id := range ids {
		if name, found := names[id]; found {
			refs = append(refs, GenreRef{ID: id, Name: name})
		}
	}
	return refs
}

// # Cache

// invalidateLists drops the cached content listings after a write. A cache
// failure is logged and does not fail the write.
func (service *Service) invalidateLists(context context.Context) {
	for _, page := range []string{constants.PageAdminContent, constants.PageContentList} {
		if err := service.cache.Invalidate(context, page); err != nil {
			service.logger.WarnContext(context, "page_cache_invalidate_failed",
				slog.String("page", page),
				slog.Any("error", err),
			)
		}
	}
}
