// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/readverse/internal/platform/apperr"
	"github.com/taibuivan/readverse/internal/platform/dberr"
	"github.com/taibuivan/readverse/pkg/slice"
	"github.com/taibuivan/readverse/pkg/uuid"
)

// # Service Layer

// Service implements genre creation and lookup.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a genre [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

/*
Create registers a new genre.

Description: The name is trimmed first. Uniqueness is checked up front and
enforced again by the store's unique index, so a concurrent insert of the same
name still reports the uniqueness message.

Parameters:
  - context: context.Context
  - name: string (Raw submitted name)

Returns:
  - *Genre: The persisted genre
  - error: Validation (empty), Conflict (duplicate) or the raw store error
*/
func (service *Service) Create(context context.Context, name string) (*Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.ValidationError(MsgEmpty, apperr.FieldError{Field: FieldName, Message: MsgEmpty})
	}

	_, err := service.repo.FindByName(context, name)
	switch {
	case err == nil:
		return nil, apperr.Conflict(MsgDuplicate)
	case !errors.Is(err, dberr.ErrNotFound):
		return nil, err
	}

	now := service.now().UTC()
	genre := &Genre{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}

	if err := service.repo.Create(context, genre); err != nil {
		if errors.Is(err, dberr.ErrDuplicate) {
			return nil, apperr.Conflict(MsgDuplicate)
		}
		return nil, err
	}

	service.logger.InfoContext(context, "genre_created",
		slog.String("genre_id", genre.ID),
		slog.String("name", genre.Name),
	)

	return genre, nil
}

// List returns every genre sorted by name.
func (service *Service) List(context context.Context) ([]*Genre, error) {
	return service.repo.List(context)
}

// IDsByNames resolves genre names to identifiers. Unknown names are skipped.
func (service *Service) IDsByNames(context context.Context, names []string) ([]string, error) {
	names = slice.Unique(names)
	if len(names) == 0 {
		return []string{}, nil
	}

	genres, err := service.repo.FindByNames(context, names)
	if err != nil {
		return nil, err
	}
	return slice.Map(genres, func(genre *Genre) string { return genre.ID }), nil
}

// ByIDs returns the genres with the given identifiers. Unknown ids are skipped.
func (service *Service) ByIDs(context context.Context, ids []string) ([]*Genre, error) {
	ids = slice.Unique(ids)
	if len(ids) == 0 {
		return []*Genre{}, nil
	}
	return service.repo.FindByIDs(context, ids)
}
