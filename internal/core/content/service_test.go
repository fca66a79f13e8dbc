// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readverse/internal/platform/apperr"
	"github.com/taibuivan/readverse/pkg/pagination"
)

func TestService_List_ExpandsGenresWhenFilteringByGenre(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	action, err := f.genres.Create(ctx, "Action")
	require.NoError(t, err)
	drama, err := f.genres.Create(ctx, "Drama")
	require.NoError(t, err)

	f.repo.Seed(
		&Content{ID: "1", Title: "One", Status: StatusOngoing, GenreIDs: []string{action.ID, drama.ID}},
		&Content{ID: "2", Title: "Two", Status: StatusOngoing, GenreIDs: []string{drama.ID}},
		&Content{ID: "3", Title: "Three", Status: StatusOngoing},
	)

	summaries, err := f.service.List(ctx, ListFilter{FilterBy: FilterByGenres, Genres: []string{"Action"}}, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, []GenreRef{{ID: action.ID, Name: "Action"}, {ID: drama.ID, Name: "Drama"}}, summaries[0].Genres)

	summaries, err = f.service.List(ctx, ListFilter{FilterBy: FilterByStatus, Status: StatusOngoing}, 2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Nil(t, summaries[0].Genres, "other filters keep genre ids only")

	summaries, err = f.service.List(ctx, ListFilter{FilterBy: FilterByGenres, Genres: []string{"Horror"}}, 0)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	fantasy, err := f.genres.Create(ctx, "Fantasy")
	require.NoError(t, err)
	f.repo.Seed(&Content{ID: "1", Title: "One", Status: StatusOngoing, GenreIDs: []string{fantasy.ID, "removed"}})

	content, err := f.service.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []GenreRef{{ID: fantasy.ID, Name: "Fantasy"}}, content.Genres)

	_, err = f.service.Get(ctx, "2")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

func TestService_AdminList(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"a", "b", "c"} {
		f.repo.Seed(&Content{ID: title, Title: title, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}

	summaries, meta, err := f.service.AdminList(context.Background(), pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, pagination.Meta{Page: 1, Limit: 2, Total: 3, TotalPages: 2}, meta)
	require.Len(t, summaries, 2)
	assert.Equal(t, "c", summaries[0].ID)
}
