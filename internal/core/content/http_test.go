// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readverse/internal/platform/blob"
	"github.com/taibuivan/readverse/internal/platform/respond"
)

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeForm(t *testing.T, recorder *httptest.ResponseRecorder) respond.FormState {
	t.Helper()

	var state respond.FormState
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &state))
	return state
}

func TestHandler_Upsert_FormSubmission(t *testing.T) {
	f := newFixture(t)
	router := NewHandler(f.service, f.cache).AdminRoutes()

	values := url.Values{
		FieldTitle:     {"Form Title"},
		FieldStatus:    {"Ongoing"},
		FieldTags:      {"FreeRead"},
		FieldThumbnail: {dataURI("t")},
		FieldPoster:    {dataURI("p")},
		FieldGallery:   {dataURI("a"), dataURI("b")},
	}
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	recorder := serve(router, request)
	require.Equal(t, http.StatusCreated, recorder.Code)

	state := decodeForm(t, recorder)
	assert.False(t, state.Error)
	assert.True(t, state.ResetForm)
	assert.Len(t, f.storage.Keys("Content/Form Title/imagesAndWallpapers"), 2)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	recorder = serve(router, request)
	state = decodeForm(t, recorder)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.True(t, state.Error)
	assert.Equal(t, MsgTitleDuplicate, state.ErrorMessage)
}

func TestHandler_Upsert_FormWithNearLimitImages(t *testing.T) {
	f := newFixture(t)
	router := NewHandler(f.service, f.cache).AdminRoutes()

	values := url.Values{
		FieldTitle:     {"Large Covers"},
		FieldStatus:    {"Ongoing"},
		FieldThumbnail: {dataURI(strings.Repeat("t", 4_000_000))},
		FieldPoster:    {dataURI(strings.Repeat("p", 4_000_000))},
	}
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	recorder := serve(router, request)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	data, _, found := f.storage.Get("Content/Large Covers/poster")
	require.True(t, found)
	assert.Len(t, data, 4_000_000)
}

func TestHandler_Upsert_JSONUpdate(t *testing.T) {
	f := newFixture(t)
	created := f.createWithImages(t, "A", 0)
	router := NewHandler(f.service, f.cache).AdminRoutes()

	payload := editPayload(created)
	payload.Description = "Updated"
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(string(body)))
	request.Header.Set("Content-Type", "application/json")

	recorder := serve(router, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	state := decodeForm(t, recorder)
	assert.False(t, state.Error)
	assert.False(t, state.ResetForm)
}

func TestHandler_List_CachedAndInvalidated(t *testing.T) {
	f := newFixture(t)
	f.repo.Seed(&Content{ID: "1", Title: "Cached", Tags: []Tag{TagFreeRead, TagWeeklyNovel}, Status: StatusOngoing})
	router := NewHandler(f.service, f.cache).Routes()

	list := func() []Summary {
		recorder := serve(router, httptest.NewRequest(http.MethodGet, "/?filterBy=tags&tags=FreeRead", nil))
		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data []Summary `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		return envelope.Data
	}

	require.Len(t, list(), 1)

	f.repo.Seed(&Content{ID: "2", Title: "Fresh", Tags: []Tag{TagFreeRead}, Status: StatusOngoing})
	assert.Len(t, list(), 1, "served from the page cache")

	f.createWithImages(t, "Third", 0)
	assert.Len(t, list(), 2, "cache dropped after a write")
}

// racingRepository runs afterRead once, right after the first List has read
// the store and before the handler caches what it read.
type racingRepository struct {
	*MemoryRepository
	afterRead func()
}

func (repository *racingRepository) List(ctx context.Context, query ListQuery) ([]*Summary, error) {
	summaries, err := repository.MemoryRepository.List(ctx, query)
	if hook := repository.afterRead; hook != nil {
		repository.afterRead = nil
		hook()
	}
	return summaries, err
}

func TestHandler_List_WriteDuringRenderIsNotCached(t *testing.T) {
	f := newFixture(t)
	repo := &racingRepository{MemoryRepository: f.repo}
	service := NewService(repo, f.genres, f.storage, f.cache, slog.New(slog.NewTextHandler(io.Discard, nil)), Options{
		ImageSchemes: []string{"http", "https", blob.MemoryScheme},
	})
	repo.afterRead = func() {
		_, err := service.Upsert(context.Background(), Payload{
			Title:     "Late",
			Status:    StatusOngoing,
			Thumbnail: dataURI("late-thumb"),
			Poster:    dataURI("late-poster"),
		})
		require.NoError(t, err)
	}
	router := NewHandler(service, f.cache).Routes()

	first := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.NotContains(t, first.Body.String(), "Late")

	second := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "Late")
}

func TestHandler_GetContent(t *testing.T) {
	f := newFixture(t)
	f.repo.Seed(&Content{ID: "1", Title: "One", Status: StatusOngoing})
	router := NewHandler(f.service, f.cache).Routes()

	recorder := serve(router, httptest.NewRequest(http.MethodGet, "/1", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"title":"One"`)

	recorder = serve(router, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
