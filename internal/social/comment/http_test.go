// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readverse/internal/platform/ctxutil"
	"github.com/taibuivan/readverse/internal/platform/sec"
)

func passThrough(next http.Handler) http.Handler { return next }

func newRouter(service *Service) chi.Router {
	handler := NewHandler(service)

	router := chi.NewRouter()
	router.Mount("/contents/{contentID}/comments", handler.ThreadRoutes(passThrough))
	router.Mount("/comments", handler.Routes())
	return router
}

func as(request *http.Request, claims *sec.AuthClaims) *http.Request {
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

func TestHandler_CreateAndList(t *testing.T) {
	service, _ := newTestService()
	router := newRouter(service)

	request := httptest.NewRequest(http.MethodPost, "/contents/c1/comments", strings.NewReader(`{"message":"Hello"}`))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, as(request, alice))
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/contents/c1/comments?sortKey=OLDEST", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var page Page
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	require.Len(t, page.Comments, 1)
	assert.Equal(t, "Hello", page.Comments[0].Message)
	assert.Equal(t, "c1", page.Comments[0].ContentID)
	assert.Equal(t, SortOldest, page.SortKey)
}

func TestHandler_RequiresCaller(t *testing.T) {
	service, _ := newTestService()
	router := newRouter(service)

	request := httptest.NewRequest(http.MethodPost, "/contents/c1/comments", strings.NewReader(`{"message":"Hello"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_DeleteAndReport(t *testing.T) {
	service, _ := newTestService()
	router := newRouter(service)

	comment, err := service.Create(context.Background(), alice, CreateInput{ContentID: "c1", Message: "Spam"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, as(httptest.NewRequest(http.MethodPost, "/comments/"+comment.ID+"/report", nil), bob))
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, as(httptest.NewRequest(http.MethodDelete, "/comments/"+comment.ID, nil), bob))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, as(httptest.NewRequest(http.MethodDelete, "/comments/"+comment.ID, nil), alice))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
