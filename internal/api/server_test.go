// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readverse/internal/core/content"
	"github.com/taibuivan/readverse/internal/core/genre"
	"github.com/taibuivan/readverse/internal/platform/blob"
	"github.com/taibuivan/readverse/internal/platform/config"
	"github.com/taibuivan/readverse/internal/platform/pagecache"
	"github.com/taibuivan/readverse/internal/platform/sec"
	"github.com/taibuivan/readverse/internal/social/comment"
)

// tokenVerifier accepts "<role>" or "<role>.<username>" as a bearer token.
type tokenVerifier struct{}

func (tokenVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	role, name, found := strings.Cut(token, ".")
	if !found {
		name = role
	}

	switch sec.UserRole(role) {
	case sec.RoleAdmin, sec.RoleModerator, sec.RoleMember:
		return &sec.AuthClaims{UserID: "user-" + name, Username: name, Role: role}, nil
	}
	return nil, errors.New("unknown token")
}

func newTestServer(t *testing.T, checks ...HealthCheck) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := pagecache.NewMemory(time.Minute)

	genres := genre.NewService(genre.NewMemoryRepository(), logger)
	contents := content.NewService(content.NewMemoryRepository(), genres, blob.NewMemory("http://cdn.test"), cache, logger, content.Options{})
	comments := comment.NewService(comment.NewMemoryRepository(), logger)

	liveness, readiness := NewHealthHandlers(checks, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "development"}
	server := NewServer(ctx, cfg, logger, tokenVerifier{}, Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Genre:     genre.NewHandler(genres),
		Content:   content.NewHandler(contents, cache),
		Comment:   comment.NewHandler(comments),
	})
	return server.Handler()
}

func serve(handler http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestServer_Health(t *testing.T) {
	handler := newTestServer(t)

	recorder := serve(handler, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestServer_ReadinessReportsFailedChecks(t *testing.T) {
	handler := newTestServer(t,
		HealthCheck{Name: "mongo", Ping: func(context.Context) error { return nil }},
		HealthCheck{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }},
	)

	recorder := serve(handler, http.MethodGet, "/ready", "", "")
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var envelope struct {
		Data struct {
			Status string        `json:"status"`
			Checks []checkResult `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "degraded", envelope.Data.Status)
	require.Len(t, envelope.Data.Checks, 2)
	assert.True(t, envelope.Data.Checks[0].IsOK)
	assert.False(t, envelope.Data.Checks[1].IsOK)
	assert.Equal(t, "connection refused", envelope.Data.Checks[1].Error)
}

func TestServer_ReadinessWithoutChecks(t *testing.T) {
	recorder := serve(newTestServer(t), http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ready"`)
}

func TestServer_AdminRoutesRequireAdmin(t *testing.T) {
	handler := newTestServer(t)
	body := `{"genre":"Horror"}`

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"invalid_token", "forged", http.StatusUnauthorized},
		{"member", "member", http.StatusForbidden},
		{"moderator", "moderator", http.StatusForbidden},
		{"admin", "admin", http.StatusCreated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := serve(handler, http.MethodPost, "/api/v1/admin/genres", tc.token, body)
			assert.Equal(t, tc.want, recorder.Code)
		})
	}

	recorder := serve(handler, http.MethodGet, "/api/v1/genres", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Horror")
}

func TestServer_ContentAndCommentRoutes(t *testing.T) {
	handler := newTestServer(t)

	assert.Equal(t, http.StatusOK, serve(handler, http.MethodGet, "/api/v1/contents", "", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(handler, http.MethodGet, "/api/v1/contents/missing", "", "").Code)

	recorder := serve(handler, http.MethodGet, "/api/v1/contents/c1/comments", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = serve(handler, http.MethodPost, "/api/v1/contents/c1/comments", "", `{"message":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = serve(handler, http.MethodPost, "/api/v1/contents/c1/comments", "member", `{"message":"hi"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created struct {
		Data comment.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, "c1", created.Data.ContentID)

	target := "/api/v1/comments/" + created.Data.ID
	assert.Equal(t, http.StatusUnauthorized, serve(handler, http.MethodDelete, target, "", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(handler, http.MethodDelete, target, "member.bob", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(handler, http.MethodDelete, target, "moderator", "").Code)
}

func TestServer_CORS(t *testing.T) {
	handler := newTestServer(t)

	request := httptest.NewRequest(http.MethodOptions, "/api/v1/genres", nil)
	request.Header.Set("Origin", "http://localhost:3000")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
}
