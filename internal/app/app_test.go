// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readverse/internal/core/content"
	"github.com/taibuivan/readverse/internal/platform/blob"
	"github.com/taibuivan/readverse/internal/platform/config"
	"github.com/taibuivan/readverse/internal/platform/pagecache"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StoreDriver:             config.StoreMemory,
		StorageDriver:           config.StorageMemory,
		PageCacheTTL:            time.Minute,
		ContentListDefaultLimit: 18,
	}
}

func TestOpen_MemoryBackends(t *testing.T) {
	cfg := memoryConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	backends, err := Open(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer backends.Close()

	assert.IsType(t, &blob.Memory{}, backends.Storage)
	assert.IsType(t, &pagecache.Memory{}, backends.Cache)
	assert.Empty(t, backends.Checks)

	services := backends.Services(cfg, logger)
	genre, err := services.Genres.Create(context.Background(), "Action")
	require.NoError(t, err)

	summaries, err := services.Contents.List(context.Background(), content.ListFilter{FilterBy: content.FilterByGenres, Genres: []string{genre.Name}}, 0)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestImageSchemes(t *testing.T) {
	cfg := memoryConfig()
	assert.Contains(t, imageSchemes(cfg), blob.MemoryScheme)

	cfg.StorageDriver = config.StorageS3
	assert.Equal(t, []string{"http", "https"}, imageSchemes(cfg))
}

func TestClose_ReverseOrder(t *testing.T) {
	var order []string
	backends := &Backends{closers: []func(){
		func() { order = append(order, "store") },
		func() { order = append(order, "cache") },
	}}

	backends.Close()
	backends.Close()

	assert.Equal(t, []string{"cache", "store"}, order)
}
