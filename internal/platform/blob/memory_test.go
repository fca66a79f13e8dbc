// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blob_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readverse/internal/platform/blob"
)

func TestJoinAndPublicURL(t *testing.T) {
	assert.Equal(t, "Content/A/thumbnail", blob.Join("Content", "/A/", "", "thumbnail"))
	assert.Equal(t,
		"memory://readverse/Content/Solo%20Leveling/poster",
		blob.PublicURL("memory://readverse/", "Content/Solo Leveling/poster"),
	)
}

func TestMemory_UploadAndGet(t *testing.T) {
	store := blob.NewMemory("memory://readverse")

	url, err := store.Upload(context.Background(), "Content/A/thumbnail", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "memory://readverse/Content/A/thumbnail", url)

	data, contentType, found := store.Get("Content/A/thumbnail")
	require.True(t, found)
	assert.Equal(t, []byte("png"), data)
	assert.Equal(t, "image/png", contentType)

	key, ok := store.KeyOf(url)
	require.True(t, ok)
	assert.Equal(t, "Content/A/thumbnail", key)
}

func TestMemory_MoveDirectChildrenOnly(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory("memory://readverse")

	for _, key := range []string{"Content/A/thumbnail", "Content/A/poster", "Content/A/imagesAndWallpapers/1", "Content/AB/thumbnail"} {
		_, err := store.Upload(ctx, key, []byte(key), "image/png")
		require.NoError(t, err)
	}

	moved, err := store.Move(ctx, "Content/A", "Content/B")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"memory://readverse/Content/A/thumbnail": "memory://readverse/Content/B/thumbnail",
		"memory://readverse/Content/A/poster":    "memory://readverse/Content/B/poster",
	}, moved)
	assert.Equal(t, []string{"Content/A/imagesAndWallpapers/1"}, store.Keys("Content/A"))
	assert.Equal(t, []string{"Content/AB/thumbnail"}, store.Keys("Content/AB"))

	moved, err = store.Move(ctx, "Content/A/imagesAndWallpapers", "Content/B/imagesAndWallpapers")
	require.NoError(t, err)
	assert.Len(t, moved, 1)
	assert.Empty(t, store.Keys("Content/A"))
	assert.Len(t, store.Keys("Content/B"), 3)
}

func TestMemory_DeleteFolderIsRecursive(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory("memory://readverse")

	for _, key := range []string{"Content/A/imagesAndWallpapers/1", "Content/A/imagesAndWallpapers/2", "Content/A/poster"} {
		_, err := store.Upload(ctx, key, nil, "")
		require.NoError(t, err)
	}

	require.NoError(t, store.DeleteFolder(ctx, "Content/A/imagesAndWallpapers"))
	assert.Equal(t, []string{"Content/A/poster"}, store.Keys("Content/A"))
	assert.Equal(t, []string{
		"upload Content/A/imagesAndWallpapers/1",
		"upload Content/A/imagesAndWallpapers/2",
		"upload Content/A/poster",
		"delete Content/A/imagesAndWallpapers",
	}, store.Calls())
}

func TestMemory_FailOn(t *testing.T) {
	store := blob.NewMemory("memory://readverse")
	boom := errors.New("bucket unavailable")
	store.FailOn = func(op, key string) error {
		if op == "upload" {
			return boom
		}
		return nil
	}

	_, err := store.Upload(context.Background(), "Content/A/poster", []byte("x"), "image/png")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.Keys(""))
}
