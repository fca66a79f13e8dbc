// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"sort"
	"strings"

	"github.com/taibuivan/readverse/internal/platform/blob"
	"github.com/taibuivan/readverse/internal/platform/constants"
	"github.com/taibuivan/readverse/pkg/uuid"
)

// # Storage Layout
//
//	Content/<title>/thumbnail
//	Content/<title>/poster
//	Content/<title>/imagesAndWallpapers/<id>

// titleEscaper keeps a title a single key segment. "%" is escaped first so the
// mapping stays reversible.
var titleEscaper = strings.NewReplacer("%", "%25", "/", "%2F")

func folderKey(title string) string {
	return blob.Join(constants.StorageContentRoot, titleEscaper.Replace(title))
}

func thumbnailKey(title string) string {
	return blob.Join(folderKey(title), constants.StorageThumbnailName)
}

func posterKey(title string) string {
	return blob.Join(folderKey(title), constants.StoragePosterName)
}

func galleryFolderKey(title string) string {
	return blob.Join(folderKey(title), constants.StorageGalleryFolder)
}

func galleryKey(title string) string {
	return blob.Join(galleryFolderKey(title), uuid.New())
}

// remap returns the moved location of url, or url itself when it did not move.
func remap(url string, moved map[string]string) string {
	if next, found := moved[url]; found {
		return next
	}
	return url
}

// movedGallery lists every moved gallery URL. URLs keep the order they had in
// previous; objects that were not listed there follow, sorted.
func movedGallery(previous []string, moved map[string]string) []string {
	result := make([]string, 0, len(moved))
	listed := make(map[string]bool, len(previous))

	for _, url := range previous {
		if next, found := moved[url]; found && !listed[url] {
			result = append(result, next)
			listed[url] = true
		}
	}

	rest := make([]string, 0, len(moved)-len(listed))
	for old, next := range moved {
		if !listed[old] {
			rest = append(rest, next)
		}
	}
	sort.Strings(rest)

	return append(result, rest...)
}
