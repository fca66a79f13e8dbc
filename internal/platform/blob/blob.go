// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blob stores image objects under slash separated keys and exposes them
through public URLs.

Keys are grouped into folders by their "/" separated prefix. Two folder
operations are provided and they differ in depth on purpose:

  - Move relocates the direct children of a folder only. Nested folders have
    to be moved with their own call.
  - DeleteFolder removes every object below the prefix, at any depth.
*/
package blob

import (
	"context"
	"net/url"
	"strings"
)

// Store is the object storage contract used by the catalogue.
type Store interface {
	// Upload writes data at key and returns its public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Move relocates the direct children of oldPrefix under newPrefix and
	// returns the old URL to new URL mapping of every moved object.
	Move(ctx context.Context, oldPrefix, newPrefix string) (map[string]string, error)

	// DeleteFolder removes every object below prefix.
	DeleteFolder(ctx context.Context, prefix string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// Join builds a key from segments, dropping empty ones.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.Trim(segment, "/")
		if segment != "" {
			parts = append(parts, segment)
		}
	}
	return strings.Join(parts, "/")
}

// folder normalizes prefix into the "a/b/" form used for listing.
func folder(prefix string) string {
	trimmed := strings.Trim(prefix, "/")
	if trimmed == "" {
		return ""
	}
	return trimmed + "/"
}

// isDirectChild reports whether key sits directly in dir (a folder() value).
func isDirectChild(key, dir string) bool {
	rest, found := strings.CutPrefix(key, dir)
	return found && rest != "" && !strings.Contains(rest, "/")
}

// escapeKey percent-encodes each key segment for use in URLs and copy sources.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func unescapeSegment(segment string) (string, error) {
	return url.PathUnescape(segment)
}

// PublicURL joins a base URL and a key.
func PublicURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + escapeKey(key)
}
