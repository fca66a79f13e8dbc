// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the platform.

Categories:

  - Server Timing: HTTP server timeouts.
  - Rate Limiting: token bucket sizing and client eviction.
  - Catalogue: list sizes, upload limits and storage layout.
  - Cache: page names used for response caching and invalidation.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "readverse"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds the whole request, including every store and
	// storage round trip of an upsert.
	GlobalRequestTimeout = 60 * time.Second

	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS      = 50.0
	DefaultRateLimitBurst    = 100
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # Catalogue

const (
	// ContentListDefaultLimit is used when a list request carries no limit.
	ContentListDefaultLimit = 18

	// ContentListMaxLimit caps client supplied limits.
	ContentListMaxLimit = 100

	// MaxImageSizeBytes is the decoded size limit of one submitted image (4.6 MB).
	MaxImageSizeBytes = 4_600_000

	// MaxFormMemory is the in-memory budget for multipart form parsing.
	MaxFormMemory = 32 << 20

	// MaxFormImages is how many full-size images one urlencoded submission
	// can carry (thumbnail, poster and gallery together).
	MaxFormImages = 10

	// MaxURLEncodedFormBytes bounds an urlencoded body. Each image is counted
	// as base64 (4/3) with room for percent-encoding of '+', '/' and '=' (x2).
	MaxURLEncodedFormBytes = MaxFormImages*(MaxImageSizeBytes*4/3)*2 + 1<<20

	// CommentPageSize is the number of root threads per comment page.
	CommentPageSize = 10

	// CommentRootParent is the parent sentinel of top-level comments.
	CommentRootParent = "root"
)

// # Object Storage Layout

const (
	StorageContentRoot    = "Content"
	StorageThumbnailName  = "thumbnail"
	StoragePosterName     = "poster"
	StorageGalleryFolder  = "imagesAndWallpapers"
	StorageDefaultBaseURL = "memory://readverse"
)

// # Cache

const (
	// PageAdminContent is the cached admin content listing.
	PageAdminContent = "/admin/content"

	// PageContentList is the cached public content lists.
	PageContentList = "/contents"

	// RedisPrefixPage namespaces page cache keys.
	RedisPrefixPage = "page:"
)

// # JSON Field Identifiers

const (
	FieldError  = "error"
	FieldCode   = "code"
	FieldStatus = "status"
	FieldChecks = "checks"
)
