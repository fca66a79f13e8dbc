// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package imagedata recognises and decodes base64 image data URIs submitted by
// the CMS forms, e.g. "data:image/png;base64,iVBORw0KGgo...".
package imagedata

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/taibuivan/readverse/internal/platform/constants"
)

var (
	// ErrNotDataURI is returned by Decode for plain URLs and other strings.
	ErrNotDataURI = errors.New("imagedata: not a base64 image data URI")

	// ErrTooLarge is returned when the decoded image exceeds the size limit.
	ErrTooLarge = errors.New("imagedata: image exceeds the size limit")
)

var dataURIPattern = regexp.MustCompile(`^data:(image/(?:png|jpe?g|gif|webp|avif|svg\+xml));base64,`)

// Image is a decoded data URI payload.
type Image struct {
	ContentType string
	Data        []byte
}

// IsDataURI reports whether value is a base64 image payload rather than a URL.
func IsDataURI(value string) bool {
	return dataURIPattern.MatchString(value)
}

// Decode validates and decodes a data URI, enforcing [constants.MaxImageSizeBytes].
func Decode(value string) (Image, error) {
	match := dataURIPattern.FindStringSubmatch(value)
	if match == nil {
		return Image{}, ErrNotDataURI
	}

	payload := strings.TrimSpace(value[len(match[0]):])

	// Reject oversized payloads before allocating the decode buffer.
	if base64.StdEncoding.DecodedLen(len(payload)) > constants.MaxImageSizeBytes+2 {
		return Image{}, ErrTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("imagedata: invalid base64 payload: %w", err)
	}
	if len(data) == 0 {
		return Image{}, errors.New("imagedata: empty image payload")
	}
	if len(data) > constants.MaxImageSizeBytes {
		return Image{}, ErrTooLarge
	}

	return Image{ContentType: normalizeType(match[1]), Data: data}, nil
}

func normalizeType(contentType string) string {
	if contentType == "image/jpg" {
		return "image/jpeg"
	}
	return contentType
}
