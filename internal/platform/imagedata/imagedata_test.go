// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package imagedata_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readverse/internal/platform/constants"
	"github.com/taibuivan/readverse/internal/platform/imagedata"
)

func TestIsDataURI(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"data:image/png;base64,iVBORw0KGgo=", true},
		{"data:image/jpg;base64,/9j/4AAQ", true},
		{"data:image/svg+xml;base64,PHN2Zz4=", true},
		{"data:text/plain;base64,aGVsbG8=", false},
		{"data:image/png,raw", false},
		{"https://cdn.readverse.app/Content/A/thumbnail", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, imagedata.IsDataURI(tt.value))
		})
	}
}

func TestDecode(t *testing.T) {
	image, err := imagedata.Decode("data:image/jpg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", image.ContentType)
	assert.Equal(t, []byte("jpeg-bytes"), image.Data)
}

func TestDecode_Errors(t *testing.T) {
	_, err := imagedata.Decode("https://example.com/a.png")
	assert.ErrorIs(t, err, imagedata.ErrNotDataURI)

	_, err = imagedata.Decode("data:image/png;base64,@@@")
	assert.Error(t, err)

	oversized := strings.Repeat("A", base64.StdEncoding.EncodedLen(constants.MaxImageSizeBytes+1))
	_, err = imagedata.Decode("data:image/png;base64," + oversized)
	assert.ErrorIs(t, err, imagedata.ErrTooLarge)
}
