// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readverse/internal/platform/apperr"
)

func dataURI(data string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(data))
}

func validPayload() Payload {
	return Payload{
		Title:     "Omniscient Reader",
		Status:    StatusOngoing,
		Tags:      []Tag{TagFreeRead},
		Thumbnail: dataURI("thumb"),
		Poster:    "https://cdn.readverse.app/Content/Omniscient%20Reader/poster",
	}
}

func failedFields(t *testing.T, err error) []string {
	t.Helper()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Equal(t, "VALIDATION_ERROR", ae.Code)

	fields := make([]string, 0, len(ae.Details))
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	return fields
}

func TestPayloadFromForm(t *testing.T) {
	values := url.Values{
		FieldContentID: {" 42 "},
		FieldTitle:     {"  Solo Leveling "},
		FieldTags:      {"FreeRead,WeeklyNovel", "FreeRead"},
		FieldStatus:    {"Completed"},
		FieldGenres:    {"g1", "g2"},
		FieldSynonyms:  {"Only I Level Up, , Na Honjaman Level Up"},
		FieldThumbnail: {dataURI("t")},
		FieldGallery:   {dataURI("a"), dataURI("b")},
	}

	payload := PayloadFromForm(values)
	payload.Normalize()

	assert.Equal(t, "42", payload.ContentID)
	assert.Equal(t, "Solo Leveling", payload.Title)
	assert.Equal(t, []Tag{TagFreeRead, TagWeeklyNovel}, payload.Tags)
	assert.Equal(t, StatusCompleted, payload.Status)
	assert.Equal(t, []string{"g1", "g2"}, payload.GenreIDs)
	assert.Equal(t, []string{"Only I Level Up", "Na Honjaman Level Up"}, payload.Synonyms)
	assert.Equal(t, []string{dataURI("a"), dataURI("b")}, payload.Gallery, "data URIs keep their commas")
}

func TestPayload_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Payload)
		fields []string
	}{
		{"valid", func(*Payload) {}, nil},
		{"missing_title", func(p *Payload) { p.Title = "" }, []string{FieldTitle}},
		{"long_title", func(p *Payload) { p.Title = strings.Repeat("x", 201) }, []string{FieldTitle}},
		{"bad_status", func(p *Payload) { p.Status = "Paused" }, []string{FieldStatus}},
		{"bad_tag", func(p *Payload) { p.Tags = []Tag{"Trending"} }, []string{FieldTags}},
		{"missing_images", func(p *Payload) { p.Thumbnail, p.Poster = "", "" }, []string{FieldThumbnail, FieldPoster}},
		{"relative_url", func(p *Payload) { p.Poster = "/Content/x/poster" }, []string{FieldPoster}},
		{"broken_base64", func(p *Payload) { p.Thumbnail = "data:image/png;base64,!!!" }, []string{FieldThumbnail}},
		{"mixed_gallery", func(p *Payload) { p.Gallery = []string{dataURI("a"), "https://cdn.readverse.app/x"} }, []string{FieldGallery}},
		{"url_gallery", func(p *Payload) { p.Gallery = []string{"https://cdn.readverse.app/x", "https://cdn.readverse.app/y"} }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			tt.mutate(&payload)

			err := payload.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.fields, failedFields(t, err))
		})
	}
}

func TestPayload_Validate_ImageSize(t *testing.T) {
	payload := validPayload()
	payload.Thumbnail = "data:image/png;base64," + base64.StdEncoding.EncodeToString(make([]byte, 4_600_001))

	err := payload.Validate()
	assert.Equal(t, []string{FieldThumbnail}, failedFields(t, err))
	assert.Contains(t, apperr.As(err).Message, "4.6 MB")
}

func TestPayload_Validate_URLSchemes(t *testing.T) {
	payload := validPayload()
	payload.Poster = "memory://readverse/Content/A/poster"

	assert.Error(t, payload.Validate())
	assert.NoError(t, payload.Validate("http", "https", "memory"))
}
