// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"errors"
	"net/url"
	"strings"

	"github.com/taibuivan/readverse/internal/platform/imagedata"
	"github.com/taibuivan/readverse/internal/platform/validate"
	"github.com/taibuivan/readverse/pkg/query"
	"github.com/taibuivan/readverse/pkg/slice"
)

const (
	maxTitleLength       = 200
	maxAuthorLength      = 200
	maxDescriptionLength = 10_000
)

// # Submission Payload

// Payload is a submitted content form. An empty ContentID selects the create
// path, anything else the update of that record.
//
// Image fields hold either a URL of an existing object or a base64 data URI of
// a new image.
type Payload struct {
	ContentID   string   `json:"contentId"`
	Title       string   `json:"title"`
	Tags        []Tag    `json:"tags"`
	Status      Status   `json:"status"`
	GenreIDs    []string `json:"genres"`
	Author      string   `json:"author"`
	Synonyms    []string `json:"synonyms"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Poster      string   `json:"poster"`
	Gallery     []string `json:"imagesAndWallpapers"`
}

/*
PayloadFromForm reads a urlencoded or multipart content form.

Description: tags and genres may be repeated or comma separated, synonyms are
one comma separated field. Gallery entries are taken as submitted since data
URIs contain commas.

Parameters:
  - values: url.Values (Parsed form fields)

Returns:
  - Payload: Not yet normalised nor validated
*/
func PayloadFromForm(values url.Values) Payload {
	return Payload{
		ContentID:   values.Get(FieldContentID),
		Title:       values.Get(FieldTitle),
		Tags:        slice.Map(query.Strings(values, FieldTags), func(value string) Tag { return Tag(value) }),
		Status:      Status(values.Get(FieldStatus)),
		GenreIDs:    query.Strings(values, FieldGenres),
		Author:      values.Get(FieldAuthor),
		Synonyms:    query.Strings(values, FieldSynonyms),
		Description: values.Get(FieldDescription),
		Thumbnail:   values.Get(FieldThumbnail),
		Poster:      values.Get(FieldPoster),
		Gallery:     values[FieldGallery],
	}
}

// Normalize trims text fields and drops blank and repeated list entries.
func (p *Payload) Normalize() {
	p.ContentID = strings.TrimSpace(p.ContentID)
	p.Title = strings.TrimSpace(p.Title)
	p.Status = Status(strings.TrimSpace(string(p.Status)))
	p.Author = strings.TrimSpace(p.Author)
	p.Description = strings.TrimSpace(p.Description)
	p.Thumbnail = strings.TrimSpace(p.Thumbnail)
	p.Poster = strings.TrimSpace(p.Poster)

	p.Tags = slice.Unique(p.Tags)
	if p.Tags == nil {
		p.Tags = []Tag{}
	}
	p.GenreIDs = slice.Unique(cleanStrings(p.GenreIDs))
	p.Synonyms = cleanStrings(p.Synonyms)
	p.Gallery = cleanStrings(p.Gallery)
}

/*
Validate checks every field of a normalised payload.

Description: images must be base64 data URIs within the size limit or
absolute URLs using one of urlSchemes. A gallery is either entirely new
images or entirely existing URLs. Genre existence is checked by the service.

Parameters:
  - urlSchemes: ...string (Accepted image URL schemes; http(s) when empty)

Returns:
  - error: A VALIDATION_ERROR listing every failed field
*/
func (p *Payload) Validate(urlSchemes ...string) error {
	v := &validate.Validator{}

	v.Required(FieldTitle, p.Title).
		MaxLen(FieldTitle, p.Title, maxTitleLength).
		MaxLen(FieldAuthor, p.Author, maxAuthorLength).
		MaxLen(FieldDescription, p.Description, maxDescriptionLength).
		Custom(FieldStatus, !p.Status.IsValid(), "Must be one of: "+joinStatuses())

	for _, tag := range p.Tags {
		if !tag.IsValid() {
			v.Custom(FieldTags, true, "Unknown tag "+string(tag))
		}
	}

	v.Required(FieldThumbnail, p.Thumbnail).Required(FieldPoster, p.Poster)
	if p.Thumbnail != "" {
		validateImage(v, FieldThumbnail, p.Thumbnail, urlSchemes)
	}
	if p.Poster != "" {
		validateImage(v, FieldPoster, p.Poster, urlSchemes)
	}

	if len(p.Gallery) > 0 {
		fresh := imagedata.IsDataURI(p.Gallery[0])
		for _, image := range p.Gallery {
			if imagedata.IsDataURI(image) != fresh {
				v.Custom(FieldGallery, true, "Submit either new images or existing URLs, not both")
				break
			}
		}
		for _, image := range p.Gallery {
			validateImage(v, FieldGallery, image, urlSchemes)
		}
	}

	return v.Err()
}

func validateImage(v *validate.Validator, field, value string, urlSchemes []string) {
	if !imagedata.IsDataURI(value) {
		v.URL(field, value, urlSchemes...)
		return
	}

	_, err := imagedata.Decode(value)
	switch {
	case errors.Is(err, imagedata.ErrTooLarge):
		v.Custom(field, true, "Image must be at most 4.6 MB")
	case err != nil:
		v.Custom(field, true, "Invalid image data")
	}
}

func joinStatuses() string {
	return strings.Join(slice.Map(AllStatuses, func(status Status) string { return string(status) }), ", ")
}

func cleanStrings(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			cleaned = append(cleaned, value)
		}
	}
	return cleaned
}
