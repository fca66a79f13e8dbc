// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content manages the published works of the catalogue.

Core Responsibility:

  - Discovery: filtered and sorted content lists built by [QueryBuilder].
  - Management: the admin upsert that keeps image objects and their
    title-based storage folders in step with the record.

Content images live under "Content/<title>/", so renaming a content moves its
objects and rewrites the stored URLs.
*/
package content

import "time"

// # Domain Enums

// Tag is an editorial placement of a content.
type Tag string

const (
	TagBannerContent    Tag = "BannerContent"
	TagReadWithEditor   Tag = "ReadWithEditor"
	TagCompletedClassic Tag = "CompletedClassic"
	TagWeeklyNovel      Tag = "WeeklyNovel"
	TagFreeRead         Tag = "FreeRead"
)

// AllTags lists every [Tag] in display order.
var AllTags = []Tag{TagBannerContent, TagReadWithEditor, TagCompletedClassic, TagWeeklyNovel, TagFreeRead}

// IsValid reports whether t is a recognised [Tag].
func (t Tag) IsValid() bool {
	switch t {
	case TagBannerContent, TagReadWithEditor, TagCompletedClassic, TagWeeklyNovel, TagFreeRead:
		return true
	}
	return false
}

// Status is the publication state of a content.
type Status string

const (
	StatusOngoing      Status = "Ongoing"
	StatusDiscontinued Status = "Discontinued"
	StatusAbandoned    Status = "Abandoned"
	StatusUnscheduled  Status = "Unscheduled"
	StatusCompleted    Status = "Completed"
)

// AllStatuses lists every [Status].
var AllStatuses = []Status{StatusOngoing, StatusDiscontinued, StatusAbandoned, StatusUnscheduled, StatusCompleted}

// IsValid reports whether s is a recognised [Status].
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusDiscontinued, StatusAbandoned, StatusUnscheduled, StatusCompleted:
		return true
	}
	return false
}

// # Form fields

const (
	FieldContentID   = "contentId"
	FieldTitle       = "title"
	FieldTags        = "tags"
	FieldStatus      = "status"
	FieldGenres      = "genres"
	FieldAuthor      = "author"
	FieldSynonyms    = "synonyms"
	FieldDescription = "description"
	FieldThumbnail   = "thumbnail"
	FieldPoster      = "poster"
	FieldGallery     = "imagesAndWallpapers"
)

// # Messages

const (
	MsgTitleDuplicate = "Title must be unique."
)

// # Core Entities

// GenreRef is an expanded genre reference.
type GenreRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Content is a published work. Title is globally unique.
type Content struct {
	ID                  string     `json:"id"                          bson:"_id"`
	Title               string     `json:"title"                       bson:"title"`
	Slug                string     `json:"slug"                        bson:"slug"`
	Tags                []Tag      `json:"tags"                        bson:"tags"`
	Status              Status     `json:"status"                      bson:"status"`
	GenreIDs            []string   `json:"genreIds"                    bson:"genres"`
	Genres              []GenreRef `json:"genres,omitempty"            bson:"-"`
	Rating              float64    `json:"rating"                      bson:"rating"`
	NoOfViews           int64      `json:"noOfViews"                   bson:"noOfViews"`
	NoOfSubscribers     int64      `json:"noOfSubscribers"             bson:"noOfSubscribers"`
	Author              string     `json:"author"                      bson:"author"`
	Synonyms            []string   `json:"synonyms"                    bson:"synonyms"`
	Description         string     `json:"description"                 bson:"description"`
	Thumbnail           string     `json:"thumbnail"                   bson:"thumbnail"`
	Poster              string     `json:"poster"                      bson:"poster"`
	ImagesAndWallpapers []string   `json:"imagesAndWallpapers"         bson:"imagesAndWallpapers"`
	ChaptersUpdatedOn   *time.Time `json:"chaptersUpdatedOn,omitempty" bson:"chaptersUpdatedOn,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"                   bson:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"                   bson:"updatedAt"`
}

// Summary is the list projection of a [Content]: no description, synonyms,
// poster or gallery.
type Summary struct {
	ID                string     `json:"id"                          bson:"_id"`
	Title             string     `json:"title"                       bson:"title"`
	Slug              string     `json:"slug"                        bson:"slug"`
	Tags              []Tag      `json:"tags"                        bson:"tags"`
	Status            Status     `json:"status"                      bson:"status"`
	GenreIDs          []string   `json:"genreIds"                    bson:"genres"`
	Genres            []GenreRef `json:"genres,omitempty"            bson:"-"`
	Rating            float64    `json:"rating"                      bson:"rating"`
	NoOfViews         int64      `json:"noOfViews"                   bson:"noOfViews"`
	NoOfSubscribers   int64      `json:"noOfSubscribers"             bson:"noOfSubscribers"`
	Author            string     `json:"author"                      bson:"author"`
	Thumbnail         string     `json:"thumbnail"                   bson:"thumbnail"`
	ChaptersUpdatedOn *time.Time `json:"chaptersUpdatedOn,omitempty" bson:"chaptersUpdatedOn,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"                   bson:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"                   bson:"updatedAt"`
}

// Summarize projects c onto a [Summary].
func (c *Content) Summarize() *Summary {
	return &Summary{
		ID:                c.ID,
		Title:             c.Title,
		Slug:              c.Slug,
		Tags:              c.Tags,
		Status:            c.Status,
		GenreIDs:          c.GenreIDs,
		Genres:            c.Genres,
		Rating:            c.Rating,
		NoOfViews:         c.NoOfViews,
		NoOfSubscribers:   c.NoOfSubscribers,
		Author:            c.Author,
		Thumbnail:         c.Thumbnail,
		ChaptersUpdatedOn: c.ChaptersUpdatedOn,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
