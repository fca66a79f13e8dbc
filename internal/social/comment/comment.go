// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment implements the nested discussion threads of contents and
chapters.

A thread is identified by a content and an optional chapter. Top-level
comments carry the "root" parent sentinel; replies point at their parent's id.
Every comment also records the id of the root comment heading its tree.
Pages are cut over root comments only, each root arriving with its whole reply
tree.
*/
package comment

import (
	"time"

	"github.com/taibuivan/readverse/internal/platform/constants"
)

// # Domain Enums

// SortKey orders the root comments of a page.
type SortKey string

const (
	// SortBest ranks by up votes minus down votes, newest first on ties.
	SortBest   SortKey = "BEST"
	SortNewest SortKey = "NEWEST"
	SortOldest SortKey = "OLDEST"
)

// IsValid reports whether k is a recognised [SortKey].
func (k SortKey) IsValid() bool {
	return k == SortBest || k == SortNewest || k == SortOldest
}

// RootParent is the parent of top-level comments.
const RootParent = constants.CommentRootParent

const maxMessageLength = 10_000

// # Core Entities

// Author is the commenting user as described by the identity provider.
type Author struct {
	ID       string `json:"id"                 bson:"id"`
	Username string `json:"username,omitempty" bson:"username"`
	Avatar   string `json:"avatar"             bson:"avatar"`
}

// Comment is one message of a thread.
type Comment struct {
	ID         string     `json:"id"                  bson:"_id"`
	ParentID   string     `json:"parentId"            bson:"parentId"`
	RootID     string     `json:"rootId"              bson:"rootId"`
	Message    string     `json:"message"             bson:"message"`
	ContentID  string     `json:"contentId"           bson:"contentId"`
	ChapterID  string     `json:"chapterId,omitempty" bson:"chapterId,omitempty"`
	User       Author     `json:"user"                bson:"user"`
	UpVotes    int64      `json:"upVotes"             bson:"upVotes"`
	DownVotes  int64      `json:"downVotes"           bson:"downVotes"`
	IsEdited   bool       `json:"isEdited"            bson:"isEdited"`
	IsReported bool       `json:"isReported"          bson:"isReported"`
	IsDeleted  bool       `json:"isDeleted"           bson:"isDeleted"`
	CreatedAt  time.Time  `json:"createdAt"           bson:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"           bson:"updatedAt"`
	Replies    []*Comment `json:"replies,omitempty"   bson:"-"`
}

// IsRoot reports whether c is a top-level comment.
func (c *Comment) IsRoot() bool {
	return c.ParentID == RootParent
}

// Score is the BEST ranking value.
func (c *Comment) Score() int64 {
	return c.UpVotes - c.DownVotes
}

// Thread identifies the comments of a content, or of one of its chapters.
type Thread struct {
	ContentID string
	ChapterID string
}

// Page is one page of root comments with their replies.
type Page struct {
	Comments      []*Comment `json:"comments"`
	TotalComments int        `json:"totalComments"`
	TotalPages    int        `json:"totalPages"`
	PageNumber    int        `json:"pageNumber"`
	SortKey       SortKey    `json:"sortKey"`
}
