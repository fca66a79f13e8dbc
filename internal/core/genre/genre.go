// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package genre manages the named classifications referenced by catalogue content.

A genre is nothing more than a unique name. Content stores genre identifiers and
the list endpoints resolve them back to {id, name} pairs.
*/
package genre

import "time"

// # Form fields

const (
	// FieldName is the form field carrying the genre name.
	FieldName = "genre"
)

// # Messages

const (
	MsgEmpty     = "Genre can't be empty."
	MsgDuplicate = "Genre must be unique."
)

// # Core Entities

// Genre is a named classification. Name is globally unique.
type Genre struct {
	ID        string    `json:"id"        bson:"_id"`
	Name      string    `json:"name"      bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
