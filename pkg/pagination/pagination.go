// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides the page/limit parameters and response metadata
// shared by the paginated endpoints (admin content listing, comments).
package pagination

import (
	"net/url"

	"github.com/taibuivan/readverse/pkg/query"
)

// DefaultPage is the starting page (1-indexed).
const DefaultPage = 1

// Params holds a validated page and limit.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewMeta computes TotalPages from total and limit.
func NewMeta(params Params, total int) Meta {
	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: TotalPages(total, params.Limit),
	}
}

// TotalPages is ceil(total / limit), 0 for an empty result.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// FromValues parses "page" and "limit". Invalid values fall back to
// [DefaultPage] and defaultLimit; limits above maxLimit are clamped.
func FromValues(values url.Values, defaultLimit, maxLimit int) Params {
	page := query.Int(values, "page", DefaultPage)
	limit := query.Int(values, "limit", defaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Params{Page: page, Limit: limit}
}
