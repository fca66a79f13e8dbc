// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/readverse/pkg/pagination"
)

func TestFromValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: 18}},
		{"explicit", "page=3&limit=10", pagination.Params{Page: 3, Limit: 10}},
		{"clamped", "page=0&limit=1000", pagination.Params{Page: 1, Limit: 100}},
		{"malformed", "page=x&limit=-4", pagination.Params{Page: 1, Limit: 18}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			assert.Equal(t, tt.want, pagination.FromValues(values, 18, 100))
		})
	}
}

func TestNewMeta(t *testing.T) {
	params := pagination.Params{Page: 2, Limit: 10}
	assert.Equal(t, 20, params.Offset())
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 10, Total: 21, TotalPages: 3}, pagination.NewMeta(params, 21))
	assert.Equal(t, 0, pagination.TotalPages(0, 10))
}
