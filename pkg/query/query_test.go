// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/readverse/pkg/query"
)

func TestStrings(t *testing.T) {
	values := url.Values{"tags": {"FreeRead, WeeklyNovel", " ", "BannerContent"}}
	assert.Equal(t, []string{"FreeRead", "WeeklyNovel", "BannerContent"}, query.Strings(values, "tags"))
	assert.Nil(t, query.Strings(values, "genres"))
}

func TestInt(t *testing.T) {
	values := url.Values{"limit": {"24"}, "page": {"two"}}
	assert.Equal(t, 24, query.Int(values, "limit", 18))
	assert.Equal(t, 1, query.Int(values, "page", 1))
	assert.Equal(t, 7, query.Int(values, "missing", 7))
}
