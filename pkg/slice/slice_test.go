// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/readverse/pkg/slice"
)

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, slice.Unique([]string{"b", "a", "b", "c", "a"}))
	assert.Nil(t, slice.Unique[string](nil))
}

func TestIntersects(t *testing.T) {
	assert.True(t, slice.Intersects([]string{"FreeRead", "WeeklyNovel"}, []string{"FreeRead"}))
	assert.False(t, slice.Intersects([]string{"FreeRead"}, []string{}))
	assert.False(t, slice.Intersects(nil, []string{"FreeRead"}))
}

func TestMapFilter(t *testing.T) {
	upper := slice.Map([]string{"a", "b"}, strings.ToUpper)
	assert.Equal(t, []string{"A", "B"}, upper)

	nonEmpty := slice.Filter([]string{"a", "", "b"}, func(s string) bool { return s != "" })
	assert.Equal(t, []string{"a", "b"}, nonEmpty)
}
