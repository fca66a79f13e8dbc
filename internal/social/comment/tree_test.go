// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(minute int) time.Time {
	return time.Date(2026, 4, 1, 12, minute, 0, 0, time.UTC)
}

func TestAttachReplies(t *testing.T) {
	root := &Comment{ID: "r", ParentID: RootParent}
	replies := []*Comment{
		{ID: "b", ParentID: "r", CreatedAt: at(5)},
		{ID: "a", ParentID: "r", CreatedAt: at(1)},
		{ID: "a1", ParentID: "a", CreatedAt: at(2)},
		{ID: "orphan", ParentID: "gone", CreatedAt: at(3)},
		{ID: "other", ParentID: "another-root", CreatedAt: at(4)},
	}

	attachReplies([]*Comment{root}, replies)

	require.Len(t, root.Replies, 2)
	assert.Equal(t, "a", root.Replies[0].ID, "oldest first")
	assert.Equal(t, "b", root.Replies[1].ID)
	require.Len(t, root.Replies[0].Replies, 1)
	assert.Equal(t, "a1", root.Replies[0].Replies[0].ID)
	assert.Empty(t, root.Replies[1].Replies)
}

func TestAttachReplies_CycleTerminates(t *testing.T) {
	root := &Comment{ID: "r", ParentID: RootParent}
	x := &Comment{ID: "x", ParentID: "r"}
	y := &Comment{ID: "y", ParentID: "x"}
	loop := &Comment{ID: "r", ParentID: "y"}

	attachReplies([]*Comment{root}, []*Comment{x, y, loop})

	require.Len(t, root.Replies, 1)
	assert.Equal(t, "x", root.Replies[0].ID)
}
