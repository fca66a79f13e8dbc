// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "sort"

// attachReplies nests replies under roots, at any depth. Siblings are ordered
// oldest first. Replies whose parent is not reachable from roots are dropped.
func attachReplies(roots []*Comment, replies []*Comment) {
	children := make(map[string][]*Comment, len(replies))
	for _, reply := range replies {
		children[reply.ParentID] = append(children[reply.ParentID], reply)
	}
	for _, siblings := range children {
		sort.SliceStable(siblings, func(i, j int) bool {
			return siblings[i].CreatedAt.Before(siblings[j].CreatedAt)
		})
	}

	visited := make(map[string]bool, len(replies))
	var attach func(node *Comment)
	attach = func(node *Comment) {
		if visited[node.ID] {
			return
		}
		visited[node.ID] = true

		node.Replies = children[node.ID]
		for _, child := range node.Replies {
			attach(child)
		}
	}

	for _, root := range roots {
		attach(root)
	}
}
