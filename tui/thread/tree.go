// Package thread projects a comment tree into the flat, expansion-aware row
// sequence the detail view renders and navigates.
//
// Flatten, Locate and ToggleExpand all run on the same walk, so a flat index
// always names the same node for reading and for mutation.
package thread

import "github.com/CrestNiraj12/rdt/domain"

// walk visits the visible nodes in pre-order with their flat index.
// Children are visited only when their parent is expanded.
// It stops as soon as visit returns false.
func walk(roots []*domain.CommentNode, visit func(n *domain.CommentNode, index int) bool) {
	index := 0
	var visitAll func(nodes []*domain.CommentNode) bool
	visitAll = func(nodes []*domain.CommentNode) bool {
		for _, n := range nodes {
			if n == nil {
				continue
			}
			if !visit(n, index) {
				return false
			}
			index++
			if n.Expanded && !visitAll(n.Children) {
				return false
			}
		}
		return true
	}
	visitAll(roots)
}

// Flatten returns the visible rows in display order.
func Flatten(roots []*domain.CommentNode) []*domain.CommentNode {
	var out []*domain.CommentNode
	walk(roots, func(n *domain.CommentNode, _ int) bool {
		out = append(out, n)
		return true
	})
	return out
}

// VisibleLen returns len(Flatten(roots)) without allocating the slice.
func VisibleLen(roots []*domain.CommentNode) int {
	count := 0
	walk(roots, func(*domain.CommentNode, int) bool {
		count++
		return true
	})
	return count
}

// Locate returns the node shown at flat index i, or nil when i is out of range.
func Locate(roots []*domain.CommentNode, i int) *domain.CommentNode {
	if i < 0 {
		return nil
	}
	var found *domain.CommentNode
	walk(roots, func(n *domain.CommentNode, index int) bool {
		if index == i {
			found = n
			return false
		}
		return true
	})
	return found
}

// ToggleExpand flips the expansion of the node at flat index i.
// Nodes without replies are left untouched. It reports whether a node flipped.
func ToggleExpand(roots []*domain.CommentNode, i int) bool {
	n := Locate(roots, i)
	if !n.CanExpand() {
		return false
	}
	n.Expanded = !n.Expanded
	return true
}

// Clamp keeps a cursor inside [0, length-1]; an empty list clamps to 0.
func Clamp(index, length int) int {
	if length <= 0 || index < 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	return index
}
