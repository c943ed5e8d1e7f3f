package numtrie

import "github.com/RoaringBitmap/roaring/v2"

// node is one level of a byte trie. children is sparse (a typical node
// has far fewer than 256 live bytes) while ids holds the union of every
// document id stored anywhere in this node's subtree, per spec.md §4.3's
// invariant "the id set at a node equals the union of the id sets of its
// children". Using a roaring bitmap for ids gives O(1)-ish incremental
// union on insert and a cheap .Clone()/.Or() for whole-subtree pickup
// during range queries, matching the pack's posting-id-set idiom
// (KittClouds-Angular-GO qgram/compressed_postings.go).
type node struct {
	children map[byte]*node
	ids      *roaring.Bitmap
}

func newNode() *node {
	return &node{ids: roaring.New()}
}

func (n *node) child(b byte, create bool) *node {
	c, ok := n.children[b]
	if !ok {
		if !create {
			return nil
		}
		if n.children == nil {
			n.children = make(map[byte]*node, 1)
		}
		c = newNode()
		n.children[b] = c
	}
	return c
}
