// Package numtrie implements the Numeric Range Trie of spec.md §4.3: a
// pair of fixed-depth byte tries (positive and negative) over
// two's-complement signed integers, supporting equality, range,
// less-than, and greater-than queries that return document-id sets.
package numtrie

import (
	"bytes"

	"github.com/RoaringBitmap/roaring/v2"
)

// Trie indexes int64 (or, with Width32, int32-range) values to document
// ids. The zero value is not usable; construct with New.
type Trie struct {
	depth int // bytes per key: 4 for 32-bit, 8 for 64-bit
	pos   *node
	neg   *node
	min   int64
	max   int64
}

// Width selects the integer bit-width a Trie indexes.
type Width int

const (
	// Width32 indexes values in [math.MinInt32, math.MaxInt32].
	Width32 Width = 32
	// Width64 indexes the full int64 range.
	Width64 Width = 64
)

// New creates an empty trie for the given bit width.
func New(w Width) *Trie {
	t := &Trie{pos: newNode(), neg: newNode()}
	switch w {
	case Width32:
		t.depth = 4
		t.min, t.max = -1<<31, 1<<31-1
	default:
		t.depth = 8
		t.min, t.max = minInt64, maxInt64
	}
	return t
}

const (
	minInt64 = -1 << 63
	maxInt64 = 1<<63 - 1
)

// keyBytes decomposes v into depth bytes, most-significant-byte first,
// within the tree (positive or negative) it belongs to. For negative
// values the magnitude's bytes are bitwise-inverted so that numerically
// smaller (more negative) values remain lexicographically earlier
// within the negative tree, per spec.md §4.3.
func (t *Trie) keyBytes(v int64) (isNeg bool, key []byte) {
	key = make([]byte, t.depth)
	if v >= 0 {
		u := uint64(v)
		for i := t.depth - 1; i >= 0; i-- {
			key[i] = byte(u)
			u >>= 8
		}
		return false, key
	}

	// two's-complement negation in unsigned space, safe for MinInt64.
	mag := uint64(0) - uint64(v)
	for i := t.depth - 1; i >= 0; i-- {
		key[i] = ^byte(mag)
		mag >>= 8
	}
	return true, key
}

func (t *Trie) treeFor(isNeg bool) *node {
	if isNeg {
		return t.neg
	}
	return t.pos
}

// Insert adds value→id. O(depth).
func (t *Trie) Insert(value int64, id uint32) {
	isNeg, key := t.keyBytes(value)
	n := t.treeFor(isNeg)
	n.ids.Add(id)
	for _, b := range key {
		n = n.child(b, true)
		n.ids.Add(id)
	}
}

// SearchEqualTo returns the id set for documents whose value equals v.
func (t *Trie) SearchEqualTo(v int64) *roaring.Bitmap {
	isNeg, key := t.keyBytes(v)
	n := t.treeFor(isNeg)
	for _, b := range key {
		n = n.child(b, false)
		if n == nil {
			return roaring.New()
		}
	}
	return n.ids.Clone()
}

// SearchRange returns the union of id sets for documents whose value v
// satisfies lo (lo_inclusive ? v>=lo : v>lo) && hi (hi_inclusive ?
// v<=hi : v<hi). Cross-sign ranges are split at zero and the negative
// ">=lo" and positive "<=hi" results are unioned, per spec.md §4.3.
func (t *Trie) SearchRange(lo int64, loInclusive bool, hi int64, hiInclusive bool) *roaring.Bitmap {
	// normalize to an inclusive-inclusive range in the int64 domain
	if !loInclusive {
		if lo == t.max {
			return roaring.New()
		}
		lo++
	}
	if !hiInclusive {
		if hi == t.min {
			return roaring.New()
		}
		hi--
	}
	if lo > hi {
		return roaring.New()
	}
	if lo < t.min {
		lo = t.min
	}
	if hi > t.max {
		hi = t.max
	}

	out := roaring.New()
	switch {
	case hi < 0:
		_, loKey := t.keyBytes(lo)
		_, hiKey := t.keyBytes(hi)
		rangeRec(t.neg, loKey, hiKey, 0, t.depth, out)
	case lo >= 0:
		_, loKey := t.keyBytes(lo)
		_, hiKey := t.keyBytes(hi)
		rangeRec(t.pos, loKey, hiKey, 0, t.depth, out)
	default:
		_, negLoKey := t.keyBytes(lo)
		_, negHiKey := t.keyBytes(-1)
		rangeRec(t.neg, negLoKey, negHiKey, 0, t.depth, out)

		_, posLoKey := t.keyBytes(0)
		_, posHiKey := t.keyBytes(hi)
		rangeRec(t.pos, posLoKey, posHiKey, 0, t.depth, out)
	}
	return out
}

// SearchLessThan returns ids for values < v (or <= v if inclusive).
func (t *Trie) SearchLessThan(v int64, inclusive bool) *roaring.Bitmap {
	return t.SearchRange(t.min, true, v, inclusive)
}

// SearchGreaterThan returns ids for values > v (or >= v if inclusive).
func (t *Trie) SearchGreaterThan(v int64, inclusive bool) *roaring.Bitmap {
	return t.SearchRange(v, inclusive, t.max, true)
}

// Clear drops every indexed value (spec.md §9.3: field-drop support,
// supplemented from original_source's numeric trie teardown path).
func (t *Trie) Clear() {
	t.pos = newNode()
	t.neg = newNode()
}

// rangeRec walks n (at the given key-byte depth) and ORs into out the id
// sets of every subtree whose full key range falls within [loKey,hiKey].
// Subtrees fully inside are picked up via their cached node-level
// aggregate without further descent; subtrees fully outside are skipped;
// partially-overlapping subtrees are recursed into.
func rangeRec(n *node, loKey, hiKey []byte, depth, maxDepth int, out *roaring.Bitmap) {
	if n == nil || n.ids.IsEmpty() {
		return
	}
	if depth == maxDepth {
		out.Or(n.ids)
		return
	}

	for b, child := range n.children {
		path := append(append([]byte{}, loKey[:depth]...), b)
		subLo := make([]byte, maxDepth)
		copy(subLo, path)
		subHi := make([]byte, maxDepth)
		copy(subHi, path)
		for i := depth + 1; i < maxDepth; i++ {
			subHi[i] = 0xFF
		}

		if bytes.Compare(subHi, loKey) < 0 || bytes.Compare(subLo, hiKey) > 0 {
			continue // entirely outside
		}
		if bytes.Compare(subLo, loKey) >= 0 && bytes.Compare(subHi, hiKey) <= 0 {
			out.Or(child.ids) // entirely inside: whole-subtree pickup
			continue
		}
		// Clamp the bounds to this child's own key range so the next
		// level builds its paths from the bytes actually descended.
		cLo, cHi := loKey, hiKey
		if bytes.Compare(subLo, loKey) > 0 {
			cLo = subLo
		}
		if bytes.Compare(subHi, hiKey) < 0 {
			cHi = subHi
		}
		rangeRec(child, cLo, cHi, depth+1, maxDepth, out)
	}
}
