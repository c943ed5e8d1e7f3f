package art

// Package art implements the Term Index of spec.md §4.1: an adaptive
// radix tree over UTF-8 term bytes whose leaves hold postings, with
// prefix iteration and fuzzy (edit-distance) search.
//
// Every stored key is internally terminated with a single 0x00 byte.
// Terms are expected to be ordinary text and never contain an embedded
// NUL, so this guarantees no stored key is ever a byte-for-byte prefix
// of another — the standard trick (also used by the indexer this
// spec was distilled from) that avoids needing a separate "value at an
// internal node" case throughout insert/search/delete.

// Tree is a term index. The zero value is an empty, usable tree.
type Tree struct {
	root child
	size int
}

// Len returns the number of distinct terms stored.
func (t *Tree) Len() int { return t.size }

func terminate(key []byte) []byte {
	out := make([]byte, len(key)+1)
	copy(out, key)
	return out
}

// Insert adds id (with score and token positions) under term. It
// reports whether id is new to that term's posting (false for a
// duplicate (term,id) pair, which is a no-op per spec.md §4.1).
func (t *Tree) Insert(term []byte, id uint32, score float64, positions []uint32) bool {
	key := terminate(term)
	idIsNew, termIsNew := insertRec(&t.root, key, 0, id, score, positions)
	if termIsNew {
		t.size++
	}
	return idIsNew
}

// Search returns the posting for an exact term match, or nil.
func (t *Tree) Search(term []byte) *Posting {
	return searchRec(&t.root, terminate(term), 0)
}

// Delete removes id from term's posting. It reports whether id was
// present. When the posting becomes empty the term itself is pruned
// from the tree.
func (t *Tree) Delete(term []byte, id uint32) bool {
	key := terminate(term)
	removedID, termPruned := deleteRec(&t.root, key, 0, id)
	if termPruned {
		t.size--
	}
	return removedID
}

func tokenCountOf(positions []uint32) int { return len(positions) }
