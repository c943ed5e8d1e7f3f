package art

import "github.com/arcfts/searchcore/sortedarray"

// Posting is a leaf's payload: the sorted document ids for a term, plus
// their per-document position lists, per spec.md §3.
//
// ids delegates to sortedarray.Array (spec.md §2 dependency order:
// sortedarray → ART posting leaves), offsetIndex/offsets are kept as
// plain slices since they are write-once-append, read-many and do not
// need FOR compression or range queries.
type Posting struct {
	ids         sortedarray.Array
	offsetIndex []uint32 // per-id start index into offsets
	offsets     []uint32 // concatenated [len, pos...] runs
	maxScore    float64
	numOffsets  int
}

// NumIDs returns the number of documents in this posting.
func (p *Posting) NumIDs() int { return p.ids.Len() }

// IDs returns the sorted ascending document ids.
func (p *Posting) IDs() []uint32 { return p.ids.AsSlice() }

// MaxScore returns the maximum score across all documents in the posting.
func (p *Posting) MaxScore() float64 { return p.maxScore }

// HasID reports whether id is already present.
func (p *Posting) HasID(id uint32) bool { return p.ids.Contains(id) }

// PositionsOf returns the position list recorded for id, or nil if id is
// absent, per spec.md §3's offset_index/offsets layout.
func (p *Posting) PositionsOf(id uint32) []uint32 {
	i := p.ids.IndexOf(id)
	if i >= p.ids.Len() {
		return nil
	}
	start := p.offsetIndex[i]
	n := p.offsets[start]
	return p.offsets[start+1 : start+1+n]
}

// AppendID adds id (with score and positions) to the posting. Duplicate
// (id already present) calls are a no-op per spec.md §4.1's insert
// contract ("Duplicate (key,id) insertions are a no-op"), and return
// false. A genuinely new id returns true.
func (p *Posting) AppendID(id uint32, score float64, positions []uint32) bool {
	if p.ids.Contains(id) {
		return false
	}
	p.ids.Append(id)
	p.offsetIndex = append(p.offsetIndex, uint32(len(p.offsets)))
	p.offsets = append(p.offsets, uint32(len(positions)))
	p.offsets = append(p.offsets, positions...)
	p.numOffsets += len(positions)
	if score > p.maxScore {
		p.maxScore = score
	}
	return true
}

// RemoveID deletes id from the posting, reporting whether it was
// present. This is the id-level removal operation original_source's
// posting contract exposes but spec.md folds into the ART delete
// algorithm without naming separately (see SPEC_FULL.md §3).
func (p *Posting) RemoveID(id uint32) bool {
	i := p.ids.IndexOf(id)
	if i >= p.ids.Len() {
		return false
	}
	start := p.offsetIndex[i]
	n := p.offsets[start]
	removed := int(n) + 1

	p.offsets = append(p.offsets[:start], p.offsets[start+removed:]...)
	p.offsetIndex = append(p.offsetIndex[:i], p.offsetIndex[i+1:]...)
	for j := i; j < len(p.offsetIndex); j++ {
		p.offsetIndex[j] -= uint32(removed)
	}
	p.ids.RemoveValues([]uint32{id})
	p.numOffsets -= int(n)
	return true
}

// newPosting builds a one-document posting.
func newPosting(id uint32, score float64, positions []uint32) *Posting {
	p := &Posting{}
	p.AppendID(id, score, positions)
	return p
}
