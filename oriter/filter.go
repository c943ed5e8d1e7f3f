package oriter

import "github.com/RoaringBitmap/roaring/v2"

// Filter is the unified membership test of spec.md §9's "filter-
// iterator abstraction" — a numeric-range result, a term-query result,
// a curation pin/exclusion set, or any other id predicate can all be
// wrapped as a Filter and composed uniformly over an OrIterator.
type Filter interface {
	Contains(id uint32) bool
}

// BitmapFilter adapts a roaring.Bitmap (the id-set representation used
// throughout numtrie and rules/curation) to Filter.
type BitmapFilter struct{ Bitmap *roaring.Bitmap }

func (f BitmapFilter) Contains(id uint32) bool {
	return f.Bitmap != nil && f.Bitmap.Contains(id)
}

// SourceFilter adapts any Source (e.g. an art.Posting's id list) to
// Filter by exhausting it once into a bitmap — appropriate when the
// same filter will be probed many times, as filter application is.
func SourceFilter(s Source) Filter {
	bm := roaring.New()
	id, ok := s.ID()
	for ok {
		bm.Add(id)
		if !s.Advance() {
			break
		}
		id, ok = s.ID()
	}
	return BitmapFilter{Bitmap: bm}
}

// FilterIterator composes an OrIterator with an optional include filter
// (every surviving id must satisfy it) and an optional exclude filter
// (every surviving id must not satisfy it), per spec.md §4.4's
// filter/exclusion intersection.
type FilterIterator struct {
	base    *OrIterator
	include Filter
	exclude Filter
}

// NewFilterIterator wraps base with include/exclude filters, either of
// which may be nil to disable that side of the intersection.
func NewFilterIterator(base *OrIterator, include, exclude Filter) *FilterIterator {
	return &FilterIterator{base: base, include: include, exclude: exclude}
}

// ID returns the id the iterator currently sits on.
func (f *FilterIterator) ID() (uint32, bool) { return f.base.ID() }

// Next advances to the next id satisfying include and not satisfying
// exclude, or returns false once the base iterator is exhausted.
func (f *FilterIterator) Next() bool {
	for f.base.Next() {
		id, _ := f.base.ID()
		if f.include != nil && !f.include.Contains(id) {
			continue
		}
		if f.exclude != nil && f.exclude.Contains(id) {
			continue
		}
		return true
	}
	return false
}
