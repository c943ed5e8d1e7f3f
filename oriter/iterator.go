package oriter

import "github.com/arcfts/searchcore/searchctx"

// OrIterator merges k Sources into a single ascending, deduplicated
// union sequence. Per spec.md §4.4 it special-cases k==1 (a plain
// pass-through) and k==2 (a two-pointer merge) since both
// are common and cheaper than the general minimum-of-k merge k>=3
// requires.
type OrIterator struct {
	sources []Source
	budget  *searchctx.Budget

	started bool
	id      uint32
	ok      bool
}

// New builds an OrIterator over sources. budget may be nil to disable
// cutoff checking.
func New(sources []Source, budget *searchctx.Budget) *OrIterator {
	return &OrIterator{sources: sources, budget: budget}
}

// ID returns the id the iterator currently sits on.
func (o *OrIterator) ID() (uint32, bool) { return o.id, o.ok }

// Next advances to the next id in the union, returning false once
// every source is exhausted or the search budget is spent.
func (o *OrIterator) Next() bool {
	if o.budget != nil && o.budget.Tick() {
		o.ok = false
		return false
	}
	switch len(o.sources) {
	case 0:
		o.ok = false
	case 1:
		o.ok = o.nextSingle()
	case 2:
		o.ok = o.nextPair()
	default:
		o.ok = o.nextKway()
	}
	return o.ok
}

func (o *OrIterator) nextSingle() bool {
	s := o.sources[0]
	if !o.started {
		o.started = true
		if id, ok := s.ID(); ok {
			o.id = id
			return true
		}
		return false
	}
	if !s.Advance() {
		return false
	}
	id, _ := s.ID()
	o.id = id
	return true
}

func (o *OrIterator) nextPair() bool {
	a, b := o.sources[0], o.sources[1]
	if o.started {
		if id, ok := a.ID(); ok && id == o.id {
			a.Advance()
		}
		if id, ok := b.ID(); ok && id == o.id {
			b.Advance()
		}
	}
	o.started = true

	aID, aOK := a.ID()
	bID, bOK := b.ID()
	switch {
	case !aOK && !bOK:
		return false
	case !bOK || (aOK && aID <= bID):
		o.id = aID
	default:
		o.id = bID
	}
	return true
}

// nextKway generalizes nextPair's two-pointer merge to k sources: every
// source currently sitting on the id just emitted is advanced one step,
// then the next union id is the minimum id among all still-live
// sources. Each source contributes its id to the stream exactly once.
func (o *OrIterator) nextKway() bool {
	if o.started {
		for _, s := range o.sources {
			if id, ok := s.ID(); ok && id == o.id {
				s.Advance()
			}
		}
	}
	o.started = true

	any := false
	var min uint32
	for _, s := range o.sources {
		if id, ok := s.ID(); ok && (!any || id < min) {
			min, any = id, true
		}
	}
	if !any {
		return false
	}
	o.id = min
	return true
}
