package curation

import (
	"context"
	"sort"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/arcfts/searchcore/internal/obs"
	"github.com/arcfts/searchcore/internal/outcome"
	"github.com/arcfts/searchcore/kv"
)

const itemKeyPrefix = "collection_curation_set_"

func itemKey(index, id string) string { return itemKeyPrefix + index + "_" + id }

// Index is a single named curation collection, per spec.md §4.6/§6.
// Unlike the synonym index it needs no auxiliary ART: rule matching is
// a linear scan over the (typically small) rule set, partitioned by
// tag group. It is internally synchronized with a readers-writer lock
// per spec.md §5: evaluation acquires the shared lock, add/remove the
// exclusive lock.
type Index struct {
	name  string
	store kv.Store

	mu    sync.RWMutex
	rules map[string]*Curation
}

// New creates an empty curation index bound to store under name.
func New(name string, store kv.Store) *Index {
	return &Index{name: name, store: store, rules: make(map[string]*Curation)}
}

// AddRule validates, persists, and indexes c, replacing any existing
// rule with the same id.
func (idx *Index) AddRule(ctx context.Context, c *Curation) *outcome.Outcome {
	if err := Validate(c); err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	body, err := sonic.Marshal(c)
	if err != nil {
		return outcome.Validation("marshal curation: %v", err)
	}
	if err := idx.store.Insert(ctx, itemKey(idx.name, c.ID), body); err != nil {
		return outcome.Storage(err, "persist curation %s", c.ID)
	}
	idx.rules[c.ID] = c
	obs.L().Info("curation rule added")
	return nil
}

// RemoveRule deletes the persisted record and forgets c.
func (idx *Index) RemoveRule(ctx context.Context, id string) *outcome.Outcome {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.rules[id]; !exists {
		return outcome.NotFound("curation rule not found: %s", id)
	}
	if err := idx.store.Remove(ctx, itemKey(idx.name, id)); err != nil {
		return outcome.Storage(err, "remove curation %s", id)
	}
	delete(idx.rules, id)
	return nil
}

// Get returns the rule with id, or nil.
func (idx *Index) Get(id string) *Curation {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.rules[id]
}

// List returns every rule in the index, ordered by ascending id.
func (idx *Index) List() []*Curation {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]*Curation, 0, len(idx.rules))
	for _, c := range idx.rules {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Evaluate runs Evaluate(q, nowUnix) over every rule currently held by
// the index, under the shared lock.
func (idx *Index) Evaluate(q Query, nowUnix int64) *Decision {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	rules := make([]*Curation, 0, len(idx.rules))
	for _, c := range idx.rules {
		rules = append(rules, c)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return Evaluate(rules, q, nowUnix)
}

// LoadFromStore reconstructs the in-memory rule set from every
// persisted item under this index's key prefix, per spec.md §4.6's
// "loaded at startup by scanning the key-value store under a
// well-known prefix".
func (idx *Index) LoadFromStore(ctx context.Context) *outcome.Outcome {
	lo := itemKeyPrefix + idx.name + "_"
	hi := kv.Successor(lo)
	bodies, err := idx.store.ScanFill(ctx, lo, hi, nil)
	if err != nil {
		return outcome.Storage(err, "scan curation items for index %s", idx.name)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, body := range bodies {
		var c Curation
		if err := sonic.Unmarshal(body, &c); err != nil {
			return outcome.Storage(err, "decode curation item for index %s", idx.name)
		}
		idx.rules[c.ID] = &c
	}
	return nil
}

// DeleteRange removes every persisted item under this index's key
// prefix, per spec.md §3's "destroyed by remove, which also
// range-deletes the store prefix owned by the index".
func (idx *Index) DeleteRange(ctx context.Context) error {
	lo := itemKeyPrefix + idx.name + "_"
	return idx.store.DeleteRange(ctx, lo, kv.Successor(lo))
}
