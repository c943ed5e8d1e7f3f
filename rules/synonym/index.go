package synonym

import (
	"context"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/arcfts/searchcore/art"
	"github.com/arcfts/searchcore/internal/obs"
	"github.com/arcfts/searchcore/internal/outcome"
	"github.com/arcfts/searchcore/kv"
	"github.com/arcfts/searchcore/rules/tokenize"
)

const itemKeyPrefix = "$CY_"

func itemKey(index, id string) string { return itemKeyPrefix + index + "_" + id }

// Index is a single named synonym collection, per spec.md §4.5/§6.
// Internally synchronized with a readers-writer lock (per spec.md §5:
// "internally synchronized with a readers-writer lock around the
// definitions map and the auxiliary ART. Reductions acquire the shared
// lock; add/remove acquire the exclusive lock").
type Index struct {
	name  string
	store kv.Store

	mu          sync.RWMutex
	definitions map[string]*Synonym
	terms       *art.Tree // indexed phrase -> posting of internal synonym indices
	nextInt     uint32
	internalID  map[string]uint32 // synonym.ID -> internal posting id
}

// New creates an empty synonym index bound to store under name.
func New(name string, store kv.Store) *Index {
	return &Index{
		name:        name,
		store:       store,
		definitions: make(map[string]*Synonym),
		terms:       &art.Tree{},
		internalID:  make(map[string]uint32),
	}
}

// AddRule validates, stores, and indexes s, replacing any existing rule
// with the same id first, per spec.md §4.5: "If the id already exists,
// remove first."
func (idx *Index) AddRule(ctx context.Context, s *Synonym) *outcome.Outcome {
	if err := validate(s); err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.definitions[s.ID]; exists {
		idx.removeLocked(s.ID)
	}

	idx.nextInt++
	internal := idx.nextInt
	idx.internalID[s.ID] = internal
	idx.definitions[s.ID] = s

	for _, form := range s.IndexedForms() {
		key := []byte(tokenize.Join(form))
		idx.terms.Insert(key, internal, 0, nil)
	}

	body, err := sonic.Marshal(s)
	if err != nil {
		return outcome.Validation("marshal synonym: %v", err)
	}
	if err := idx.store.Insert(ctx, itemKey(idx.name, s.ID), body); err != nil {
		return outcome.Storage(err, "persist synonym %s", s.ID)
	}
	obs.L().Info("synonym rule added")
	return nil
}

// RemoveRule deletes the persisted record and un-indexes every form of
// the rule, removing the ART leaf entirely once its posting is empty.
func (idx *Index) RemoveRule(ctx context.Context, id string) *outcome.Outcome {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.definitions[id]; !exists {
		return outcome.NotFound("synonym rule not found: %s", id)
	}
	idx.removeLocked(id)

	if err := idx.store.Remove(ctx, itemKey(idx.name, id)); err != nil {
		return outcome.Storage(err, "remove synonym %s", id)
	}
	return nil
}

// removeLocked un-indexes and forgets id; caller holds idx.mu.
func (idx *Index) removeLocked(id string) {
	s, ok := idx.definitions[id]
	if !ok {
		return
	}
	internal := idx.internalID[id]
	for _, form := range s.IndexedForms() {
		key := []byte(tokenize.Join(form))
		idx.terms.Delete(key, internal)
	}
	delete(idx.definitions, id)
	delete(idx.internalID, id)
}

// Get returns the rule with id, or nil.
func (idx *Index) Get(id string) *Synonym {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.definitions[id]
}

// List returns every rule in the index, in no particular order.
func (idx *Index) List() []*Synonym {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]*Synonym, 0, len(idx.definitions))
	for _, s := range idx.definitions {
		out = append(out, s)
	}
	return out
}

// LoadFromStore reconstructs the in-memory definitions and auxiliary
// ART from every persisted item under this index's key prefix, per
// spec.md §4.5's "loaded at startup by scanning the key-value store
// under a well-known prefix".
func (idx *Index) LoadFromStore(ctx context.Context) *outcome.Outcome {
	lo := itemKeyPrefix + idx.name + "_"
	hi := kv.Successor(lo)
	bodies, err := idx.store.ScanFill(ctx, lo, hi, nil)
	if err != nil {
		return outcome.Storage(err, "scan synonym items for index %s", idx.name)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, body := range bodies {
		var s Synonym
		if err := sonic.Unmarshal(body, &s); err != nil {
			return outcome.Storage(err, "decode synonym item for index %s", idx.name)
		}
		idx.nextInt++
		idx.internalID[s.ID] = idx.nextInt
		idx.definitions[s.ID] = &s
		for _, form := range s.IndexedForms() {
			key := []byte(tokenize.Join(form))
			idx.terms.Insert(key, idx.nextInt, 0, nil)
		}
	}
	return nil
}

// DeleteRange removes every persisted item under this index's key
// prefix, per spec.md §3's index-removal contract.
func (idx *Index) DeleteRange(ctx context.Context) error {
	lo := itemKeyPrefix + idx.name + "_"
	return idx.store.DeleteRange(ctx, lo, kv.Successor(lo))
}

func validate(s *Synonym) *outcome.Outcome {
	if s.ID == "" {
		return outcome.Validation("synonym id must not be empty")
	}
	if len(s.Synonyms) == 0 {
		return outcome.Validation("synonym must list at least one synonym vector")
	}
	for _, v := range s.Synonyms {
		if len(v) == 0 {
			return outcome.Validation("synonym vectors must be non-empty")
		}
		for _, tok := range v {
			if tok == "" {
				return outcome.Validation("synonym tokens must be non-empty")
			}
		}
	}
	return nil
}
