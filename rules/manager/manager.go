// Package manager owns the Synonym Index Manager and Curation Index
// Manager of spec.md §4.6/§9: a named registry of per-collection rule
// indices, created on first upsert, enumerated at startup by scanning
// the key-value store, and destroyed (with a store range-delete) by
// remove.
//
// spec.md §9's Design Note "Singletons" calls out that the original
// implementation held these as process-wide singletons and recommends
// reimplementing them as explicit owned handles instead: "pass it by
// reference through call chains rather than reaching into a global.
// This makes tests isolated and eliminates the teardown-ordering hazard
// between static destructors." Both managers here are constructed by
// the embedding caller and carry no package-level state.
package manager

import (
	"context"
	"sort"
	"sync"

	"github.com/arcfts/searchcore/internal/obs"
	"github.com/arcfts/searchcore/internal/outcome"
	"github.com/arcfts/searchcore/kv"
	"github.com/arcfts/searchcore/rules/curation"
	"github.com/arcfts/searchcore/rules/synonym"
)

const (
	curationRegistryPrefix = "$OISET_"
	synonymRegistryPrefix  = "$SI_"
)

// SynonymIndexManager owns every synonym.Index for a store, keyed by
// name. get/add/remove/list/upsert/delete are safe for concurrent use
// by the embedding caller (spec.md §5: "thread-safe via caller-provided
// synchronization; the core does not itself serialize across indices" —
// here the manager itself provides that synchronization so callers
// need not).
type SynonymIndexManager struct {
	store kv.Store

	mu      sync.RWMutex
	indices map[string]*synonym.Index
}

// NewSynonymIndexManager returns an empty manager bound to store. Call
// LoadAll to populate it from a previously-persisted registry.
func NewSynonymIndexManager(store kv.Store) *SynonymIndexManager {
	return &SynonymIndexManager{store: store, indices: make(map[string]*synonym.Index)}
}

// LoadAll enumerates the registry under $SI_ and loads every named
// index's rules, per spec.md §6.
func (m *SynonymIndexManager) LoadAll(ctx context.Context) *outcome.Outcome {
	names, err := scanRegistryNames(ctx, m.store, synonymRegistryPrefix)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, name := range names {
		idx := synonym.New(name, m.store)
		if err := idx.LoadFromStore(ctx); err != nil {
			return err
		}
		m.indices[name] = idx
	}
	return nil
}

// Upsert creates the named index if absent (registering it under
// $SI_<name>) and returns it.
func (m *SynonymIndexManager) Upsert(ctx context.Context, name string) (*synonym.Index, *outcome.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx, ok := m.indices[name]; ok {
		return idx, nil
	}
	if err := m.store.Insert(ctx, synonymRegistryPrefix+name, []byte(name)); err != nil {
		return nil, outcome.Storage(err, "register synonym index %s", name)
	}
	idx := synonym.New(name, m.store)
	m.indices[name] = idx
	obs.L().Info("synonym index created")
	return idx, nil
}

// Get returns the named index, or nil if it does not exist.
func (m *SynonymIndexManager) Get(name string) *synonym.Index {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indices[name]
}

// List returns every index name currently registered, sorted.
func (m *SynonymIndexManager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.indices)
}

// Remove destroys the named index: its registry entry, every item
// under its key prefix, and its in-memory handle.
func (m *SynonymIndexManager) Remove(ctx context.Context, name string) *outcome.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, ok := m.indices[name]
	if !ok {
		return outcome.NotFound("synonym index not found: %s", name)
	}
	if err := idx.DeleteRange(ctx); err != nil {
		return outcome.Storage(err, "range-delete synonym index %s", name)
	}
	if err := m.store.Remove(ctx, synonymRegistryPrefix+name); err != nil {
		return outcome.Storage(err, "unregister synonym index %s", name)
	}
	delete(m.indices, name)
	return nil
}

// CurationIndexManager is the curation-side counterpart of
// SynonymIndexManager, registered under $OISET_ per spec.md §6.
type CurationIndexManager struct {
	store kv.Store

	mu      sync.RWMutex
	indices map[string]*curation.Index
}

// NewCurationIndexManager returns an empty manager bound to store.
func NewCurationIndexManager(store kv.Store) *CurationIndexManager {
	return &CurationIndexManager{store: store, indices: make(map[string]*curation.Index)}
}

// LoadAll enumerates the registry under $OISET_ and loads every named
// index's rules.
func (m *CurationIndexManager) LoadAll(ctx context.Context) *outcome.Outcome {
	names, err := scanRegistryNames(ctx, m.store, curationRegistryPrefix)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, name := range names {
		idx := curation.New(name, m.store)
		if err := idx.LoadFromStore(ctx); err != nil {
			return err
		}
		m.indices[name] = idx
	}
	return nil
}

// Upsert creates the named index if absent and returns it.
func (m *CurationIndexManager) Upsert(ctx context.Context, name string) (*curation.Index, *outcome.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx, ok := m.indices[name]; ok {
		return idx, nil
	}
	if err := m.store.Insert(ctx, curationRegistryPrefix+name, []byte(name)); err != nil {
		return nil, outcome.Storage(err, "register curation index %s", name)
	}
	idx := curation.New(name, m.store)
	m.indices[name] = idx
	obs.L().Info("curation index created")
	return idx, nil
}

// Get returns the named index, or nil if it does not exist.
func (m *CurationIndexManager) Get(name string) *curation.Index {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indices[name]
}

// List returns every index name currently registered, sorted.
func (m *CurationIndexManager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.indices)
}

// Remove destroys the named index: its registry entry, every item
// under its key prefix, and its in-memory handle.
func (m *CurationIndexManager) Remove(ctx context.Context, name string) *outcome.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, ok := m.indices[name]
	if !ok {
		return outcome.NotFound("curation index not found: %s", name)
	}
	if err := idx.DeleteRange(ctx); err != nil {
		return outcome.Storage(err, "range-delete curation index %s", name)
	}
	if err := m.store.Remove(ctx, curationRegistryPrefix+name); err != nil {
		return outcome.Storage(err, "unregister curation index %s", name)
	}
	delete(m.indices, name)
	return nil
}

func scanRegistryNames(ctx context.Context, store kv.Store, prefix string) ([]string, *outcome.Outcome) {
	bodies, err := store.ScanFill(ctx, prefix, kv.Successor(prefix), nil)
	if err != nil {
		return nil, outcome.Storage(err, "scan registry %s", prefix)
	}
	names := make([]string, 0, len(bodies))
	for _, b := range bodies {
		names = append(names, string(b))
	}
	sort.Strings(names)
	return names, nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
