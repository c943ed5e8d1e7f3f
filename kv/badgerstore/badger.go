// Package badgerstore is a reference kv.Store adapter over
// github.com/dgraph-io/badger/v4. No package or test of this module
// imports it; the rules/manager tests use an in-memory store. spec.md §1
// treats durable storage as an external collaborator the core only
// consumes through the kv.Store interface.
package badgerstore

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v4"
)

// Store wraps a *badger.DB to satisfy kv.Store.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) a Badger database rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger db at %s", dir)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get implements kv.Store.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			value = append([]byte(nil), v...)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "get %s", key)
	}
	return value, true, nil
}

// Insert implements kv.Store. Badger transactions commit durably on
// return, satisfying the "single-key writes must be durable on
// return" requirement of spec.md §6.
func (s *Store) Insert(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return errors.Wrapf(err, "insert %s", key)
	}
	return nil
}

// Remove implements kv.Store. Deleting an absent key is not an error.
func (s *Store) Remove(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return errors.Wrapf(err, "remove %s", key)
	}
	return nil
}

// DeleteRange implements kv.Store over the half-open range [lo, hi).
// Badger has no native range-delete, so this collects matching keys
// under one read transaction and deletes them in a follow-up write
// transaction, batched to stay under Badger's per-transaction size
// limit.
func (s *Store) DeleteRange(_ context.Context, lo, hi string) error {
	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek([]byte(lo)); it.Valid(); it.Next() {
			k := it.Item().KeyCopy(nil)
			if string(k) >= hi {
				break
			}
			keys = append(keys, k)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "scan range [%s, %s)", lo, hi)
	}

	const batchSize = 1000
	for i := 0; i < len(keys); i += batchSize {
		end := min(i+batchSize, len(keys))
		err := s.db.Update(func(txn *badger.Txn) error {
			for _, k := range keys[i:end] {
				if err := txn.Delete(k); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "delete range batch [%s, %s)", lo, hi)
		}
	}
	return nil
}

// ScanFill implements kv.Store over the half-open range [lo, hi),
// appending values in ascending key order.
func (s *Store) ScanFill(_ context.Context, lo, hi string, out [][]byte) ([][]byte, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek([]byte(lo)); it.Valid(); it.Next() {
			item := it.Item()
			if string(item.Key()) >= hi {
				break
			}
			if err := item.Value(func(v []byte) error {
				out = append(out, append([]byte(nil), v...))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scan fill [%s, %s)", lo, hi)
	}
	return out, nil
}
