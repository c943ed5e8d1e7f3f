// Package kv defines the external key-value store contract the rule
// engine consumes (spec.md §6). The core never implements durable
// storage itself; it only depends on this interface. See kv/badgerstore
// for a reference adapter, which nothing in this module imports.
package kv

import "context"

// Store is the minimal key-value contract spec.md §6 requires. No
// transactional guarantees are required; single-key writes must be
// durable on return.
type Store interface {
	// Get returns the value stored at key, or ok=false if absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Insert writes value at key, overwriting any existing value.
	Insert(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// DeleteRange deletes every key in the half-open lexicographic range
	// [loKey, hiKey).
	DeleteRange(ctx context.Context, loKey, hiKey string) error

	// ScanFill enumerates values whose keys lie in [loKey, hiKey) in
	// lexicographic order, appending them to out and returning the
	// result. A single ScanFill call sees a consistent snapshot; there
	// is no cross-call consistency guarantee.
	ScanFill(ctx context.Context, loKey, hiKey string, out [][]byte) ([][]byte, error)
}

// Successor returns the lexicographic successor sentinel spec.md §6
// describes: a key strictly greater than every valid key under prefix.
// It increments the last byte of prefix; for the "_"-terminated
// prefixes of §6 this turns the trailing "_" into a backtick.
func Successor(prefix string) string {
	b := []byte(prefix)
	b[len(b)-1]++
	return string(b)
}
