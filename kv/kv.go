// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the interfaces of the underlying key-value store.
package kv

// Getter wraps methods for getting kvs.
type Getter interface {
	// Get value for given key.
	// An error returned if key not found. It can be checked via IsNotFound.
	Get(key []byte) (value []byte, err error)
	Has(key []byte) (bool, error)
	IsNotFound(error) bool
}

// Putter wraps methods for putting kvs.
type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// GetPutter wraps methods for getting/putting kvs.
type GetPutter interface {
	Getter
	Putter
}

// Batch defines batch of putting ops, committed atomically by Write.
type Batch interface {
	Putter

	Len() int
	Write() error
}

// Range is the key range of an iteration, [Start, Limit).
type Range struct {
	Start []byte
	Limit []byte
}

// Iterator iterates kvs.
type Iterator interface {
	Next() bool
	Release()
	Error() error

	Key() []byte
	Value() []byte
}

// Store fully describes a key-value store.
type Store interface {
	GetPutter

	NewBatch() Batch
	NewIterator(r Range) Iterator
}

// StoreCloser is a store with a close method.
type StoreCloser interface {
	Store
	Close() error
}
