// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/keelchain/keel/kv"
)

// Stage abstracts the committing of accumulated state changes.
type Stage struct {
	store   kv.Store
	changes map[storageKey]rlp.RawValue
}

// Commit commits all changes into the store atomically.
func (s *Stage) Commit() error {
	batch := s.store.NewBatch()
	for k, v := range s.changes {
		if len(v) == 0 {
			if err := batch.Delete(k.storeKey()); err != nil {
				return &Error{err}
			}
			continue
		}
		if err := batch.Put(k.storeKey(), v); err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	metricStorageCommitCount().Add(int64(len(s.changes)))
	return nil
}

// Len returns the number of distinct slots to be committed.
func (s *Stage) Len() int {
	return len(s.changes)
}
