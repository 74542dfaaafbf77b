// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/kv"
	"github.com/keelchain/keel/stackedmap"
)

// storageSpace partitions the backing store so that storage slots never
// collide with keys written by other components sharing the same db.
const storageSpace = kv.Bucket("s")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// State manages contract storage slots.
// All writes are journaled and revertable to a checkpoint, so a failed
// operation leaves no partial mutation behind.
type State struct {
	store kv.Store
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

type storageKey struct {
	addr keel.Address
	key  keel.Bytes32
}

func (k storageKey) storeKey() []byte {
	return append(append(make([]byte, 0, len(k.addr)+len(k.key)), k.addr[:]...), k.key[:]...)
}

// New create state object, with the given store as the committed source.
func New(store kv.Store) *State {
	bucketed := storageSpace.NewStore(store)
	state := State{store: bucketed}
	state.sm = stackedmap.New(func(key storageKey) (rlp.RawValue, bool, error) {
		raw, err := bucketed.Get(key.storeKey())
		if err != nil {
			if bucketed.IsNotFound(err) {
				return nil, true, nil
			}
			return nil, false, err
		}
		return raw, true, nil
	})
	// the initial level, so that writes are legal right away
	state.sm.Push()
	return &state
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr keel.Address, key keel.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw.
// An empty raw marks the slot deleted.
func (s *State) SetRawStorage(addr keel.Address, key keel.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
	metricStorageWriteCount().Add(1)
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr keel.Address, key keel.Bytes32) (keel.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return keel.Bytes32{}, err
	}
	if len(raw) == 0 {
		return keel.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return keel.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return keel.Blake2b(raw), nil
	}
	return keel.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr keel.Address, key, value keel.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr keel.Address, key keel.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr keel.Address, key keel.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// Stage makes a stage object to commit all journaled changes.
func (s *State) Stage() *Stage {
	// squash the journal, last write wins
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(key storageKey, value rlp.RawValue) bool {
		changes[key] = value
		return true
	})
	return &Stage{store: s.store, changes: changes}
}
