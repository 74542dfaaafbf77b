// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/keelchain/keel/keel"
)

// Key is the constraint for mapping keys, which must expose their raw bytes
// for slot derivation.
type Key interface {
	Bytes() []byte
}

// Mapping is a storage-backed map. Each entry lives in its own slot, derived
// from the key and the mapping's base position.
type Mapping[K Key, V any] struct {
	context *Context
	basePos keel.Bytes32
}

func NewMapping[K Key, V any](context *Context, slot keel.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{
		context: context,
		basePos: slot,
	}
}

// position derives the storage slot of a key.
func (m *Mapping[K, V]) position(key K) keel.Bytes32 {
	return keel.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get loads the value stored under key. An empty slot yields the zero value,
// which for pointer types is nil.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		if rv := reflect.ValueOf(&value).Elem(); rv.Kind() == reflect.Pointer {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set stores value under key. A zero value (or nil / pointer-to-zero)
// clears the slot.
func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || rv.IsZero() {
			return nil, nil
		}
		if rv.Kind() == reflect.Pointer && rv.Elem().IsZero() {
			return nil, nil
		}
		return rlp.EncodeToBytes(value)
	})
}

// Has reports whether the slot under key holds a value.
func (m *Mapping[K, V]) Has(key K) (bool, error) {
	raw, err := m.context.state.GetRawStorage(m.context.address, m.position(key))
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}
