// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/lvldb"
	"github.com/keelchain/keel/state"
	"github.com/keelchain/keel/test/datagen"
)

type TestStruct struct {
	Field1 uint64
	Field2 uint64
	Addr1  keel.Address
	Bytes1 keel.Bytes32
}

// BigStruct spans multiple slots: 3 Bytes32 fields.
type BigStruct struct {
	A keel.Bytes32
	B keel.Bytes32
	C keel.Bytes32
}

// newTestContext returns a fresh Context backed by an in-memory store.
func newTestContext() *Context {
	store, _ := lvldb.NewMem()
	st := state.New(store)
	return NewContext(keel.Address{1}, st)
}

// SetupMapping returns a new Mapping over a fresh context.
func SetupMapping[V any]() *Mapping[keel.Bytes32, V] {
	ctx := newTestContext()
	return NewMapping[keel.Bytes32, V](ctx, keel.Bytes32{1})
}

// newRandomStruct generates a random TestStruct pointer.
func newRandomStruct() *TestStruct {
	return &TestStruct{
		Field1: 100,
		Field2: 200,
		Addr1:  datagen.RandAddress(),
		Bytes1: datagen.RandomHash(),
	}
}

// newBigStruct generates a random BigStruct pointer.
func newBigStruct() *BigStruct {
	return &BigStruct{
		A: datagen.RandomHash(),
		B: datagen.RandomHash(),
		C: datagen.RandomHash(),
	}
}

func TestMapping_SetGet_StructPointer(t *testing.T) {
	mapping := SetupMapping[*TestStruct]()
	key := datagen.RandomHash()
	value := newRandomStruct()

	t.Run("set then get returns the stored value", func(t *testing.T) {
		require.NoError(t, mapping.Set(key, value))

		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("set zero pointer clears storage and returns nil", func(t *testing.T) {
		require.NoError(t, mapping.Set(key, nil))

		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Nil(t, got)

		has, err := mapping.Has(key)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("get empty key returns nil", func(t *testing.T) {
		got, err := mapping.Get(datagen.RandomHash())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("pointer to zero struct clears storage", func(t *testing.T) {
		require.NoError(t, mapping.Set(key, value))
		require.NoError(t, mapping.Set(key, &TestStruct{}))

		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestMapping_SetGet_BigStruct(t *testing.T) {
	mapping := SetupMapping[*BigStruct]()
	key := datagen.RandomHash()
	value := newBigStruct()

	require.NoError(t, mapping.Set(key, value))

	got, err := mapping.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestMapping_SetGet_Address(t *testing.T) {
	mapping := SetupMapping[keel.Address]()
	key := datagen.RandomHash()
	value := datagen.RandAddress()

	t.Run("set then get address", func(t *testing.T) {
		require.NoError(t, mapping.Set(key, value))

		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("clear address by setting zero-value", func(t *testing.T) {
		require.NoError(t, mapping.Set(key, keel.Address{}))

		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Equal(t, keel.Address{}, got)

		has, err := mapping.Has(key)
		require.NoError(t, err)
		assert.False(t, has)
	})
}

func TestMapping_SetGet_Uint64(t *testing.T) {
	mapping := SetupMapping[uint64]()
	key := datagen.RandomHash()

	t.Run("set then get uint64", func(t *testing.T) {
		require.NoError(t, mapping.Set(key, uint64(12345)))

		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Equal(t, uint64(12345), got)
	})

	t.Run("clear uint64 by setting zero-value", func(t *testing.T) {
		require.NoError(t, mapping.Set(key, uint64(0)))

		got, err := mapping.Get(key)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), got)
	})
}

func TestMapping_DistinctKeysDistinctSlots(t *testing.T) {
	mapping := SetupMapping[uint64]()
	key1 := datagen.RandomHash()
	key2 := datagen.RandomHash()

	require.NoError(t, mapping.Set(key1, uint64(1)))
	require.NoError(t, mapping.Set(key2, uint64(2)))

	got1, err := mapping.Get(key1)
	require.NoError(t, err)
	got2, err := mapping.Get(key2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got1)
	assert.Equal(t, uint64(2), got2)
	assert.NotEqual(t, mapping.position(key1), mapping.position(key2))
}
