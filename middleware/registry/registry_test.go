// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/lvldb"
	"github.com/keelchain/keel/solidity"
	"github.com/keelchain/keel/state"
	"github.com/keelchain/keel/test/datagen"
)

func newTestRegistry(t *testing.T) *Registry {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(store)
	return New(solidity.NewContext(keel.Address{1}, st), "test-registry")
}

func TestRegistryAppend(t *testing.T) {
	reg := newTestRegistry(t)
	key := datagen.RandAddress()
	pinned := datagen.RandAddress()

	entry, err := reg.Get(key)
	require.NoError(t, err)
	assert.Nil(t, entry)

	require.NoError(t, reg.Append(key, pinned, 1000))

	entry, err = reg.Get(key)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, uint64(1000), entry.EnabledAt)
	assert.Equal(t, uint64(0), entry.DisabledAt)
	assert.Equal(t, pinned, entry.Pinned)
	assert.True(t, entry.IsEnabled())

	has, err := reg.Contains(key)
	require.NoError(t, err)
	assert.True(t, has)

	count, err := reg.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	assert.ErrorIs(t, reg.Append(key, pinned, 2000), ErrAlreadyAdded)
	assert.ErrorContains(t, reg.Append(datagen.RandAddress(), pinned, 0), "zero registration time")
}

func TestRegistryEnableDisable(t *testing.T) {
	reg := newTestRegistry(t)
	key := datagen.RandAddress()

	assert.ErrorIs(t, reg.Enable(key), ErrNotListed)
	assert.ErrorIs(t, reg.Disable(key, 100), ErrNotListed)

	require.NoError(t, reg.Append(key, keel.Address{}, 1000))
	assert.ErrorIs(t, reg.Enable(key), ErrAlreadyEnabled)

	require.NoError(t, reg.Disable(key, 2000))
	entry, err := reg.Get(key)
	require.NoError(t, err)
	assert.False(t, entry.IsEnabled())
	assert.Equal(t, uint64(2000), entry.DisabledAt)
	assert.ErrorIs(t, reg.Disable(key, 3000), ErrNotEnabled)

	require.NoError(t, reg.Enable(key))
	entry, err = reg.Get(key)
	require.NoError(t, err)
	assert.True(t, entry.IsEnabled())
	// re-enabling keeps the original window opening
	assert.Equal(t, uint64(1000), entry.EnabledAt)
}

func TestRegistryRemove(t *testing.T) {
	reg := newTestRegistry(t)
	keys := datagen.RandAddresses(3)

	assert.ErrorIs(t, reg.Remove(datagen.RandAddress()), ErrNotListed)

	for _, key := range keys {
		require.NoError(t, reg.Append(key, keel.Address{}, 500))
	}

	require.NoError(t, reg.Remove(keys[1]))

	entry, err := reg.Get(keys[1])
	require.NoError(t, err)
	assert.Nil(t, entry)

	has, err := reg.Contains(keys[1])
	require.NoError(t, err)
	assert.False(t, has)

	count, err := reg.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	var listed []keel.Address
	require.NoError(t, reg.Iter(func(key keel.Address, _ *Entry) error {
		listed = append(listed, key)
		return nil
	}))
	assert.Equal(t, []keel.Address{keys[0], keys[2]}, listed)

	// a removed key can be listed again with a fresh window
	require.NoError(t, reg.Append(keys[1], keel.Address{}, 900))
	entry, err = reg.Get(keys[1])
	require.NoError(t, err)
	assert.Equal(t, uint64(900), entry.EnabledAt)
}

func TestRegistryIterOrder(t *testing.T) {
	reg := newTestRegistry(t)
	keys := datagen.RandAddresses(5)
	for i, key := range keys {
		require.NoError(t, reg.Append(key, keel.Address{}, uint64(100+i)))
	}

	var listed []keel.Address
	require.NoError(t, reg.Iter(func(key keel.Address, entry *Entry) error {
		require.NotNil(t, entry)
		listed = append(listed, key)
		return nil
	}))
	assert.Equal(t, keys, listed)
}

func TestWasActiveAt(t *testing.T) {
	tests := []struct {
		name       string
		enabledAt  uint64
		disabledAt uint64
		ts         uint64
		active     bool
	}{
		{"never enabled", 0, 0, 100, false},
		{"before window", 100, 0, 99, false},
		{"at opening", 100, 0, 100, true},
		{"open window", 100, 0, 1 << 40, true},
		{"inside closed window", 100, 200, 150, true},
		{"at closing", 100, 200, 200, true},
		{"after closing", 100, 200, 201, false},
		{"point window", 100, 100, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, WasActiveAt(tt.enabledAt, tt.disabledAt, tt.ts))
			entry := &Entry{EnabledAt: tt.enabledAt, DisabledAt: tt.disabledAt}
			assert.Equal(t, tt.active, entry.WasActiveAt(tt.ts))
		})
	}
}
