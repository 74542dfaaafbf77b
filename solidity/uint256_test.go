// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/test/datagen"
)

func TestUint256(t *testing.T) {
	ctx := newTestContext()
	counter := NewUint256(ctx, keel.Bytes32{1})

	value, err := counter.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(0), value)

	counter.Set(big.NewInt(100))
	value, err = counter.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(100), value)

	assert.NoError(t, counter.Add(big.NewInt(50)))
	value, err = counter.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(150), value)

	assert.NoError(t, counter.Sub(big.NewInt(150)))
	value, err = counter.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(0), value)
}

func TestAddress(t *testing.T) {
	ctx := newTestContext()
	address := NewAddress(ctx, keel.Bytes32{1})

	value := datagen.RandAddress()

	address.Set(&value)
	retrievedValue, err := address.Get()
	assert.NoError(t, err)
	assert.Equal(t, value, retrievedValue)

	address.Set(nil)
	retrievedValue, err = address.Get()
	assert.NoError(t, err)
	assert.Equal(t, keel.Address{}, retrievedValue)

	assert.Equal(t, keel.Address{1}, ctx.Address())
	assert.Equal(t, ctx.state, ctx.State())
}

func TestBytes32(t *testing.T) {
	ctx := newTestContext()
	slot := NewBytes32(ctx, keel.Bytes32{1})

	value := datagen.RandomHash()

	slot.Set(&value)
	retrievedValue, err := slot.Get()
	assert.NoError(t, err)
	assert.Equal(t, value, retrievedValue)

	slot.Set(nil)
	retrievedValue, err = slot.Get()
	assert.NoError(t, err)
	assert.Equal(t, keel.Bytes32{}, retrievedValue)
}
