// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keelchain/keel/keel"
)

func TestConfigVariable(t *testing.T) {
	ctx := newTestContext()
	v := NewConfigVariable("test-config-var", 86400)

	assert.Equal(t, "test-config-var", v.Name())
	assert.Equal(t, keel.BytesToBytes32([]byte("test-config-var")), v.Slot())
	assert.Equal(t, uint64(86400), v.Default())

	got, err := v.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(86400), got, "empty slot reads as default")

	v.Set(ctx, 7200)
	got, err = v.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(7200), got)

	v.Set(ctx, 0)
	got, err = v.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(86400), got, "zero write falls back to default")
}

func TestConfigVariableDistinctSlots(t *testing.T) {
	ctx := newTestContext()
	a := NewConfigVariable("config-var-a", 1)
	b := NewConfigVariable("config-var-b", 2)

	a.Set(ctx, 100)

	got, err := b.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got)
}
