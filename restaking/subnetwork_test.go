// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restaking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/test/datagen"
)

func TestSubnetwork(t *testing.T) {
	network := datagen.RandAddress()

	s := NewSubnetwork(network, 0)
	assert.Equal(t, network, s.Network())
	assert.Equal(t, uint64(0), s.Index())

	// address sits in the high 160 bits, index in the low bits
	assert.Equal(t, network[:], s[:20])
	assert.Equal(t, make([]byte, 12), s.Bytes()[20:])

	s = NewSubnetwork(network, 7)
	assert.Equal(t, network, s.Network())
	assert.Equal(t, uint64(7), s.Index())
	assert.NotEqual(t, NewSubnetwork(network, 0), s)

	assert.Equal(t, keel.Bytes32(s).String(), s.String())
}
