// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restaking

import (
	"encoding/binary"

	"github.com/keelchain/keel/keel"
)

// Subnetwork identifies a network's slice of the shared restaking protocol.
// The network address occupies the high 160 bits of the 32-byte word, the
// subnetwork index the low 96.
type Subnetwork keel.Bytes32

// NewSubnetwork derives the subnetwork identifier of a network address and
// index.
func NewSubnetwork(network keel.Address, index uint64) Subnetwork {
	var s Subnetwork
	copy(s[:20], network[:])
	binary.BigEndian.PutUint64(s[24:], index)
	return s
}

// Network extracts the network address.
func (s Subnetwork) Network() keel.Address {
	return keel.BytesToAddress(s[:20])
}

// Index extracts the subnetwork index.
func (s Subnetwork) Index() uint64 {
	return binary.BigEndian.Uint64(s[24:])
}

// Bytes returns the identifier as a byte slice.
func (s Subnetwork) Bytes() []byte {
	return s[:]
}

func (s Subnetwork) String() string {
	return keel.Bytes32(s).String()
}
