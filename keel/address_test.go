// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package keel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Nil(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	// without 0x prefix
	addr, err = ParseAddress("7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Nil(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	tests := []struct {
		s   string
		err string
	}{
		{"0x7567d83b7b8d80addcb281a71d54fc7b3364ff", "invalid length"},
		{"1x7567d83b7b8d80addcb281a71d54fc7b3364ffed", "invalid prefix"},
		{"0xzz67d83b7b8d80addcb281a71d54fc7b3364ffed", "encoding/hex: invalid byte: U+007A 'z'"},
	}
	for _, tt := range tests {
		_, err := ParseAddress(tt.s)
		assert.EqualError(t, err, tt.err)
	}
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, Address{}.IsZero())
	assert.False(t, MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed").IsZero())
}

func TestBytesToAddress(t *testing.T) {
	// cropped from the left
	assert.Equal(t, BytesToAddress([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}),
		BytesToAddress([]byte{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}))
	// extended from the left
	assert.Equal(t, "0x0000000000000000000000000000000000000001", BytesToAddress([]byte{1}).String())
}

func TestCreateContractAddress(t *testing.T) {
	creator := MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")

	a0 := CreateContractAddress(creator, 0)
	a1 := CreateContractAddress(creator, 1)

	assert.NotEqual(t, a0, a1)
	assert.Equal(t, a0, CreateContractAddress(creator, 0))
	assert.False(t, a0.IsZero())
}
