// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package keel

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlake2b(t *testing.T) {
	// multi-part hashing equals single-part hashing of the concatenation
	assert.Equal(t, Blake2b([]byte("hello world")), Blake2b([]byte("hello"), []byte(" world")))

	assert.Equal(t, Blake2b([]byte("hello")), Blake2bFn(func(w io.Writer) {
		w.Write([]byte("hello"))
	}))

	assert.NotEqual(t, Blake2b([]byte("a")), Blake2b([]byte("b")))
	assert.False(t, Blake2b(nil).IsZero())
}

func TestKeccak256(t *testing.T) {
	// empty input vector
	assert.Equal(t,
		"0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		Keccak256().String())

	assert.Equal(t, Keccak256([]byte("hello world")), Keccak256([]byte("hello"), []byte(" world")))
}
