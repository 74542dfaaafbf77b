// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New("test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func Test_RevertsWrapped(t *testing.T) {
	revert := New("not enabled")

	// identity survives wrapping, both stdlib and pkg/errors style
	assert.True(t, IsRevertErr(fmt.Errorf("vault 0x01: %w", revert)))
	assert.True(t, IsRevertErr(pkgerrors.WithMessage(revert, "vault 0x01")))

	assert.True(t, errors.Is(pkgerrors.WithMessage(revert, "ctx"), revert))
	assert.False(t, errors.Is(New("not enabled"), revert)) // distinct conditions, same text
}
