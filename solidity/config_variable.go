// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/keelchain/keel/keel"
)

// ConfigVariable is a named uint64 parameter at a fixed storage slot with a
// compile-time default. A zero slot reads as the default, so a parameter
// that was never written (or written as zero) falls back to it.
type ConfigVariable struct {
	slot         keel.Bytes32
	name         string
	defaultValue uint64
}

func NewConfigVariable(name string, defaultValue uint64) *ConfigVariable {
	return &ConfigVariable{
		slot:         keel.BytesToBytes32([]byte(name)),
		name:         name,
		defaultValue: defaultValue,
	}
}

func (c *ConfigVariable) Name() string {
	return c.name
}

func (c *ConfigVariable) Slot() keel.Bytes32 {
	return c.slot
}

func (c *ConfigVariable) Default() uint64 {
	return c.defaultValue
}

// Get returns the stored value, or the default when the slot is empty.
func (c *ConfigVariable) Get(ctx *Context) (uint64, error) {
	storage, err := ctx.state.GetStorage(ctx.address, c.slot)
	if err != nil {
		return 0, err
	}
	num := new(big.Int).SetBytes(storage.Bytes())
	if num.Sign() == 0 {
		return c.defaultValue, nil
	}
	return num.Uint64(), nil
}

// Set stores the value at the slot.
func (c *ConfigVariable) Set(ctx *Context, value uint64) {
	ctx.state.SetStorage(ctx.address, c.slot, keel.BytesToBytes32(new(big.Int).SetUint64(value).Bytes()))
}
