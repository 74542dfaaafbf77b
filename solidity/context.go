// Copyright (c) 2026 The Keel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solidity provides storage wrappers that mirror the slot layout
// conventions of Solidity contracts: mappings, value slots and derived
// positions, all persisted through the state journal.
package solidity

import (
	"github.com/keelchain/keel/keel"
	"github.com/keelchain/keel/state"
)

// Context carries the storage scope of a built-in contract:
// the contract address and the backing state.
type Context struct {
	address keel.Address
	state   *state.State
}

func NewContext(address keel.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) Address() keel.Address {
	return c.address
}
