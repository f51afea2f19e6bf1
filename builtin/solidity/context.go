// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solidity lays typed values out over the storage slots of a ledger module.
package solidity

import (
	"github.com/vechain/synstake/state"
	"github.com/vechain/synstake/synstake"
)

// Context binds storage values to the module address they live under.
type Context struct {
	address synstake.Address
	state   *state.State
}

func NewContext(address synstake.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) Address() synstake.Address {
	return c.address
}
