// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/synstake/synstake"
)

// Address is an account address held in a single slot.
type Address struct {
	context *Context
	pos     synstake.Bytes32
}

func NewAddress(context *Context, pos synstake.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (synstake.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return synstake.Address{}, err
	}
	return synstake.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr *synstake.Address) {
	if addr == nil {
		a.context.state.SetStorage(a.context.address, a.pos, synstake.Bytes32{})
		return
	}
	a.context.state.SetStorage(a.context.address, a.pos, synstake.BytesToBytes32(addr.Bytes()))
}
