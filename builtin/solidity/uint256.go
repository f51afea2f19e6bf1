// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/vechain/synstake/synstake"
)

// Uint256 is an unsigned 256-bit integer held in a single slot.
type Uint256 struct {
	context *Context
	pos     synstake.Bytes32
}

func NewUint256(context *Context, pos synstake.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

// name is the printable slot name, set for slots derived from a string.
func (u *Uint256) name() string {
	return string(bytes.TrimLeft(u.pos[:], "\x00"))
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) error {
	if value.Sign() < 0 {
		return fmt.Errorf("%s uint256 cannot be negative", u.name())
	}
	if value.BitLen() > 256 {
		return fmt.Errorf("uint256 overflow")
	}
	u.context.state.SetStorage(u.context.address, u.pos, synstake.BytesToBytes32(value.Bytes()))
	return nil
}

func (u *Uint256) Add(value *big.Int) error {
	if value.Sign() == 0 {
		return nil
	}
	storage, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(storage.Add(storage, value))
}

func (u *Uint256) Sub(value *big.Int) error {
	if value.Sign() == 0 {
		return nil
	}
	storage, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(storage.Sub(storage, value))
}
