// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is a minimal fungible token keeper: balances, allowances and supply held in module
// storage. It has no fee policy.
package token

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/vechain/synstake/builtin/solidity"
	"github.com/vechain/synstake/state"
	"github.com/vechain/synstake/synstake"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrNegativeAmount        = errors.New("negative amount")
)

var (
	slotBalances    = synstake.BytesToBytes32([]byte("balances"))
	slotAllowances  = synstake.BytesToBytes32([]byte("allowances"))
	slotTotalSupply = synstake.BytesToBytes32([]byte("total-supply"))
)

type Token struct {
	addr       synstake.Address
	balances   *solidity.Mapping[synstake.Address, *big.Int]
	allowances *solidity.Mapping[synstake.Bytes32, *big.Int]
	supply     *solidity.Uint256
}

func New(addr synstake.Address, state *state.State) *Token {
	sctx := solidity.NewContext(addr, state)
	return &Token{
		addr:       addr,
		balances:   solidity.NewMapping[synstake.Address, *big.Int](sctx, slotBalances),
		allowances: solidity.NewMapping[synstake.Bytes32, *big.Int](sctx, slotAllowances),
		supply:     solidity.NewUint256(sctx, slotTotalSupply),
	}
}

func allowanceKey(owner, spender synstake.Address) synstake.Bytes32 {
	return synstake.Blake2b(owner.Bytes(), spender.Bytes())
}

func checkAmount(amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Address returns the token's module address.
func (t *Token) Address() synstake.Address {
	return t.addr
}

func (t *Token) TotalSupply() (*big.Int, error) {
	return t.supply.Get()
}

func (t *Token) BalanceOf(holder synstake.Address) (*big.Int, error) {
	return t.balances.Get(holder)
}

func (t *Token) Allowance(owner, spender synstake.Address) (*big.Int, error) {
	return t.allowances.Get(allowanceKey(owner, spender))
}

// Mint credits amount to holder and grows the supply.
func (t *Token) Mint(holder synstake.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	bal, err := t.balances.Get(holder)
	if err != nil {
		return err
	}
	if err := t.supply.Add(amount); err != nil {
		return err
	}
	return t.balances.Set(holder, bal.Add(bal, amount))
}

// Approve sets the amount spender may move out of owner's balance.
func (t *Token) Approve(owner, spender synstake.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	return t.allowances.Set(allowanceKey(owner, spender), new(big.Int).Set(amount))
}

func (t *Token) Transfer(from, to synstake.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if amount.Sign() == 0 || from == to {
		return nil
	}
	fromBal, err := t.balances.Get(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	toBal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	if err := t.balances.Set(from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	return t.balances.Set(to, toBal.Add(toBal, amount))
}

// TransferFrom moves amount from owner to recipient, spending spender's allowance.
func (t *Token) TransferFrom(spender, owner, recipient synstake.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	key := allowanceKey(owner, spender)
	allowance, err := t.allowances.Get(key)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := t.Transfer(owner, recipient, amount); err != nil {
		return err
	}
	return t.allowances.Set(key, allowance.Sub(allowance, amount))
}

// Custody returns the view of the token held by holder, usable as a ledger asset.
func (t *Token) Custody(holder synstake.Address) *Custody {
	return &Custody{token: t, holder: holder}
}

// Custody moves a token in and out of one holder's account. Pulls spend the allowance the payer
// granted to the holder.
type Custody struct {
	token  *Token
	holder synstake.Address
}

func (c *Custody) Token() *Token {
	return c.token
}

// PullFrom moves amount from payer into the holder.
func (c *Custody) PullFrom(payer synstake.Address, amount *big.Int) error {
	return errors.WithMessagef(
		c.token.TransferFrom(c.holder, payer, c.holder, amount),
		"pull %v from %v", amount, payer)
}

// PushTo moves amount from the holder to recipient.
func (c *Custody) PushTo(recipient synstake.Address, amount *big.Int) error {
	return errors.WithMessagef(
		c.token.Transfer(c.holder, recipient, amount),
		"push %v to %v", amount, recipient)
}

// BalanceOfSelf returns the holder's balance.
func (c *Custody) BalanceOfSelf() (*big.Int, error) {
	return c.token.BalanceOf(c.holder)
}
