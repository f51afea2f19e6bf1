// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual holds the fixed-point math shared by the reward streams. Values are unsigned
// 256-bit integers, every product is overflow checked and every division truncates.
package accrual

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/vechain/synstake/synstake"
)

var (
	ErrOverflow     = errors.New("accrual: uint256 overflow")
	ErrNegative     = errors.New("accrual: negative value")
	ErrZeroDuration = errors.New("accrual: zero duration")
)

var scale = uint256.MustFromBig(synstake.Scale)

func toU256(v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return new(uint256.Int), nil
	}
	if v.Sign() < 0 {
		return nil, ErrNegative
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, ErrOverflow
	}
	return u, nil
}

// Elapsed returns the seconds of [last, now] that fall before finish, the end of the stream.
func Elapsed(last, now, finish uint64) uint64 {
	end := min(now, finish)
	if end <= last {
		return 0
	}
	return end - last
}

// RewardPerUnit advances an accumulator by elapsed seconds of rate shared over total:
// stored + elapsed * rate * Scale / total. An empty pool leaves the accumulator unchanged.
func RewardPerUnit(stored, rate *big.Int, elapsed uint64, total *big.Int) (*big.Int, error) {
	s, err := toU256(stored)
	if err != nil {
		return nil, err
	}
	if elapsed == 0 || rate.Sign() == 0 || total.Sign() == 0 {
		return s.ToBig(), nil
	}
	r, err := toU256(rate)
	if err != nil {
		return nil, err
	}
	t, err := toU256(total)
	if err != nil {
		return nil, err
	}

	inc := uint256.NewInt(elapsed)
	if _, overflow := inc.MulOverflow(inc, r); overflow {
		return nil, ErrOverflow
	}
	if _, overflow := inc.MulOverflow(inc, scale); overflow {
		return nil, ErrOverflow
	}
	inc.Div(inc, t)
	if _, overflow := inc.AddOverflow(inc, s); overflow {
		return nil, ErrOverflow
	}
	return inc.ToBig(), nil
}

// Earned returns the reward owed on amount between the paid snapshot and perUnit:
// amount * (perUnit - paid) / Scale.
func Earned(amount, perUnit, paid *big.Int) (*big.Int, error) {
	a, err := toU256(amount)
	if err != nil {
		return nil, err
	}
	p, err := toU256(perUnit)
	if err != nil {
		return nil, err
	}
	q, err := toU256(paid)
	if err != nil {
		return nil, err
	}
	if a.IsZero() || !q.Lt(p) {
		return new(big.Int), nil
	}

	delta := new(uint256.Int).Sub(p, q)
	if _, overflow := delta.MulOverflow(delta, a); overflow {
		return nil, ErrOverflow
	}
	return delta.Div(delta, scale).ToBig(), nil
}

// Rate spreads amount evenly over duration seconds, truncating.
func Rate(amount *big.Int, duration uint64) (*big.Int, error) {
	if duration == 0 {
		return nil, ErrZeroDuration
	}
	a, err := toU256(amount)
	if err != nil {
		return nil, err
	}
	return a.Div(a, uint256.NewInt(duration)).ToBig(), nil
}

// AfterFee splits amount into what is kept after a fee of bps basis points and the fee itself.
func AfterFee(amount *big.Int, bps uint64) (kept, fee *big.Int, err error) {
	if bps > synstake.BasisPoints {
		return nil, nil, errors.Errorf("accrual: fee of %d basis points", bps)
	}
	a, err := toU256(amount)
	if err != nil {
		return nil, nil, err
	}
	k := uint256.NewInt(synstake.BasisPoints - bps)
	if _, overflow := k.MulOverflow(k, a); overflow {
		return nil, nil, ErrOverflow
	}
	k.Div(k, uint256.NewInt(synstake.BasisPoints))
	f := new(uint256.Int).Sub(a, k)
	return k.ToBig(), f.ToBig(), nil
}
