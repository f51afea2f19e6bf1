// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"math/big"

	"github.com/vechain/synstake/builtin/staker/accrual"
	"github.com/vechain/synstake/builtin/staker/pool"
)

// Position is one user's stake in one asset class.
type Position struct {
	Amount                 *big.Int
	Rewards                *big.Int
	RewardPerUnitPaid      *big.Int
	SuperRewardPerUnitPaid *big.Int
	IsSuperStaker          bool
	StakeStart             uint64
	IsWithdrawing          bool
	WithdrawalPossibleAt   uint64
}

func (p *Position) normalize() {
	for _, v := range []**big.Int{&p.Amount, &p.Rewards, &p.RewardPerUnitPaid, &p.SuperRewardPerUnitPaid} {
		if *v == nil {
			*v = new(big.Int)
		}
	}
}

// IsEmpty reports whether nothing is staked.
func (p *Position) IsEmpty() bool {
	return p.Amount.Sign() == 0
}

// Earned returns the rewards of the position as of the synced ledger l, without changing it.
// A withdrawing position no longer counts in the pool totals and earns nothing more.
func (p *Position) Earned(l *pool.Ledger) (*big.Int, error) {
	total := new(big.Int).Set(p.Rewards)
	if p.IsWithdrawing {
		return total, nil
	}
	earned, err := accrual.Earned(p.Amount, l.RewardPerUnitStored, p.RewardPerUnitPaid)
	if err != nil {
		return nil, err
	}
	total.Add(total, earned)
	if p.IsSuperStaker {
		superEarned, err := accrual.Earned(p.Amount, l.SuperRewardPerUnitStored, p.SuperRewardPerUnitPaid)
		if err != nil {
			return nil, err
		}
		total.Add(total, superEarned)
	}
	return total, nil
}

// Settle moves everything earned up to the synced ledger l into Rewards and snapshots both
// accumulators.
func (p *Position) Settle(l *pool.Ledger) error {
	if p.IsWithdrawing {
		return nil
	}
	rewards, err := p.Earned(l)
	if err != nil {
		return err
	}
	p.Rewards = rewards
	p.RewardPerUnitPaid = new(big.Int).Set(l.RewardPerUnitStored)
	p.SuperRewardPerUnitPaid = new(big.Int).Set(l.SuperRewardPerUnitStored)
	return nil
}

// TakeRewards zeroes the settled rewards and returns them.
func (p *Position) TakeRewards() *big.Int {
	rewards := p.Rewards
	p.Rewards = new(big.Int)
	return rewards
}

// CanPromote reports whether the position qualifies for the super tier at now.
func (p *Position) CanPromote(now, period uint64) bool {
	return !p.IsEmpty() &&
		!p.IsSuperStaker &&
		!p.IsWithdrawing &&
		now >= p.StakeStart &&
		now-p.StakeStart >= period
}
