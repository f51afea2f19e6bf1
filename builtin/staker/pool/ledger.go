// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/vechain/synstake/builtin/staker/accrual"
)

// Ledger is the aggregate state of one asset class: staked totals and the ordinary and super
// reward streams. Accumulators are scaled by synstake.Scale.
type Ledger struct {
	TotalStaked      *big.Int
	TotalSuperStaked *big.Int

	RewardRate          *big.Int
	RewardPerUnitStored *big.Int
	LastUpdateTime      uint64
	PeriodFinish        uint64

	SuperRewardRate          *big.Int
	SuperRewardPerUnitStored *big.Int
	LastSuperUpdateTime      uint64
	SuperPeriodFinish        uint64
}

func newLedger() *Ledger {
	l := &Ledger{}
	l.normalize()
	return l
}

func (l *Ledger) normalize() {
	for _, v := range []**big.Int{
		&l.TotalStaked,
		&l.TotalSuperStaked,
		&l.RewardRate,
		&l.RewardPerUnitStored,
		&l.SuperRewardRate,
		&l.SuperRewardPerUnitStored,
	} {
		if *v == nil {
			*v = new(big.Int)
		}
	}
}

// Clone returns a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{
		TotalStaked:              new(big.Int).Set(l.TotalStaked),
		TotalSuperStaked:         new(big.Int).Set(l.TotalSuperStaked),
		RewardRate:               new(big.Int).Set(l.RewardRate),
		RewardPerUnitStored:      new(big.Int).Set(l.RewardPerUnitStored),
		LastUpdateTime:           l.LastUpdateTime,
		PeriodFinish:             l.PeriodFinish,
		SuperRewardRate:          new(big.Int).Set(l.SuperRewardRate),
		SuperRewardPerUnitStored: new(big.Int).Set(l.SuperRewardPerUnitStored),
		LastSuperUpdateTime:      l.LastSuperUpdateTime,
		SuperPeriodFinish:        l.SuperPeriodFinish,
	}
}

// Sync brings both accumulators up to now. Streams stop paying at their period finish.
func (l *Ledger) Sync(now uint64) error {
	if now < l.LastUpdateTime || now < l.LastSuperUpdateTime {
		return ErrClockWentBackwards
	}

	stored, err := accrual.RewardPerUnit(
		l.RewardPerUnitStored,
		l.RewardRate,
		accrual.Elapsed(l.LastUpdateTime, now, l.PeriodFinish),
		l.TotalStaked,
	)
	if err != nil {
		return err
	}
	superStored, err := accrual.RewardPerUnit(
		l.SuperRewardPerUnitStored,
		l.SuperRewardRate,
		accrual.Elapsed(l.LastSuperUpdateTime, now, l.SuperPeriodFinish),
		l.TotalSuperStaked,
	)
	if err != nil {
		return err
	}

	l.RewardPerUnitStored = stored
	l.SuperRewardPerUnitStored = superStored
	l.LastUpdateTime = now
	l.LastSuperUpdateTime = now
	return nil
}

// At returns a synced copy of the ledger, leaving l untouched.
func (l *Ledger) At(now uint64) (*Ledger, error) {
	c := l.Clone()
	if err := c.Sync(now); err != nil {
		return nil, err
	}
	return c, nil
}
