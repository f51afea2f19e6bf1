// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
	"github.com/vechain/synstake/builtin/solidity"
	"github.com/vechain/synstake/builtin/staker/accrual"
	"github.com/vechain/synstake/builtin/staker/reverts"
	"github.com/vechain/synstake/log"
	"github.com/vechain/synstake/synstake"
)

var logger = log.WithContext("pkg", "pool")

var (
	ErrClockWentBackwards = reverts.New("clock went backwards")
	ErrDurationOverflow   = reverts.New("duration overflow")
	ErrInsufficientStake  = errors.New("pool: stake below removal")
)

// Service owns the ledger of one asset class. Every mutation goes through Update, which syncs the
// accumulators to now before the change is applied.
type Service struct {
	class  synstake.AssetClass
	ledger *solidity.Value[*Ledger]
}

func New(sctx *solidity.Context, class synstake.AssetClass) *Service {
	slot := synstake.BytesToBytes32([]byte("pool-" + class.String()))
	return &Service{
		class:  class,
		ledger: solidity.NewValue[*Ledger](sctx, slot),
	}
}

func (s *Service) Class() synstake.AssetClass {
	return s.class
}

// Get returns the stored ledger as of its last update.
func (s *Service) Get() (*Ledger, error) {
	l, err := s.ledger.Get()
	if err != nil {
		return nil, errors.Wrapf(err, "load %v pool", s.class)
	}
	l.normalize()
	return l, nil
}

// Update syncs the ledger to now, applies mutate to it and stores the result.
// A nil mutate only syncs.
func (s *Service) Update(now uint64, mutate func(*Ledger) error) (*Ledger, error) {
	l, err := s.Get()
	if err != nil {
		return nil, err
	}
	if err := l.Sync(now); err != nil {
		return nil, err
	}
	if mutate != nil {
		if err := mutate(l); err != nil {
			return nil, err
		}
	}
	if err := s.ledger.Set(l); err != nil {
		return nil, errors.Wrapf(err, "store %v pool", s.class)
	}
	return l, nil
}

// Sync persists the accumulators brought up to now.
func (s *Service) Sync(now uint64) (*Ledger, error) {
	return s.Update(now, nil)
}

// AddStake adds amount to the total and, for super stakers, to the super total.
func (s *Service) AddStake(now uint64, amount *big.Int, super bool) (*Ledger, error) {
	return s.Update(now, func(l *Ledger) error {
		l.TotalStaked.Add(l.TotalStaked, amount)
		if super {
			l.TotalSuperStaked.Add(l.TotalSuperStaked, amount)
		}
		return nil
	})
}

// RemoveStake takes amount out of the total and, for super stakers, out of the super total.
func (s *Service) RemoveStake(now uint64, amount *big.Int, super bool) (*Ledger, error) {
	return s.Update(now, func(l *Ledger) error {
		if l.TotalStaked.Cmp(amount) < 0 || (super && l.TotalSuperStaked.Cmp(amount) < 0) {
			return ErrInsufficientStake
		}
		l.TotalStaked.Sub(l.TotalStaked, amount)
		if super {
			l.TotalSuperStaked.Sub(l.TotalSuperStaked, amount)
		}
		return nil
	})
}

// AddSuperStake counts amount, already part of the total, in the super total.
func (s *Service) AddSuperStake(now uint64, amount *big.Int) (*Ledger, error) {
	return s.Update(now, func(l *Ledger) error {
		l.TotalSuperStaked.Add(l.TotalSuperStaked, amount)
		return nil
	})
}

// NotifyReward starts a new ordinary stream paying amount over duration seconds from now.
// Whatever the previous stream had not paid yet is dropped.
func (s *Service) NotifyReward(now uint64, amount *big.Int, duration uint64) (*Ledger, error) {
	finish, err := periodFinish(now, duration)
	if err != nil {
		return nil, err
	}
	rate, err := accrual.Rate(amount, duration)
	if err != nil {
		return nil, err
	}
	l, err := s.Update(now, func(l *Ledger) error {
		l.RewardRate = rate
		l.LastUpdateTime = now
		l.PeriodFinish = finish
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("reward rate set", "asset", s.class, "rate", rate, "finish", l.PeriodFinish)
	return l, nil
}

// NotifySuperReward starts a new super stream paying amount over duration seconds from now.
func (s *Service) NotifySuperReward(now uint64, amount *big.Int, duration uint64) (*Ledger, error) {
	finish, err := periodFinish(now, duration)
	if err != nil {
		return nil, err
	}
	rate, err := accrual.Rate(amount, duration)
	if err != nil {
		return nil, err
	}
	l, err := s.Update(now, func(l *Ledger) error {
		l.SuperRewardRate = rate
		l.LastSuperUpdateTime = now
		l.SuperPeriodFinish = finish
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("super reward rate set", "asset", s.class, "rate", rate, "finish", l.SuperPeriodFinish)
	return l, nil
}

func periodFinish(now, duration uint64) (uint64, error) {
	if duration > math.MaxUint64-now {
		return 0, ErrDurationOverflow
	}
	return now + duration, nil
}
