// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"

	"github.com/vechain/synstake/builtin/staker/accrual"
	"github.com/vechain/synstake/builtin/staker/position"
	"github.com/vechain/synstake/builtin/staker/reverts"
	"github.com/vechain/synstake/synstake"
)

// Payout is what a completed withdrawal returned to the user.
type Payout struct {
	Principal *big.Int // principal asset returned, rewards excluded
	Liquidity *big.Int
	Rewards   *big.Int // paid in the principal asset

	// early exit fees kept by the ledger
	PrincipalFee *big.Int
	LiquidityFee *big.Int
}

func newPayout() *Payout {
	return &Payout{
		Principal:    new(big.Int),
		Liquidity:    new(big.Int),
		Rewards:      new(big.Int),
		PrincipalFee: new(big.Int),
		LiquidityFee: new(big.Int),
	}
}

func (p *Payout) amount(class synstake.AssetClass) *big.Int {
	if class == synstake.Liquidity {
		return p.Liquidity
	}
	return p.Principal
}

func (p *Payout) fee(class synstake.AssetClass) *big.Int {
	if class == synstake.Liquidity {
		return p.LiquidityFee
	}
	return p.PrincipalFee
}

// RequestUnstake takes the caller's position in class out of the pool. The position stops earning,
// keeps its amount and rewards, and can be withdrawn once the unstake wait has passed.
func (s *Staker) RequestUnstake(class synstake.AssetClass, caller synstake.Address, now uint64) error {
	logger.Debug("requesting unstake", "asset", class, "user", caller)

	err := s.atomically("request unstake", func() error {
		if err := checkAsset(class); err != nil {
			return err
		}
		cfg, err := s.loadConfig()
		if err != nil {
			return err
		}
		_, p, err := s.settle(class, caller, now)
		if err != nil {
			return err
		}
		if p.IsEmpty() {
			return ErrNothingStaked
		}
		if p.IsWithdrawing {
			return ErrWithdrawing
		}

		if _, err := s.pools[class].RemoveStake(now, p.Amount, p.IsSuperStaker); err != nil {
			return err
		}
		p.IsSuperStaker = false
		p.IsWithdrawing = true
		p.WithdrawalPossibleAt = now + cfg.UnstakeWaitPeriod
		if err := s.positions[class].Set(caller, p); err != nil {
			return err
		}
		s.emit(EventStakeRemoveRequested, class, caller, p.Amount)
		return nil
	})
	if err != nil {
		logger.Info("request unstake failed", "asset", class, "user", caller, "error", err)
		return err
	}

	logger.Info("unstake requested", "asset", class, "user", caller)
	return nil
}

// Unstake completes every withdrawing position of the caller whose wait has passed, returning its
// amount together with its rewards. Positions still waiting are left untouched.
func (s *Staker) Unstake(caller synstake.Address, now uint64) (*Payout, error) {
	logger.Debug("unstaking", "user", caller)

	var payout *Payout
	err := s.atomically("unstake", func() error {
		cfg, err := s.loadConfig()
		if err != nil {
			return err
		}
		positions, staked, err := s.settleAll(caller, now)
		if err != nil {
			return err
		}
		if !staked {
			return ErrNothingStaked
		}

		due := withdrawable(positions, now, true)
		if len(due) == 0 {
			return ErrCannotUnstake
		}
		payout, err = s.withdraw(cfg, caller, positions, due, 0)
		return err
	})
	if err != nil {
		logger.Info("unstake failed", "user", caller, "error", err)
		return nil, err
	}

	logger.Info("unstaked", "user", caller, "principal", payout.Principal, "liquidity", payout.Liquidity, "rewards", payout.Rewards)
	return payout, nil
}

// UnstakeWithFee completes every withdrawing position of the caller before its wait has passed.
// The early exit fee is kept from the amount; rewards are paid in full. Without a withdrawing
// position it does nothing.
func (s *Staker) UnstakeWithFee(caller synstake.Address, now uint64) (*Payout, error) {
	logger.Debug("unstaking with fee", "user", caller)

	var payout *Payout
	err := s.atomically("unstake with fee", func() error {
		cfg, err := s.loadConfig()
		if err != nil {
			return err
		}
		positions, staked, err := s.settleAll(caller, now)
		if err != nil {
			return err
		}
		if !staked {
			return ErrNothingStaked
		}
		if len(withdrawable(positions, now, true)) > 0 {
			return ErrUnstakeFirst
		}

		early := withdrawable(positions, now, false)
		if len(early) == 0 {
			payout = newPayout()
			return nil
		}
		payout, err = s.withdraw(cfg, caller, positions, early, cfg.EarlyExitFeeBasisPoints)
		return err
	})
	if err != nil {
		logger.Info("unstake with fee failed", "user", caller, "error", err)
		return nil, err
	}

	logger.Info("unstaked with fee", "user", caller, "principal", payout.Principal, "liquidity", payout.Liquidity, "rewards", payout.Rewards)
	return payout, nil
}

// withdrawable lists the withdrawing positions whose wait has passed at now, or, when due is
// false, those still waiting.
func withdrawable(positions map[synstake.AssetClass]*position.Position, now uint64, due bool) []synstake.AssetClass {
	var classes []synstake.AssetClass
	for _, class := range synstake.AssetClasses {
		p := positions[class]
		if !p.IsWithdrawing {
			continue
		}
		if (now >= p.WithdrawalPossibleAt) == due {
			classes = append(classes, class)
		}
	}
	return classes
}

// withdraw zeroes the given positions and pays them out, keeping feeBasisPoints of each amount.
func (s *Staker) withdraw(
	cfg *Config,
	user synstake.Address,
	positions map[synstake.AssetClass]*position.Position,
	classes []synstake.AssetClass,
	feeBasisPoints uint64,
) (*Payout, error) {
	payout := newPayout()
	for _, class := range classes {
		p := positions[class]
		kept, fee, err := accrual.AfterFee(p.Amount, feeBasisPoints)
		if err != nil {
			return nil, err
		}
		payout.amount(class).Set(kept)
		payout.fee(class).Set(fee)
		payout.Rewards.Add(payout.Rewards, p.TakeRewards())

		if err := s.stats.RemoveDeposit(class, p.Amount); err != nil {
			return nil, err
		}
		s.positions[class].Delete(user)
		s.emit(EventStakeRemoved, class, user, p.Amount)
	}

	for _, class := range synstake.AssetClasses {
		amount := new(big.Int).Set(payout.amount(class))
		if class == synstake.Principal {
			amount.Add(amount, payout.Rewards)
		}
		if amount.Sign() == 0 {
			continue
		}
		if err := s.asset(cfg, class).PushTo(user, amount); err != nil {
			return nil, reverts.NewTransfer(err)
		}
	}
	if payout.Rewards.Sign() > 0 {
		if err := s.stats.AddRewardsClaimed(payout.Rewards); err != nil {
			return nil, err
		}
		s.emit(EventClaimed, synstake.Principal, user, payout.Rewards)
	}
	return payout, nil
}
