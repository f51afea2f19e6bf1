// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"

	"github.com/vechain/synstake/builtin/staker/pool"
	"github.com/vechain/synstake/builtin/staker/position"
	"github.com/vechain/synstake/builtin/staker/reverts"
	"github.com/vechain/synstake/builtin/staker/superstake"
	"github.com/vechain/synstake/synstake"
)

// settle syncs the pool of class to now and settles the user's position against it.
func (s *Staker) settle(class synstake.AssetClass, user synstake.Address, now uint64) (*pool.Ledger, *position.Position, error) {
	l, err := s.pools[class].Sync(now)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.positions[class].Get(user)
	if err != nil {
		return nil, nil, err
	}
	if err := p.Settle(l); err != nil {
		return nil, nil, err
	}
	return l, p, nil
}

// settleAll settles both of the user's positions and reports whether any of them holds stake.
func (s *Staker) settleAll(user synstake.Address, now uint64) (map[synstake.AssetClass]*position.Position, bool, error) {
	positions := make(map[synstake.AssetClass]*position.Position, len(synstake.AssetClasses))
	staked := false
	for _, class := range synstake.AssetClasses {
		_, p, err := s.settle(class, user, now)
		if err != nil {
			return nil, false, err
		}
		positions[class] = p
		staked = staked || !p.IsEmpty()
	}
	return positions, staked, nil
}

func (s *Staker) storeAll(user synstake.Address, positions map[synstake.AssetClass]*position.Position) error {
	for _, class := range synstake.AssetClasses {
		if err := s.positions[class].Set(user, positions[class]); err != nil {
			return err
		}
	}
	return nil
}

// AddStake deposits amount of an asset for the caller.
func (s *Staker) AddStake(class synstake.AssetClass, caller synstake.Address, amount *big.Int, now uint64) error {
	logger.Debug("adding stake", "asset", class, "user", caller, "amount", amount)

	err := s.atomically("add stake", func() error {
		if err := checkAsset(class); err != nil {
			return err
		}
		if err := checkAmount(amount); err != nil {
			return err
		}
		cfg, err := s.loadConfig()
		if err != nil {
			return err
		}
		return s.deposit(cfg, class, caller, caller, amount, now)
	})
	if err != nil {
		logger.Info("add stake failed", "asset", class, "user", caller, "error", err)
		return err
	}

	logger.Info("added stake", "asset", class, "user", caller)
	return nil
}

// StakeFor deposits amount of the principal asset, pulled from the vesting module, for the
// beneficiary. Only the vesting module may call it.
func (s *Staker) StakeFor(caller, beneficiary synstake.Address, amount *big.Int, now uint64) error {
	logger.Debug("staking for beneficiary", "caller", caller, "beneficiary", beneficiary, "amount", amount)

	err := s.atomically("stake for", func() error {
		cfg, err := s.loadConfig()
		if err != nil {
			return err
		}
		if caller != cfg.Vesting {
			return ErrNotVesting
		}
		if beneficiary.IsZero() {
			return ErrZeroAddress
		}
		if err := checkAmount(amount); err != nil {
			return err
		}
		return s.deposit(cfg, synstake.Principal, caller, beneficiary, amount, now)
	})
	if err != nil {
		logger.Info("stake for failed", "beneficiary", beneficiary, "error", err)
		return err
	}

	logger.Info("staked for beneficiary", "beneficiary", beneficiary)
	return nil
}

func (s *Staker) deposit(
	cfg *Config,
	class synstake.AssetClass,
	payer synstake.Address,
	beneficiary synstake.Address,
	amount *big.Int,
	now uint64,
) error {
	_, p, err := s.settle(class, beneficiary, now)
	if err != nil {
		return err
	}
	if p.IsWithdrawing {
		return ErrWithdrawing
	}
	if err := s.asset(cfg, class).PullFrom(payer, amount); err != nil {
		return reverts.NewTransfer(err)
	}
	return s.credit(class, p, beneficiary, amount, now)
}

// credit adds amount to a settled position and to the totals it counts in.
func (s *Staker) credit(class synstake.AssetClass, p *position.Position, user synstake.Address, amount *big.Int, now uint64) error {
	if p.IsEmpty() {
		p.StakeStart = now
	}
	p.Amount = new(big.Int).Add(p.Amount, amount)
	if _, err := s.pools[class].AddStake(now, amount, p.IsSuperStaker); err != nil {
		return err
	}
	if err := s.positions[class].Set(user, p); err != nil {
		return err
	}
	if err := s.stats.AddDeposit(class, amount); err != nil {
		return err
	}
	s.emit(EventStakeAdded, class, user, amount)
	return nil
}

// Claim pays the caller the rewards of both positions.
func (s *Staker) Claim(caller synstake.Address, now uint64) (*big.Int, error) {
	return s.ClaimTo(caller, caller, now)
}

// ClaimTo pays the rewards of both of the caller's positions to recipient.
func (s *Staker) ClaimTo(caller, recipient synstake.Address, now uint64) (*big.Int, error) {
	logger.Debug("claiming", "user", caller, "recipient", recipient)

	var claimed *big.Int
	err := s.atomically("claim", func() error {
		cfg, err := s.loadConfig()
		if err != nil {
			return err
		}
		if recipient.IsZero() {
			return ErrZeroAddress
		}
		positions, staked, err := s.settleAll(caller, now)
		if err != nil {
			return err
		}
		if !staked {
			return ErrNothingStaked
		}

		total := new(big.Int)
		for _, class := range synstake.AssetClasses {
			total.Add(total, positions[class].TakeRewards())
		}
		if total.Sign() == 0 {
			return ErrNothingToClaim
		}
		if err := s.storeAll(caller, positions); err != nil {
			return err
		}
		if err := s.payRewards(cfg, caller, recipient, total); err != nil {
			return err
		}
		claimed = total
		return nil
	})
	if err != nil {
		logger.Info("claim failed", "user", caller, "error", err)
		return nil, err
	}

	logger.Info("claimed", "user", caller, "recipient", recipient, "amount", claimed)
	return claimed, nil
}

func (s *Staker) payRewards(cfg *Config, user, recipient synstake.Address, amount *big.Int) error {
	if err := s.asset(cfg, synstake.Principal).PushTo(recipient, amount); err != nil {
		return reverts.NewTransfer(err)
	}
	if err := s.stats.AddRewardsClaimed(amount); err != nil {
		return err
	}
	s.emit(EventClaimed, synstake.Principal, user, amount)
	return nil
}

// Restake moves the rewards of both positions into the caller's principal stake.
func (s *Staker) Restake(caller synstake.Address, now uint64) (*big.Int, error) {
	logger.Debug("restaking", "user", caller)

	var restaked *big.Int
	err := s.atomically("restake", func() error {
		if _, err := s.loadConfig(); err != nil {
			return err
		}
		positions, staked, err := s.settleAll(caller, now)
		if err != nil {
			return err
		}
		if !staked {
			return ErrNothingStaked
		}
		principal := positions[synstake.Principal]
		if principal.IsWithdrawing {
			return ErrWithdrawing
		}

		total := new(big.Int)
		for _, class := range synstake.AssetClasses {
			total.Add(total, positions[class].TakeRewards())
		}
		if total.Sign() == 0 {
			return ErrNothingToRestake
		}
		if err := s.storeAll(caller, positions); err != nil {
			return err
		}

		if err := s.stats.AddRewardsClaimed(total); err != nil {
			return err
		}
		s.emit(EventClaimed, synstake.Principal, caller, total)
		if err := s.credit(synstake.Principal, principal, caller, total, now); err != nil {
			return err
		}
		restaked = total
		return nil
	})
	if err != nil {
		logger.Info("restake failed", "user", caller, "error", err)
		return nil, err
	}

	logger.Info("restaked", "user", caller, "amount", restaked)
	return restaked, nil
}

// PromoteToSuper moves a qualified position into the super tier. The first promotion after new fee
// revenue arrived hands that revenue to the super streams of both pools.
func (s *Staker) PromoteToSuper(class synstake.AssetClass, caller synstake.Address, now uint64) (*superstake.Recalculation, error) {
	logger.Debug("promoting to super", "asset", class, "user", caller)

	var rec *superstake.Recalculation
	err := s.atomically("promote", func() error {
		if err := checkAsset(class); err != nil {
			return err
		}
		cfg, err := s.loadConfig()
		if err != nil {
			return err
		}
		p, err := s.positions[class].Get(caller)
		if err != nil {
			return err
		}
		switch {
		case p.IsEmpty():
			return ErrNothingStaked
		case p.IsWithdrawing:
			return ErrWithdrawing
		case p.IsSuperStaker:
			return ErrAlreadySuper
		case !p.CanPromote(now, cfg.QualificationPeriod):
			return ErrTooSoon
		}

		if rec, err = s.recalculateSuper(cfg, caller, now); err != nil {
			return err
		}

		_, p, err = s.settle(class, caller, now)
		if err != nil {
			return err
		}
		p.IsSuperStaker = true
		if _, err := s.pools[class].AddSuperStake(now, p.Amount); err != nil {
			return err
		}
		if err := s.positions[class].Set(caller, p); err != nil {
			return err
		}
		s.emit(EventSuperStaker, class, caller, p.Amount)
		return nil
	})
	if err != nil {
		logger.Info("promote to super failed", "asset", class, "user", caller, "error", err)
		return nil, err
	}

	logger.Info("promoted to super", "asset", class, "user", caller, "principal", rec.Principal, "liquidity", rec.Liquidity)
	return rec, nil
}
