// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"

	"github.com/vechain/synstake/builtin/staker/reverts"
	"github.com/vechain/synstake/builtin/staker/superstake"
	"github.com/vechain/synstake/synstake"
)

// InjectReward funds the ordinary stream of one pool with amount of the principal asset, paid out
// evenly over duration seconds from now. The rest of the previous stream is dropped. A zero amount
// stops the stream.
func (s *Staker) InjectReward(
	class synstake.AssetClass,
	caller synstake.Address,
	amount *big.Int,
	duration uint64,
	now uint64,
) error {
	logger.Debug("injecting reward", "asset", class, "caller", caller, "amount", amount, "duration", duration)

	err := s.atomically("inject reward", func() error {
		if err := checkAsset(class); err != nil {
			return err
		}
		cfg, err := s.loadConfig()
		if err != nil {
			return err
		}
		if caller != cfg.Distributor {
			return ErrNotDistributor
		}
		return s.injectReward(cfg, class, caller, amount, duration, now)
	})
	if err != nil {
		logger.Info("inject reward failed", "asset", class, "error", err)
		return err
	}

	logger.Info("reward injected", "asset", class, "amount", amount)
	return nil
}

// NotifyRewardAmount funds both pools for the configured reward duration in one call.
func (s *Staker) NotifyRewardAmount(caller synstake.Address, principalReward, liquidityReward *big.Int, now uint64) error {
	logger.Debug("notifying rewards", "caller", caller, "principal", principalReward, "liquidity", liquidityReward)

	err := s.atomically("notify rewards", func() error {
		cfg, err := s.loadConfig()
		if err != nil {
			return err
		}
		if caller != cfg.Distributor {
			return ErrNotDistributor
		}
		if err := s.injectReward(cfg, synstake.Principal, caller, principalReward, cfg.RewardDuration, now); err != nil {
			return err
		}
		return s.injectReward(cfg, synstake.Liquidity, caller, liquidityReward, cfg.RewardDuration, now)
	})
	if err != nil {
		logger.Info("notify rewards failed", "error", err)
		return err
	}

	logger.Info("rewards notified", "principal", principalReward, "liquidity", liquidityReward)
	return nil
}

func (s *Staker) injectReward(
	cfg *Config,
	class synstake.AssetClass,
	caller synstake.Address,
	amount *big.Int,
	duration uint64,
	now uint64,
) error {
	if amount == nil {
		amount = new(big.Int)
	}
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if duration == 0 {
		return ErrZeroDuration
	}
	if amount.Sign() > 0 {
		if err := s.asset(cfg, synstake.Principal).PullFrom(caller, amount); err != nil {
			return reverts.NewTransfer(err)
		}
	}
	if _, err := s.pools[class].NotifyReward(now, amount, duration); err != nil {
		return err
	}
	if err := s.stats.AddRewardsInjected(amount); err != nil {
		return err
	}
	s.emit(EventRewardNotified, class, caller, amount)
	return nil
}

// recalculateSuper hands new fee revenue to the super streams of both pools. The pools end synced
// to now either way, and the recalculation events are emitted even when they carry zero.
func (s *Staker) recalculateSuper(cfg *Config, user synstake.Address, now uint64) (*superstake.Recalculation, error) {
	rec, err := s.superstake.Recalculate(
		now,
		cfg.QualificationPeriod,
		s.feeRevenue(cfg),
		s.pools[synstake.Principal],
		s.pools[synstake.Liquidity],
	)
	if err != nil {
		return nil, err
	}
	if !rec.IsZero() {
		if err := s.stats.AddFeeRevenue(rec.Total()); err != nil {
			return nil, err
		}
	}
	s.emit(EventSuperRecalculation, synstake.Principal, user, rec.Principal)
	s.emit(EventSuperRecalculation, synstake.Liquidity, user, rec.Liquidity)
	return rec, nil
}
