// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/synstake/builtin/staker"
	"github.com/vechain/synstake/log"
	"github.com/vechain/synstake/synstake"
)

// opFunc runs one ledger operation as caller at unix time now.
type opFunc func(ctx *cli.Context, s *staker.Staker, caller synstake.Address, now uint64) error

func opCommand(name, usage string, fn opFunc, flags ...cli.Flag) cli.Command {
	return cli.Command{
		Name:   name,
		Usage:  usage,
		Flags:  append([]cli.Flag{dataDirFlag, cacheFlag, verbosityFlag, logFormatFlag, callerFlag, timeFlag}, flags...),
		Action: func(ctx *cli.Context) error { return runOp(ctx, fn) },
	}
}

// runOp opens the ledger, runs fn and commits its changes. Nothing is written when fn fails.
func runOp(ctx *cli.Context, fn opFunc) error {
	if _, err := initLogger(ctx); err != nil {
		return err
	}
	caller, err := parseAddress(callerFlag.Name, ctx.String(callerFlag.Name))
	if err != nil {
		return err
	}

	l, err := openLedger(ctx, staker.WithEventSink(logEvent))
	if err != nil {
		return err
	}
	defer l.close()

	now := resolveTime(ctx.Uint64(timeFlag.Name), time.Now)
	if err := fn(ctx, l.staker, caller, now); err != nil {
		return err
	}
	return l.commit()
}

func logEvent(e *staker.Event) {
	log.Info("event", "name", e.Name, "asset", e.Asset, "user", e.User, "amount", e.Amount)
}

func assetOf(ctx *cli.Context) (synstake.AssetClass, error) {
	class, err := synstake.ParseAssetClass(ctx.String(assetFlag.Name))
	if err != nil {
		return 0, errors.Wrap(err, "-"+assetFlag.Name)
	}
	return class, nil
}

func stakeOf(class synstake.AssetClass) opFunc {
	return func(ctx *cli.Context, s *staker.Staker, caller synstake.Address, now uint64) error {
		amount, err := parseAmount(amountFlag.Name, ctx.String(amountFlag.Name))
		if err != nil {
			return err
		}
		return s.AddStake(class, caller, amount, now)
	}
}

func stake(ctx *cli.Context, s *staker.Staker, caller synstake.Address, now uint64) error {
	class, err := assetOf(ctx)
	if err != nil {
		return err
	}
	return stakeOf(class)(ctx, s, caller, now)
}

func stakeFor(ctx *cli.Context, s *staker.Staker, caller synstake.Address, now uint64) error {
	beneficiary, err := parseAddress(beneficiaryFlag.Name, ctx.String(beneficiaryFlag.Name))
	if err != nil {
		return err
	}
	amount, err := parseAmount(amountFlag.Name, ctx.String(amountFlag.Name))
	if err != nil {
		return err
	}
	return s.StakeFor(caller, beneficiary, amount, now)
}

func inject(ctx *cli.Context, s *staker.Staker, caller synstake.Address, now uint64) error {
	class, err := assetOf(ctx)
	if err != nil {
		return err
	}
	amount, err := parseAmount(amountFlag.Name, ctx.String(amountFlag.Name))
	if err != nil {
		return err
	}
	duration := ctx.Uint64(durationFlag.Name)
	if duration == 0 {
		cfg, err := s.Config()
		if err != nil {
			return err
		}
		duration = cfg.RewardDuration
	}
	return s.InjectReward(class, caller, amount, duration, now)
}

func notify(ctx *cli.Context, s *staker.Staker, caller synstake.Address, now uint64) error {
	principal, err := parseAmount(amountFlag.Name, ctx.String(amountFlag.Name))
	if err != nil {
		return err
	}
	liquidity, err := parseAmount(liquidityAmountFlag.Name, ctx.String(liquidityAmountFlag.Name))
	if err != nil {
		return err
	}
	return s.NotifyRewardAmount(caller, principal, liquidity, now)
}

func claim(ctx *cli.Context, s *staker.Staker, caller synstake.Address, now uint64) error {
	recipient := caller
	if v := ctx.String(recipientFlag.Name); v != "" {
		addr, err := parseAddress(recipientFlag.Name, v)
		if err != nil {
			return err
		}
		recipient = addr
	}
	paid, err := s.ClaimTo(caller, recipient, now)
	if err != nil {
		return err
	}
	log.Info("rewards claimed", "recipient", recipient, "amount", paid)
	return nil
}

func restake(_ *cli.Context, s *staker.Staker, caller synstake.Address, now uint64) error {
	moved, err := s.Restake(caller, now)
	if err != nil {
		return err
	}
	log.Info("rewards restaked", "amount", moved)
	return nil
}

func requestUnstake(ctx *cli.Context, s *staker.Staker, caller synstake.Address, now uint64) error {
	class, err := assetOf(ctx)
	if err != nil {
		return err
	}
	return s.RequestUnstake(class, caller, now)
}

func logPayout(p *staker.Payout) {
	log.Info("withdrawn",
		"principal", p.Principal,
		"liquidity", p.Liquidity,
		"rewards", p.Rewards,
		"principalFee", p.PrincipalFee,
		"liquidityFee", p.LiquidityFee)
}

func unstake(_ *cli.Context, s *staker.Staker, caller synstake.Address, now uint64) error {
	payout, err := s.Unstake(caller, now)
	if err != nil {
		return err
	}
	logPayout(payout)
	return nil
}

func unstakeWithFee(_ *cli.Context, s *staker.Staker, caller synstake.Address, now uint64) error {
	payout, err := s.UnstakeWithFee(caller, now)
	if err != nil {
		return err
	}
	logPayout(payout)
	return nil
}

func promote(ctx *cli.Context, s *staker.Staker, caller synstake.Address, now uint64) error {
	class, err := assetOf(ctx)
	if err != nil {
		return err
	}
	rec, err := s.PromoteToSuper(class, caller, now)
	if err != nil {
		return err
	}
	log.Info("promoted to super", "asset", class, "principalRevenue", rec.Principal, "liquidityRevenue", rec.Liquidity)
	return nil
}

func setDistributor(ctx *cli.Context, s *staker.Staker, caller synstake.Address, _ uint64) error {
	distributor, err := parseAddress(distributorFlag.Name, ctx.String(distributorFlag.Name))
	if err != nil {
		return err
	}
	return s.SetRewardDistributor(caller, distributor)
}

var opCommands = []cli.Command{
	opCommand("stake", "stake an asset", stake, assetFlag, amountFlag),
	opCommand("stake-lp", "stake the liquidity asset", stakeOf(synstake.Liquidity), amountFlag),
	opCommand("stake-for", "stake principal on behalf of a beneficiary (vesting module only)", stakeFor, beneficiaryFlag, amountFlag),
	opCommand("inject", "fund the reward stream of one pool (distributor only)", inject, assetFlag, amountFlag, durationFlag),
	opCommand("notify", "fund the reward streams of both pools (distributor only)", notify, amountFlag, liquidityAmountFlag),
	opCommand("claim", "claim the rewards of both positions", claim, recipientFlag),
	opCommand("restake", "move the rewards of both positions into the principal stake", restake),
	opCommand("request-unstake", "start the unstake wait of a position", requestUnstake, assetFlag),
	opCommand("unstake", "complete every withdrawal whose wait has elapsed", unstake),
	opCommand("unstake-fee", "leave every waiting withdrawal early against the exit fee", unstakeWithFee),
	opCommand("promote", "promote a position to the super tier", promote, assetFlag),
	opCommand("set-distributor", "replace the reward distributor (admin only)", setDistributor, distributorFlag),
}
