// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/vechain/synstake/builtin/solidity"
	"github.com/vechain/synstake/builtin/staker/reverts"
	"github.com/vechain/synstake/synstake"
)

var (
	QualificationPeriod     = solidity.NewConfigVariable("staker-qualification-period", synstake.DefaultSuperQualificationPeriod)
	UnstakeWaitPeriod       = solidity.NewConfigVariable("staker-unstake-wait-period", synstake.DefaultUnstakeWaitPeriod)
	RewardDuration          = solidity.NewConfigVariable("staker-reward-duration", synstake.DefaultRewardDuration)
	EarlyExitFeeBasisPoints = solidity.NewConfigVariable("staker-early-exit-fee", synstake.DefaultEarlyExitFeeBasisPoints)
)

// Config is fixed by Init, except for the reward distributor which the admin may replace.
type Config struct {
	PrincipalToken synstake.Address
	LiquidityToken synstake.Address
	Vesting        synstake.Address
	Distributor    synstake.Address
	Admin          synstake.Address

	QualificationPeriod     uint64
	UnstakeWaitPeriod       uint64
	RewardDuration          uint64
	EarlyExitFeeBasisPoints uint64
}

// Token returns the token address of an asset class.
func (c *Config) Token(class synstake.AssetClass) synstake.Address {
	if class == synstake.Liquidity {
		return c.LiquidityToken
	}
	return c.PrincipalToken
}

func (c *Config) initialized() bool {
	return !c.PrincipalToken.IsZero()
}

// InitParams are the arguments of Init. Nil durations and a nil fee fall back to the configured
// defaults, so an explicit zero stays zero.
type InitParams struct {
	PrincipalToken synstake.Address
	LiquidityToken synstake.Address
	Vesting        synstake.Address
	Distributor    synstake.Address

	QualificationPeriod     *uint64
	UnstakeWaitPeriod       *uint64
	RewardDuration          *uint64
	EarlyExitFeeBasisPoints *uint64
}

func (p *InitParams) validate() error {
	switch {
	case p.PrincipalToken.IsZero():
		return reverts.NewConfiguration("principal address cannot be 0")
	case p.LiquidityToken.IsZero():
		return reverts.NewConfiguration("liquidity address cannot be 0")
	case p.Vesting.IsZero():
		return reverts.NewConfiguration("vesting address cannot be 0")
	case p.Distributor.IsZero():
		return reverts.NewConfiguration("distributor address cannot be 0")
	case p.PrincipalToken == p.LiquidityToken:
		return reverts.NewConfiguration("principal and liquidity must differ")
	case p.RewardDuration != nil && *p.RewardDuration == 0:
		return reverts.NewConfiguration("reward duration cannot be 0")
	case p.EarlyExitFeeBasisPoints != nil && *p.EarlyExitFeeBasisPoints > synstake.BasisPoints:
		return reverts.NewConfiguration("early exit fee above 100%")
	}
	return nil
}

func orDefault(ctx *solidity.Context, value *uint64, v *solidity.ConfigVariable) uint64 {
	if value != nil {
		return *value
	}
	return v.Get(ctx)
}
