// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/synstake/builtin/staker"
	"github.com/vechain/synstake/builtin/staker/globalstats"
	"github.com/vechain/synstake/builtin/staker/pool"
	"github.com/vechain/synstake/builtin/staker/position"
	"github.com/vechain/synstake/synstake"
)

func amount(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		return (*math.HexOrDecimal256)(new(big.Int))
	}
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}

// Pool for marshal pool ledger.
type Pool struct {
	Asset                    string                `json:"asset"`
	TotalStaked              *math.HexOrDecimal256 `json:"totalStaked"`
	TotalSuperStaked         *math.HexOrDecimal256 `json:"totalSuperStaked"`
	RewardRate               *math.HexOrDecimal256 `json:"rewardRate"`
	RewardPerUnitStored      *math.HexOrDecimal256 `json:"rewardPerUnitStored"`
	LastUpdateTime           uint64                `json:"lastUpdateTime"`
	PeriodFinish             uint64                `json:"periodFinish"`
	SuperRewardRate          *math.HexOrDecimal256 `json:"superRewardRate"`
	SuperRewardPerUnitStored *math.HexOrDecimal256 `json:"superRewardPerUnitStored"`
	LastSuperUpdateTime      uint64                `json:"lastSuperUpdateTime"`
	SuperPeriodFinish        uint64                `json:"superPeriodFinish"`
}

func convertPool(class synstake.AssetClass, l *pool.Ledger) *Pool {
	return &Pool{
		Asset:                    class.String(),
		TotalStaked:              amount(l.TotalStaked),
		TotalSuperStaked:         amount(l.TotalSuperStaked),
		RewardRate:               amount(l.RewardRate),
		RewardPerUnitStored:      amount(l.RewardPerUnitStored),
		LastUpdateTime:           l.LastUpdateTime,
		PeriodFinish:             l.PeriodFinish,
		SuperRewardRate:          amount(l.SuperRewardRate),
		SuperRewardPerUnitStored: amount(l.SuperRewardPerUnitStored),
		LastSuperUpdateTime:      l.LastSuperUpdateTime,
		SuperPeriodFinish:        l.SuperPeriodFinish,
	}
}

// Position for marshal a user's stake in one pool.
type Position struct {
	Asset                  string                `json:"asset"`
	User                   synstake.Address      `json:"user"`
	Amount                 *math.HexOrDecimal256 `json:"amount"`
	Rewards                *math.HexOrDecimal256 `json:"rewards"`
	RewardPerUnitPaid      *math.HexOrDecimal256 `json:"rewardPerUnitPaid"`
	SuperRewardPerUnitPaid *math.HexOrDecimal256 `json:"superRewardPerUnitPaid"`
	IsSuperStaker          bool                  `json:"isSuperStaker"`
	StakeStart             uint64                `json:"stakeStart"`
	IsWithdrawing          bool                  `json:"isWithdrawing"`
	WithdrawalPossibleAt   uint64                `json:"withdrawalPossibleAt"`
}

func convertPosition(class synstake.AssetClass, user synstake.Address, p *position.Position) *Position {
	return &Position{
		Asset:                  class.String(),
		User:                   user,
		Amount:                 amount(p.Amount),
		Rewards:                amount(p.Rewards),
		RewardPerUnitPaid:      amount(p.RewardPerUnitPaid),
		SuperRewardPerUnitPaid: amount(p.SuperRewardPerUnitPaid),
		IsSuperStaker:          p.IsSuperStaker,
		StakeStart:             p.StakeStart,
		IsWithdrawing:          p.IsWithdrawing,
		WithdrawalPossibleAt:   p.WithdrawalPossibleAt,
	}
}

// Claimable is what a user could claim from each pool at a point in time.
type Claimable struct {
	User      synstake.Address      `json:"user"`
	Time      uint64                `json:"time"`
	Principal *math.HexOrDecimal256 `json:"principal"`
	Liquidity *math.HexOrDecimal256 `json:"liquidity"`
	Total     *math.HexOrDecimal256 `json:"total"`
}

// SuperEligibility reports per pool whether a user may promote to the super tier.
type SuperEligibility struct {
	User      synstake.Address `json:"user"`
	Time      uint64           `json:"time"`
	Principal bool             `json:"principal"`
	Liquidity bool             `json:"liquidity"`
}

// Stats for marshal the global ledger.
type Stats struct {
	DepositedPrincipal      *math.HexOrDecimal256 `json:"depositedPrincipal"`
	DepositedLiquidity      *math.HexOrDecimal256 `json:"depositedLiquidity"`
	TotalRewardsInjected    *math.HexOrDecimal256 `json:"totalRewardsInjected"`
	TotalRewardsClaimed     *math.HexOrDecimal256 `json:"totalRewardsClaimed"`
	TotalFeeRevenueObserved *math.HexOrDecimal256 `json:"totalFeeRevenueObserved"`
	FeeRevenue              *math.HexOrDecimal256 `json:"feeRevenue"`
}

func convertStats(s *globalstats.Stats, feeRevenue *big.Int) *Stats {
	return &Stats{
		DepositedPrincipal:      amount(s.DepositedPrincipal),
		DepositedLiquidity:      amount(s.DepositedLiquidity),
		TotalRewardsInjected:    amount(s.TotalRewardsInjected),
		TotalRewardsClaimed:     amount(s.TotalRewardsClaimed),
		TotalFeeRevenueObserved: amount(s.TotalFeeRevenueObserved),
		FeeRevenue:              amount(feeRevenue),
	}
}

// Config for marshal the ledger configuration.
type Config struct {
	PrincipalToken          synstake.Address `json:"principalToken"`
	LiquidityToken          synstake.Address `json:"liquidityToken"`
	Vesting                 synstake.Address `json:"vesting"`
	Distributor             synstake.Address `json:"distributor"`
	Admin                   synstake.Address `json:"admin"`
	QualificationPeriod     uint64           `json:"qualificationPeriod"`
	UnstakeWaitPeriod       uint64           `json:"unstakeWaitPeriod"`
	RewardDuration          uint64           `json:"rewardDuration"`
	EarlyExitFeeBasisPoints uint64           `json:"earlyExitFeeBasisPoints"`
}

func convertConfig(c *staker.Config) *Config {
	return &Config{
		PrincipalToken:          c.PrincipalToken,
		LiquidityToken:          c.LiquidityToken,
		Vesting:                 c.Vesting,
		Distributor:             c.Distributor,
		Admin:                   c.Admin,
		QualificationPeriod:     c.QualificationPeriod,
		UnstakeWaitPeriod:       c.UnstakeWaitPeriod,
		RewardDuration:          c.RewardDuration,
		EarlyExitFeeBasisPoints: c.EarlyExitFeeBasisPoints,
	}
}
