// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/big"

	"github.com/vechain/synstake/builtin/solidity"
	"github.com/vechain/synstake/synstake"
)

var (
	slotDepositedPrincipal = synstake.BytesToBytes32([]byte(("deposited-principal")))
	slotDepositedLiquidity = synstake.BytesToBytes32([]byte(("deposited-liquidity")))
	slotRewardsInjected    = synstake.BytesToBytes32([]byte(("rewards-injected")))
	slotRewardsClaimed     = synstake.BytesToBytes32([]byte(("rewards-claimed")))
	slotFeeRevenue         = synstake.BytesToBytes32([]byte(("fee-revenue-observed")))
)

// Stats is a snapshot of the global ledger.
type Stats struct {
	DepositedPrincipal      *big.Int
	DepositedLiquidity      *big.Int
	TotalRewardsInjected    *big.Int
	TotalRewardsClaimed     *big.Int
	TotalFeeRevenueObserved *big.Int
}

// Deposited returns the deposit total of the asset class.
func (s *Stats) Deposited(class synstake.AssetClass) *big.Int {
	if class == synstake.Liquidity {
		return s.DepositedLiquidity
	}
	return s.DepositedPrincipal
}

// Service keeps the ledger wide totals. They are observational: no operation reads them to decide
// an outcome, except the balance derived fee revenue.
type Service struct {
	depositedPrincipal *solidity.Uint256
	depositedLiquidity *solidity.Uint256
	rewardsInjected    *solidity.Uint256
	rewardsClaimed     *solidity.Uint256
	feeRevenue         *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		depositedPrincipal: solidity.NewUint256(sctx, slotDepositedPrincipal),
		depositedLiquidity: solidity.NewUint256(sctx, slotDepositedLiquidity),
		rewardsInjected:    solidity.NewUint256(sctx, slotRewardsInjected),
		rewardsClaimed:     solidity.NewUint256(sctx, slotRewardsClaimed),
		feeRevenue:         solidity.NewUint256(sctx, slotFeeRevenue),
	}
}

func (s *Service) deposited(class synstake.AssetClass) *solidity.Uint256 {
	if class == synstake.Liquidity {
		return s.depositedLiquidity
	}
	return s.depositedPrincipal
}

func (s *Service) Get() (*Stats, error) {
	var (
		stats Stats
		err   error
	)
	for _, f := range []struct {
		slot *solidity.Uint256
		dst  **big.Int
	}{
		{s.depositedPrincipal, &stats.DepositedPrincipal},
		{s.depositedLiquidity, &stats.DepositedLiquidity},
		{s.rewardsInjected, &stats.TotalRewardsInjected},
		{s.rewardsClaimed, &stats.TotalRewardsClaimed},
		{s.feeRevenue, &stats.TotalFeeRevenueObserved},
	} {
		if *f.dst, err = f.slot.Get(); err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

func (s *Service) AddDeposit(class synstake.AssetClass, amount *big.Int) error {
	return s.deposited(class).Add(amount)
}

func (s *Service) RemoveDeposit(class synstake.AssetClass, amount *big.Int) error {
	return s.deposited(class).Sub(amount)
}

func (s *Service) AddRewardsInjected(amount *big.Int) error {
	return s.rewardsInjected.Add(amount)
}

func (s *Service) AddRewardsClaimed(amount *big.Int) error {
	return s.rewardsClaimed.Add(amount)
}

func (s *Service) AddFeeRevenue(amount *big.Int) error {
	return s.feeRevenue.Add(amount)
}
