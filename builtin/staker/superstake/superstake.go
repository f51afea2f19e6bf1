// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package superstake turns fee revenue into the super tier reward streams of both pools.
package superstake

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/vechain/synstake/builtin/solidity"
	"github.com/vechain/synstake/builtin/staker/pool"
	"github.com/vechain/synstake/log"
	"github.com/vechain/synstake/synstake"
)

var logger = log.WithContext("pkg", "superstake")

var slotConsumed = synstake.BytesToBytes32([]byte("fee-consumed"))

// FeeRevenue reports the total fee revenue routed to the ledger so far. It never decreases.
type FeeRevenue interface {
	TotalFeeRevenue() (*big.Int, error)
}

// FeeRevenueFunc adapts a function to FeeRevenue.
type FeeRevenueFunc func() (*big.Int, error)

func (f FeeRevenueFunc) TotalFeeRevenue() (*big.Int, error) { return f() }

// Recalculation is the fee revenue handed to each pool's super stream by one promotion.
type Recalculation struct {
	Principal *big.Int
	Liquidity *big.Int
}

// Total returns the revenue consumed by the recalculation.
func (r *Recalculation) Total() *big.Int {
	return new(big.Int).Add(r.Principal, r.Liquidity)
}

// IsZero reports whether no new revenue was found.
func (r *Recalculation) IsZero() bool {
	return r.Principal.Sign() == 0 && r.Liquidity.Sign() == 0
}

type Service struct {
	consumed *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		consumed: solidity.NewUint256(sctx, slotConsumed),
	}
}

// Consumed returns the fee revenue already distributed.
func (s *Service) Consumed() (*big.Int, error) {
	return s.consumed.Get()
}

// ClaimDelta splits the revenue observed above the consumed mark evenly between the two pools and
// moves the mark past what was split. An odd unit is left for the next claim.
func (s *Service) ClaimDelta(total *big.Int) (*Recalculation, error) {
	consumed, err := s.consumed.Get()
	if err != nil {
		return nil, err
	}
	rec := &Recalculation{Principal: new(big.Int), Liquidity: new(big.Int)}
	if total.Cmp(consumed) <= 0 {
		return rec, nil
	}

	half := new(big.Int).Sub(total, consumed)
	half.Rsh(half, 1)
	rec.Principal.Set(half)
	rec.Liquidity.Set(half)

	if err := s.consumed.Add(rec.Total()); err != nil {
		return nil, err
	}
	return rec, nil
}

// Recalculate claims the new fee revenue and restarts the super stream of every pool that receives
// a share. Pools always end synced to now, with or without new revenue.
func (s *Service) Recalculate(now, period uint64, fees FeeRevenue, principal, liquidity *pool.Service) (*Recalculation, error) {
	total, err := fees.TotalFeeRevenue()
	if err != nil {
		return nil, errors.WithMessage(err, "fee revenue")
	}
	rec, err := s.ClaimDelta(total)
	if err != nil {
		return nil, err
	}

	for _, share := range []struct {
		pool   *pool.Service
		amount *big.Int
	}{
		{principal, rec.Principal},
		{liquidity, rec.Liquidity},
	} {
		if share.amount.Sign() == 0 {
			_, err = share.pool.Sync(now)
		} else {
			_, err = share.pool.NotifySuperReward(now, share.amount, period)
		}
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("super rewards recalculated", "revenue", total, "principal", rec.Principal, "liquidity", rec.Liquidity)
	return rec, nil
}
