// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"

	"github.com/vechain/synstake/builtin/staker/pool"
	"github.com/vechain/synstake/builtin/staker/reverts"
	"github.com/vechain/synstake/metrics"
	"github.com/vechain/synstake/synstake"
)

var (
	metricOperations   = metrics.LazyLoadCounterVec("staker_operations_count", []string{"op", "result"})
	metricRejections   = metrics.LazyLoadCounterVec("staker_rejections_count", []string{"op", "reason"})
	metricStakeFlow    = metrics.LazyLoadCounterVec("staker_stake_units_count", []string{"asset", "direction"})
	metricRewardFlow   = metrics.LazyLoadCounterVec("staker_reward_units_count", []string{"direction"})
	metricPromotions   = metrics.LazyLoadCounterVec("staker_promotions_count", []string{"asset"})
	metricTotalStaked  = metrics.LazyLoadGaugeVec("staker_total_staked_units", []string{"asset", "tier"})
	metricFeeRecalc    = metrics.LazyLoadCounter("staker_super_recalculations_count")
	metricFeeDelivered = metrics.LazyLoadCounter("staker_fee_revenue_units_count")
)

// units converts an 18-decimal amount to whole units for metrics.
func units(amount *big.Int) int64 {
	u := new(big.Int).Quo(amount, synstake.Scale)
	if !u.IsInt64() {
		return 0
	}
	return u.Int64()
}

func recordResult(op string, err error) {
	if err == nil {
		metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": "ok"})
		return
	}
	metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": "failed"})
	reason := reverts.Reason(err)
	if reason == "" {
		reason = "internal"
	}
	metricRejections().AddWithLabel(1, map[string]string{"op": op, "reason": reason})
}

// recordEvent updates the flow meters from a committed event.
func recordEvent(e *Event) {
	asset := map[string]string{"asset": e.Asset.String()}
	switch e.Name {
	case EventStakeAdded:
		metricStakeFlow().AddWithLabel(units(e.Amount), map[string]string{"asset": e.Asset.String(), "direction": "in"})
	case EventStakeRemoved:
		metricStakeFlow().AddWithLabel(units(e.Amount), map[string]string{"asset": e.Asset.String(), "direction": "out"})
	case EventClaimed:
		metricRewardFlow().AddWithLabel(units(e.Amount), map[string]string{"direction": "claimed"})
	case EventRewardNotified:
		metricRewardFlow().AddWithLabel(units(e.Amount), map[string]string{"direction": "injected"})
	case EventSuperStaker:
		metricPromotions().AddWithLabel(1, asset)
	case EventSuperRecalculation:
		if e.Asset == synstake.Principal {
			metricFeeRecalc().Add(1)
		}
		metricFeeDelivered().Add(units(e.Amount))
	}
}

func recordLedger(class synstake.AssetClass, l *pool.Ledger) {
	metricTotalStaked().SetWithLabel(units(l.TotalStaked), map[string]string{"asset": class.String(), "tier": "all"})
	metricTotalStaked().SetWithLabel(units(l.TotalSuperStaked), map[string]string{"asset": class.String(), "tier": "super"})
}
