// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package synstake

import (
	"math/big"
)

// Ledger constants.
const (
	// BasisPoints is the denominator of fee rates.
	BasisPoints uint64 = 10000

	Day = uint64(24 * 60 * 60)

	DefaultSuperQualificationPeriod = 30 * Day
	DefaultUnstakeWaitPeriod        = 7 * Day
	DefaultRewardDuration           = 7 * Day
	DefaultEarlyExitFeeBasisPoints  = uint64(1000)
)

// Scale is the fixed-point multiplier of the reward-per-unit accumulators.
var Scale = big.NewInt(1e18)

// Units returns n whole units of an 18-decimal asset.
func Units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), Scale)
}
