// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/vechain/synstake/builtin/staker/reverts"
)

var (
	ErrInitDone       = reverts.NewConfiguration("init already done")
	ErrNotInitialized = reverts.NewConfiguration("init not done")

	ErrNotDistributor = reverts.NewUnauthorized("caller is not reward distributor")
	ErrNotAdmin       = reverts.NewUnauthorized("caller is not admin")
	ErrNotVesting     = reverts.NewUnauthorized("caller is not vesting")

	ErrZeroAmount       = reverts.New("zero amount")
	ErrNegativeAmount   = reverts.New("negative amount")
	ErrZeroDuration     = reverts.New("zero duration")
	ErrZeroAddress      = reverts.New("zero address")
	ErrUnknownAsset     = reverts.New("unknown asset")
	ErrWithdrawing      = reverts.New("cannot when withdrawing")
	ErrAlreadySuper     = reverts.New("already super staker")
	ErrTooSoon          = reverts.New("too soon")
	ErrNothingStaked    = reverts.New("nothing staked")
	ErrNothingToClaim   = reverts.New("nothing to claim")
	ErrNothingToRestake = reverts.New("nothing to restake")
	ErrCannotUnstake    = reverts.New("cannot unstake")
	ErrUnstakeFirst     = reverts.New("unstake first")
)
