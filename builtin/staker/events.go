// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"

	"github.com/vechain/synstake/synstake"
)

// Event names.
const (
	EventStakeAdded           = "StakeAdded"
	EventStakeRemoveRequested = "StakeRemoveRequested"
	EventStakeRemoved         = "StakeRemoved"
	EventClaimed              = "Claimed"
	EventRewardNotified       = "RewardNotified"
	EventSuperRecalculation   = "SuperRecalculation"
	EventSuperStaker          = "SuperStaker"
)

// Event is emitted by a successful operation. Events of a failed operation are dropped with its
// state changes.
type Event struct {
	Name   string
	Asset  synstake.AssetClass
	User   synstake.Address
	Amount *big.Int
}

// EventSink receives the events of each successful operation in order.
type EventSink func(*Event)

func (s *Staker) emit(name string, asset synstake.AssetClass, user synstake.Address, amount *big.Int) {
	if amount == nil {
		amount = new(big.Int)
	}
	s.pending = append(s.pending, &Event{
		Name:   name,
		Asset:  asset,
		User:   user,
		Amount: new(big.Int).Set(amount),
	})
}
