// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/synstake/builtin/solidity"
	"github.com/vechain/synstake/lvldb"
	"github.com/vechain/synstake/state"
	"github.com/vechain/synstake/synstake"
)

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(solidity.NewContext(synstake.BytesToAddress([]byte("staker")), state.New(db)))
}

func TestService(t *testing.T) {
	svc := newService(t)

	stats, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.DepositedPrincipal.Sign())
	assert.Equal(t, 0, stats.TotalFeeRevenueObserved.Sign())

	require.NoError(t, svc.AddDeposit(synstake.Principal, big.NewInt(500)))
	require.NoError(t, svc.AddDeposit(synstake.Liquidity, big.NewInt(40)))
	require.NoError(t, svc.RemoveDeposit(synstake.Principal, big.NewInt(100)))
	require.NoError(t, svc.AddRewardsInjected(big.NewInt(6048)))
	require.NoError(t, svc.AddRewardsClaimed(big.NewInt(25)))
	require.NoError(t, svc.AddFeeRevenue(big.NewInt(9)))

	stats, err = svc.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(400), stats.DepositedPrincipal)
	assert.Equal(t, big.NewInt(40), stats.DepositedLiquidity)
	assert.Equal(t, big.NewInt(400), stats.Deposited(synstake.Principal))
	assert.Equal(t, big.NewInt(40), stats.Deposited(synstake.Liquidity))
	assert.Equal(t, big.NewInt(6048), stats.TotalRewardsInjected)
	assert.Equal(t, big.NewInt(25), stats.TotalRewardsClaimed)
	assert.Equal(t, big.NewInt(9), stats.TotalFeeRevenueObserved)
}

func TestRemoveDepositUnderflow(t *testing.T) {
	svc := newService(t)
	require.NoError(t, svc.AddDeposit(synstake.Liquidity, big.NewInt(1)))

	err := svc.RemoveDeposit(synstake.Liquidity, big.NewInt(2))
	assert.EqualError(t, err, "deposited-liquidity uint256 cannot be negative")
}
