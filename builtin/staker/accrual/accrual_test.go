// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/synstake/synstake"
)

func units(n int64) *big.Int {
	return synstake.Units(n)
}

// 0.01 units per second
var rate = big.NewInt(1e16)

func TestElapsed(t *testing.T) {
	assert.Equal(t, uint64(10), Elapsed(100, 110, 200))
	assert.Equal(t, uint64(100), Elapsed(100, 300, 200))
	assert.Equal(t, uint64(0), Elapsed(100, 300, 50))
	assert.Equal(t, uint64(0), Elapsed(100, 100, 200))
	assert.Equal(t, uint64(0), Elapsed(100, 90, 200))
}

func TestRewardPerUnit(t *testing.T) {
	// two stakers of 100 units, one second at 0.01/s
	perUnit, err := RewardPerUnit(new(big.Int), rate, 1, units(200))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5e13), perUnit)

	earned, err := Earned(units(100), perUnit, new(big.Int))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5e15), earned, "0.005 each")

	// 1000 seconds over 400 units
	perUnit, err = RewardPerUnit(new(big.Int), rate, 1000, units(400))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(25e15), perUnit)

	earned, err = Earned(units(100), perUnit, new(big.Int))
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Mul(big.NewInt(25), big.NewInt(1e17)), earned, "2.5 units")
}

func TestRewardPerUnitNoStake(t *testing.T) {
	stored := big.NewInt(123)
	perUnit, err := RewardPerUnit(stored, rate, 1000, new(big.Int))
	require.NoError(t, err)
	assert.Equal(t, stored, perUnit)

	perUnit, err = RewardPerUnit(stored, new(big.Int), 1000, units(1))
	require.NoError(t, err)
	assert.Equal(t, stored, perUnit)

	perUnit, err = RewardPerUnit(nil, rate, 0, units(1))
	require.NoError(t, err)
	assert.Equal(t, 0, perUnit.Sign())
}

func TestRewardPerUnitMonotonic(t *testing.T) {
	stored := new(big.Int)
	for range 200 {
		next, err := RewardPerUnit(stored, big.NewInt(rand.Int64N(1e18)), rand.Uint64N(1000), big.NewInt(rand.Int64N(1e9)+1)) //#nosec G404
		require.NoError(t, err)
		assert.True(t, next.Cmp(stored) >= 0)
		stored = next
	}
}

func TestOverflow(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 250)
	_, err := RewardPerUnit(new(big.Int), huge, 1<<20, big.NewInt(1))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = RewardPerUnit(new(big.Int).Lsh(big.NewInt(1), 256), rate, 1, big.NewInt(1))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Earned(huge, huge, new(big.Int))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = RewardPerUnit(big.NewInt(-1), rate, 1, big.NewInt(1))
	assert.ErrorIs(t, err, ErrNegative)
}

func TestEarnedNeverNegative(t *testing.T) {
	earned, err := Earned(units(1), big.NewInt(5), big.NewInt(10))
	require.NoError(t, err)
	assert.Equal(t, 0, earned.Sign())

	earned, err = Earned(new(big.Int), big.NewInt(10), big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, 0, earned.Sign())
}

func TestRate(t *testing.T) {
	r, err := Rate(units(6048), 7*synstake.Day)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1e16), r)

	// the half of a 259200 fee spread over 30 days
	r, err = Rate(units(129600), 30*synstake.Day)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5e16), r)

	r, err = Rate(big.NewInt(10), 3)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3), r, "truncates")

	_, err = Rate(units(1), 0)
	assert.ErrorIs(t, err, ErrZeroDuration)
}

func TestAfterFee(t *testing.T) {
	kept, fee, err := AfterFee(units(100), 1000)
	require.NoError(t, err)
	assert.Equal(t, units(90), kept)
	assert.Equal(t, units(10), fee)

	kept, fee, err = AfterFee(big.NewInt(15), 1000)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(13), kept)
	assert.Equal(t, big.NewInt(2), fee)

	kept, fee, err = AfterFee(units(5), 0)
	require.NoError(t, err)
	assert.Equal(t, units(5), kept)
	assert.Equal(t, 0, fee.Sign())

	_, _, err = AfterFee(units(5), 10001)
	assert.Error(t, err)
}
