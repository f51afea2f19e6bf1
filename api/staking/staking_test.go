// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/synstake/builtin/staker"
	"github.com/vechain/synstake/builtin/token"
	"github.com/vechain/synstake/lvldb"
	"github.com/vechain/synstake/state"
	"github.com/vechain/synstake/synstake"
)

var (
	stakerAddr    = synstake.BytesToAddress([]byte("staker"))
	principalAddr = synstake.BytesToAddress([]byte("principal"))
	liquidityAddr = synstake.BytesToAddress([]byte("liquidity"))
	vestingAddr   = synstake.BytesToAddress([]byte("vesting"))
	distributor   = synstake.BytesToAddress([]byte("distributor"))
	admin         = synstake.BytesToAddress([]byte("admin"))
	alice         = synstake.BytesToAddress([]byte("alice"))
)

const t0 = uint64(1_700_000_000)

func newLedger(t *testing.T, initialize bool) *staker.Staker {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.New(db)
	principal := token.New(principalAddr, st)
	liquidity := token.New(liquidityAddr, st)
	s := staker.New(stakerAddr, st, func(addr synstake.Address) staker.Asset {
		if addr == liquidityAddr {
			return liquidity.Custody(stakerAddr)
		}
		return principal.Custody(stakerAddr)
	})
	if !initialize {
		return s
	}

	require.NoError(t, s.Init(admin, staker.InitParams{
		PrincipalToken: principalAddr,
		LiquidityToken: liquidityAddr,
		Vesting:        vestingAddr,
		Distributor:    distributor,
	}))
	for holder, amount := range map[synstake.Address]*big.Int{
		alice:       synstake.Units(1000),
		distributor: synstake.Units(6048),
	} {
		require.NoError(t, principal.Mint(holder, amount))
		require.NoError(t, principal.Approve(holder, stakerAddr, amount))
	}
	require.NoError(t, s.AddStake(synstake.Principal, alice, synstake.Units(100), t0))
	require.NoError(t, s.InjectReward(synstake.Principal, distributor, synstake.Units(6048), 7*synstake.Day, t0))
	return s
}

func newServer(t *testing.T, s *staker.Staker) *httptest.Server {
	router := mux.NewRouter()
	New(s, func() uint64 { return t0 + 1000 }).Mount(router, "/staking")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func decode[T any](t *testing.T, body []byte) *T {
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return &v
}

func str(v *math.HexOrDecimal256) string {
	return (*big.Int)(v).String()
}

func TestStaking(t *testing.T) {
	ts := newServer(t, newLedger(t, true))

	for name, tt := range map[string]func(t *testing.T, ts *httptest.Server){
		"getPool":            getPool,
		"getPosition":        getPosition,
		"getClaimable":       getClaimable,
		"getClaimableAtTime": getClaimableAtTime,
		"getSuper":           getSuper,
		"getStats":           getStats,
		"getConfig":          getConfig,
		"badRequests":        badRequests,
	} {
		t.Run(name, func(t *testing.T) {
			tt(t, ts)
		})
	}
}

func getPool(t *testing.T, ts *httptest.Server) {
	body, code := httpGet(t, ts.URL+"/staking/pools/principal")
	require.Equal(t, http.StatusOK, code, string(body))

	p := decode[Pool](t, body)
	assert.Equal(t, "principal", p.Asset)
	assert.Equal(t, synstake.Units(100).String(), str(p.TotalStaked))
	assert.Equal(t, "10000000000000000", str(p.RewardRate))
	assert.Equal(t, t0, p.LastUpdateTime)
	assert.Equal(t, t0+7*synstake.Day, p.PeriodFinish)

	body, code = httpGet(t, ts.URL+"/staking/pools/lp")
	require.Equal(t, http.StatusOK, code, string(body))
	p = decode[Pool](t, body)
	assert.Equal(t, "liquidity", p.Asset)
	assert.Equal(t, "0", str(p.TotalStaked))
}

func getPosition(t *testing.T, ts *httptest.Server) {
	body, code := httpGet(t, ts.URL+"/staking/positions/principal/"+alice.String())
	require.Equal(t, http.StatusOK, code, string(body))

	p := decode[Position](t, body)
	assert.Equal(t, alice, p.User)
	assert.Equal(t, synstake.Units(100).String(), str(p.Amount))
	assert.Equal(t, t0, p.StakeStart)
	assert.False(t, p.IsSuperStaker)
	assert.False(t, p.IsWithdrawing)
}

func getClaimable(t *testing.T, ts *httptest.Server) {
	body, code := httpGet(t, ts.URL+"/staking/claimable/"+alice.String())
	require.Equal(t, http.StatusOK, code, string(body))

	c := decode[Claimable](t, body)
	assert.Equal(t, t0+1000, c.Time)
	assert.Equal(t, synstake.Units(10).String(), str(c.Principal))
	assert.Equal(t, "0", str(c.Liquidity))
	assert.Equal(t, synstake.Units(10).String(), str(c.Total))
}

func getClaimableAtTime(t *testing.T, ts *httptest.Server) {
	body, code := httpGet(t, ts.URL+"/staking/claimable/"+alice.String()+"?time=1700000100")
	require.Equal(t, http.StatusOK, code, string(body))

	c := decode[Claimable](t, body)
	assert.Equal(t, t0+100, c.Time)
	assert.Equal(t, synstake.Units(1).String(), str(c.Principal))
}

func getSuper(t *testing.T, ts *httptest.Server) {
	body, code := httpGet(t, ts.URL+"/staking/super/"+alice.String())
	require.Equal(t, http.StatusOK, code, string(body))
	s := decode[SuperEligibility](t, body)
	assert.False(t, s.Principal)
	assert.False(t, s.Liquidity)

	body, code = httpGet(t, ts.URL+"/staking/super/"+alice.String()+"?time=1702592000")
	require.Equal(t, http.StatusOK, code, string(body))
	s = decode[SuperEligibility](t, body)
	assert.True(t, s.Principal)
	assert.False(t, s.Liquidity)
}

func getStats(t *testing.T, ts *httptest.Server) {
	body, code := httpGet(t, ts.URL+"/staking/stats")
	require.Equal(t, http.StatusOK, code, string(body))

	s := decode[Stats](t, body)
	assert.Equal(t, synstake.Units(100).String(), str(s.DepositedPrincipal))
	assert.Equal(t, "0", str(s.DepositedLiquidity))
	assert.Equal(t, synstake.Units(6048).String(), str(s.TotalRewardsInjected))
	assert.Equal(t, "0", str(s.TotalRewardsClaimed))
	assert.Equal(t, "0", str(s.FeeRevenue))
}

func getConfig(t *testing.T, ts *httptest.Server) {
	body, code := httpGet(t, ts.URL+"/staking/config")
	require.Equal(t, http.StatusOK, code, string(body))

	c := decode[Config](t, body)
	assert.Equal(t, principalAddr, c.PrincipalToken)
	assert.Equal(t, liquidityAddr, c.LiquidityToken)
	assert.Equal(t, admin, c.Admin)
	assert.Equal(t, synstake.DefaultSuperQualificationPeriod, c.QualificationPeriod)
	assert.Equal(t, synstake.DefaultUnstakeWaitPeriod, c.UnstakeWaitPeriod)
	assert.Equal(t, synstake.DefaultEarlyExitFeeBasisPoints, c.EarlyExitFeeBasisPoints)
}

func badRequests(t *testing.T, ts *httptest.Server) {
	for _, path := range []string{
		"/staking/pools/gold",
		"/staking/positions/gold/" + alice.String(),
		"/staking/positions/principal/0x1234",
		"/staking/claimable/alice",
		"/staking/claimable/" + alice.String() + "?time=yesterday",
		"/staking/super/" + alice.String() + "?time=-5",
	} {
		body, code := httpGet(t, ts.URL+path)
		assert.Equal(t, http.StatusBadRequest, code, path+": "+string(body))
	}

	// the pools were last updated at t0
	body, code := httpGet(t, ts.URL+"/staking/claimable/"+alice.String()+"?time=1699999999")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "clock went backwards\n", string(body))
}

func TestNotInitialized(t *testing.T) {
	ts := newServer(t, newLedger(t, false))

	for _, path := range []string{"/staking/config", "/staking/stats", "/staking/super/" + alice.String()} {
		body, code := httpGet(t, ts.URL+path)
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Equal(t, "init not done\n", string(body))
	}

	body, code := httpGet(t, ts.URL+"/staking/pools/principal")
	require.Equal(t, http.StatusOK, code, string(body))
	assert.Equal(t, "0", str(decode[Pool](t, body).TotalStaked))
}
