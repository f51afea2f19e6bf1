// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	bob           = synstake.BytesToAddress([]byte("bob"))
	carol         = synstake.BytesToAddress([]byte("carol"))
)

const (
	t0         = uint64(1_700_000_000)
	sevenDays  = 7 * synstake.Day
	thirtyDays = 30 * synstake.Day
)

// bn returns n * 10^exp.
func bn(n int64, exp int) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
}

func u64(v uint64) *uint64 { return &v }

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid number " + s)
	}
	return v
}

// failingAsset wraps an asset and fails pushes on demand.
type failingAsset struct {
	Asset
	failPush *bool
}

func (f *failingAsset) PushTo(recipient synstake.Address, amount *big.Int) error {
	if *f.failPush {
		return token.ErrInsufficientBalance
	}
	return f.Asset.PushTo(recipient, amount)
}

type testEnv struct {
	state     *state.State
	staker    *Staker
	principal *token.Token
	liquidity *token.Token
	resolve   AssetResolver
	events    []*Event
	failPush  bool
}

// newUninitialized returns an environment with funded users and no Init call.
func newUninitialized(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{state: state.New(db)}
	env.principal = token.New(principalAddr, env.state)
	env.liquidity = token.New(liquidityAddr, env.state)

	env.resolve = func(addr synstake.Address) Asset {
		var asset Asset
		switch addr {
		case principalAddr:
			asset = env.principal.Custody(stakerAddr)
		case liquidityAddr:
			asset = env.liquidity.Custody(stakerAddr)
		default:
			t.Fatalf("unknown token %v", addr)
		}
		return &failingAsset{Asset: asset, failPush: &env.failPush}
	}
	env.staker = New(stakerAddr, env.state, env.resolve, WithEventSink(func(e *Event) {
		env.events = append(env.events, e)
	}))

	for _, user := range []synstake.Address{alice, bob, carol} {
		env.fund(t, env.principal, user, bn(1000, 18))
		env.fund(t, env.liquidity, user, bn(100, 18))
	}
	env.fund(t, env.principal, distributor, bn(66528, 18))
	env.fund(t, env.principal, vestingAddr, bn(10000, 18))
	return env
}

func newTestEnv(t *testing.T) *testEnv {
	env := newUninitialized(t)
	require.NoError(t, env.staker.Init(admin, InitParams{
		PrincipalToken: principalAddr,
		LiquidityToken: liquidityAddr,
		Vesting:        vestingAddr,
		Distributor:    distributor,
	}))
	env.events = nil
	return env
}

func (env *testEnv) fund(t *testing.T, tok *token.Token, holder synstake.Address, amount *big.Int) {
	require.NoError(t, tok.Mint(holder, amount))
	require.NoError(t, tok.Approve(holder, stakerAddr, amount))
}

func (env *testEnv) balance(t *testing.T, tok *token.Token, holder synstake.Address) *big.Int {
	b, err := tok.BalanceOf(holder)
	require.NoError(t, err)
	return b
}

// notify funds both pools for 7 days: 0.01 and 0.1 units per second.
func (env *testEnv) notify(t *testing.T, now uint64) {
	require.NoError(t, env.staker.NotifyRewardAmount(distributor, bn(6048, 18), bn(60480, 18), now))
}

func (env *testEnv) claimable(t *testing.T, user synstake.Address, now uint64) (*big.Int, *big.Int) {
	p, l, err := env.staker.Claimable(user, now)
	require.NoError(t, err)
	return p, l
}

func (env *testEnv) eventNames() []string {
	names := make([]string, 0, len(env.events))
	for _, e := range env.events {
		names = append(names, e.Name)
	}
	return names
}

// assertBig compares amounts by value.
func assertBig(t *testing.T, expected, actual *big.Int, msgAndArgs ...any) {
	t.Helper()
	require.NotNil(t, actual, msgAndArgs...)
	assert.Equal(t, expected.String(), actual.String(), msgAndArgs...)
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	env *testEnv

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(env *testEnv) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), env: env}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) AddStake(class synstake.AssetClass, user synstake.Address, amount *big.Int, now uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.staker.AddStake(class, user, amount, now); err != nil {
			t.Fatalf("failed to add %v stake for %s: %v", class, user, err)
		}
		t.Logf("added %s %v stake for %s", amount, class, user)
	})
}

func (st *TestSequence) Notify(now uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.env.notify(t, now)
		t.Logf("rewards notified at %d", now)
	})
}

func (st *TestSequence) Promote(class synstake.AssetClass, user synstake.Address, now uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if _, err := st.env.staker.PromoteToSuper(class, user, now); err != nil {
			t.Fatalf("failed to promote %v position of %s: %v", class, user, err)
		}
		t.Logf("promoted %v position of %s", class, user)
	})
}

func (st *TestSequence) RequestUnstake(class synstake.AssetClass, user synstake.Address, now uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.staker.RequestUnstake(class, user, now); err != nil {
			t.Fatalf("failed to request %v unstake for %s: %v", class, user, err)
		}
		t.Logf("requested %v unstake for %s", class, user)
	})
}

func (st *TestSequence) Claim(user synstake.Address, now uint64, expected *big.Int) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		claimed, err := st.env.staker.Claim(user, now)
		if err != nil {
			t.Fatalf("failed to claim for %s: %v", user, err)
		}
		assertBig(t, expected, claimed, "claimed by %s", user)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}

	t.Logf("All test functions executed successfully")
}

type PoolAssertions struct {
	env   *testEnv
	class synstake.AssetClass

	totalStaked         *big.Int
	totalSuperStaked    *big.Int
	rewardRate          *big.Int
	superRewardRate     *big.Int
	rewardPerUnit       *big.Int
	superRewardPerUnit  *big.Int
	lastSuperUpdateTime *uint64
}

func AssertPool(env *testEnv, class synstake.AssetClass) *PoolAssertions {
	return &PoolAssertions{env: env, class: class}
}

func (pa *PoolAssertions) TotalStaked(v *big.Int) *PoolAssertions {
	pa.totalStaked = v
	return pa
}

func (pa *PoolAssertions) TotalSuperStaked(v *big.Int) *PoolAssertions {
	pa.totalSuperStaked = v
	return pa
}

func (pa *PoolAssertions) RewardRate(v *big.Int) *PoolAssertions {
	pa.rewardRate = v
	return pa
}

func (pa *PoolAssertions) SuperRewardRate(v *big.Int) *PoolAssertions {
	pa.superRewardRate = v
	return pa
}

func (pa *PoolAssertions) RewardPerUnit(v *big.Int) *PoolAssertions {
	pa.rewardPerUnit = v
	return pa
}

func (pa *PoolAssertions) SuperRewardPerUnit(v *big.Int) *PoolAssertions {
	pa.superRewardPerUnit = v
	return pa
}

func (pa *PoolAssertions) LastSuperUpdateTime(v uint64) *PoolAssertions {
	pa.lastSuperUpdateTime = &v
	return pa
}

func (pa *PoolAssertions) Assert(t *testing.T) {
	l, err := pa.env.staker.Pool(pa.class)
	require.NoError(t, err)

	if pa.totalStaked != nil {
		assertBig(t, pa.totalStaked, l.TotalStaked, "%v total staked", pa.class)
	}
	if pa.totalSuperStaked != nil {
		assertBig(t, pa.totalSuperStaked, l.TotalSuperStaked, "%v total super staked", pa.class)
	}
	if pa.rewardRate != nil {
		assertBig(t, pa.rewardRate, l.RewardRate, "%v reward rate", pa.class)
	}
	if pa.superRewardRate != nil {
		assertBig(t, pa.superRewardRate, l.SuperRewardRate, "%v super reward rate", pa.class)
	}
	if pa.rewardPerUnit != nil {
		assertBig(t, pa.rewardPerUnit, l.RewardPerUnitStored, "%v reward per unit", pa.class)
	}
	if pa.superRewardPerUnit != nil {
		assertBig(t, pa.superRewardPerUnit, l.SuperRewardPerUnitStored, "%v super reward per unit", pa.class)
	}
	if pa.lastSuperUpdateTime != nil {
		assert.Equal(t, *pa.lastSuperUpdateTime, l.LastSuperUpdateTime, "%v last super update", pa.class)
	}
}
