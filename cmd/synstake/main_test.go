// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/synstake/builtin/staker"
	"github.com/vechain/synstake/builtin/token"
	"github.com/vechain/synstake/genesis"
	"github.com/vechain/synstake/lvldb"
	"github.com/vechain/synstake/state"
	"github.com/vechain/synstake/synstake"
)

const t0 = 1_700_000_000

func run(t *testing.T, dir string, args ...string) error {
	t.Helper()
	argv := append([]string{"synstake"}, args...)
	argv = append(argv, "--data-dir", dir, "--verbosity", "0")
	return newApp().Run(argv)
}

func openState(t *testing.T, dir string) (*lvldb.LevelDB, *state.State, *genesis.Meta) {
	db, err := lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{})
	require.NoError(t, err)
	meta, err := genesis.LoadMeta(db)
	require.NoError(t, err)
	return db, state.New(db), meta
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	assert.ErrorContains(t, run(t, dir, "init"), "either -genesis or -devnet must be set")
	assert.ErrorContains(t, run(t, dir, "init", "--devnet", "--log-format", "xml"), `-log-format: unknown log format "xml"`)
	require.NoError(t, run(t, dir, "init", "--devnet"))
	assert.ErrorContains(t, run(t, dir, "init", "--devnet"), "db already holds genesis")

	db, _, meta := openState(t, dir)
	defer db.Close()
	assert.Equal(t, "devnet", meta.Name)
	assert.Equal(t, genesis.DevStaker, meta.Staker)
}

func TestOperationsNeedGenesis(t *testing.T) {
	dir := t.TempDir()
	caller := genesis.DevAccounts()[3].Address.String()

	err := run(t, dir, "stake", "--caller", caller, "--amount", "1")
	assert.ErrorContains(t, err, "ledger not initialized")
}

func TestStakeAndClaim(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, dir, "init", "--devnet"))

	accs := genesis.DevAccounts()
	distributor := accs[1].Address.String()
	alice := accs[3].Address
	at := func(dt int) string { return fmt.Sprint(t0 + dt) }

	require.NoError(t, run(t, dir, "stake", "--caller", alice.String(), "--amount", synstake.Units(100).String(), "--time", at(0)))
	require.NoError(t, run(t, dir, "notify", "--caller", distributor, "--amount", "604800", "--time", at(0)))

	// rejected operations write nothing
	err := run(t, dir, "stake", "--caller", alice.String(), "--amount", "0", "--time", at(10))
	assert.ErrorIs(t, err, staker.ErrZeroAmount)
	err = run(t, dir, "notify", "--caller", alice.String(), "--amount", "1", "--time", at(10))
	assert.ErrorIs(t, err, staker.ErrNotDistributor)
	err = run(t, dir, "stake", "--caller", alice.String(), "--asset", "gold", "--amount", "1")
	assert.ErrorContains(t, err, "-asset")
	assert.ErrorContains(t, run(t, dir, "claim", "--time", at(10)), "-caller must be set")

	require.NoError(t, run(t, dir, "claim", "--caller", alice.String(), "--time", at(1000)))
	require.NoError(t, run(t, dir, "stake-lp", "--caller", alice.String(), "--amount", synstake.Units(5).String(), "--time", at(1000)))

	db, st, meta := openState(t, dir)
	defer db.Close()

	principal := token.New(genesis.DevPrincipalToken, st)
	balance, err := principal.BalanceOf(alice)
	require.NoError(t, err)
	expected := new(big.Int).Sub(synstake.Units(1_000_000), synstake.Units(100))
	expected.Add(expected, big.NewInt(1000))
	assert.Equal(t, expected, balance)

	s := genesis.NewStaker(st, meta.Staker)
	pos, err := s.Position(synstake.Principal, alice)
	require.NoError(t, err)
	assert.Equal(t, synstake.Units(100), pos.Amount)
	assert.Equal(t, uint64(t0), pos.StakeStart)

	lp, err := s.Position(synstake.Liquidity, alice)
	require.NoError(t, err)
	assert.Equal(t, synstake.Units(5), lp.Amount)
}

func TestUnstakeWithFee(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, dir, "init", "--devnet"))
	alice := genesis.DevAccounts()[4].Address.String()

	require.NoError(t, run(t, dir, "stake", "--caller", alice, "--amount", "1000", "--time", fmt.Sprint(t0)))
	require.NoError(t, run(t, dir, "request-unstake", "--caller", alice, "--time", fmt.Sprint(t0+10)))
	assert.ErrorIs(t, run(t, dir, "unstake", "--caller", alice, "--time", fmt.Sprint(t0+20)), staker.ErrCannotUnstake)
	require.NoError(t, run(t, dir, "unstake-fee", "--caller", alice, "--time", fmt.Sprint(t0+20)))

	db, st, meta := openState(t, dir)
	defer db.Close()
	pos, err := genesis.NewStaker(st, meta.Staker).Position(synstake.Principal, genesis.DevAccounts()[4].Address)
	require.NoError(t, err)
	assert.Zero(t, pos.Amount.Sign())
}
