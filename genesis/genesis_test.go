// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/synstake/builtin/token"
	"github.com/vechain/synstake/genesis"
	"github.com/vechain/synstake/lvldb"
	"github.com/vechain/synstake/state"
	"github.com/vechain/synstake/synstake"
)

const sample = `
name: testnet
launchTime: 1700000000
staker: 0x000000000000000000000000000000000000ff01
admin: 0x00000000000000000000000000000000000000a1
vesting: 0x00000000000000000000000000000000000000a2
distributor: 0x00000000000000000000000000000000000000a3
tokens:
  principal:
    address: 0x000000000000000000000000000000000000ee01
    accounts:
      - address: 0x00000000000000000000000000000000000000b1
        balance: 1000000000000000000000
        allowance: 0x3635c9adc5dea00000
      - address: 0x00000000000000000000000000000000000000a3
        balance: 6048000000000000000000
  liquidity:
    address: 0x000000000000000000000000000000000000ee02
    accounts:
      - address: 0x00000000000000000000000000000000000000b1
        balance: 100000000000000000000
params:
  qualificationPeriod: 240h
  unstakeWaitPeriod: 72h
  earlyExitFeeBasisPoints: 500
`

var (
	stakerAddr = synstake.MustParseAddress("0x000000000000000000000000000000000000ff01")
	principal  = synstake.MustParseAddress("0x000000000000000000000000000000000000ee01")
	liquidity  = synstake.MustParseAddress("0x000000000000000000000000000000000000ee02")
	holder     = synstake.MustParseAddress("0x00000000000000000000000000000000000000b1")
)

func TestParse(t *testing.T) {
	cfg, err := genesis.Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "testnet", cfg.Name)
	assert.Equal(t, uint64(1700000000), cfg.LaunchTime)
	assert.Equal(t, stakerAddr, cfg.Staker)
	assert.Equal(t, principal, cfg.Tokens.Principal.Address)
	require.Len(t, cfg.Tokens.Principal.Accounts, 2)
	assert.Equal(t, synstake.Units(1000).String(), cfg.Tokens.Principal.Accounts[0].Balance.Int().String())
	assert.Equal(t, synstake.Units(1000).String(), cfg.Tokens.Principal.Accounts[0].Allowance.Int().String())
	assert.Nil(t, cfg.Tokens.Principal.Accounts[1].Allowance)
	require.NotNil(t, cfg.Params.QualificationPeriod)
	assert.Equal(t, 240*time.Hour, *cfg.Params.QualificationPeriod)
	assert.Nil(t, cfg.Params.RewardDuration)
	require.NotNil(t, cfg.Params.EarlyExitFeeBasisPoints)
	assert.Equal(t, uint64(500), *cfg.Params.EarlyExitFeeBasisPoints)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		err      string
	}{
		{"unknown field", "name: testnet", "network: testnet", "field network not found"},
		{"zero staker", "staker: 0x000000000000000000000000000000000000ff01", "staker: 0x0000000000000000000000000000000000000000", "staker address must be set"},
		{"bad address", "admin: 0x00000000000000000000000000000000000000a1", "admin: 0xa1", "invalid length"},
		{"same tokens", "address: 0x000000000000000000000000000000000000ee02", "address: 0x000000000000000000000000000000000000ee01", "principal and liquidity tokens must differ"},
		{"negative balance", "balance: 100000000000000000000", "balance: -1", "invalid amount"},
		{"missing balance", "        balance: 6048000000000000000000\n", "", "balance must be set"},
		{"fractional duration", "unstakeWaitPeriod: 72h", "unstakeWaitPeriod: 1500ms", "unstakeWaitPeriod must be whole seconds"},
		{"integer duration", "unstakeWaitPeriod: 72h", "unstakeWaitPeriod: 259200", "decode genesis"},
		{"fee too high", "earlyExitFeeBasisPoints: 500", "earlyExitFeeBasisPoints: 10001", "earlyExitFeeBasisPoints above 10000"},
		{"zero reward duration", "unstakeWaitPeriod: 72h", "unstakeWaitPeriod: 72h\n  rewardDuration: 0s", "rewardDuration must not be 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(sample, tt.old, tt.new, 1)
			require.NotEqual(t, sample, doc)
			_, err := genesis.Parse([]byte(doc))
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestDuplicatedAccount(t *testing.T) {
	cfg, err := genesis.Parse([]byte(sample))
	require.NoError(t, err)

	cfg.Tokens.Liquidity.Accounts = append(cfg.Tokens.Liquidity.Accounts, cfg.Tokens.Liquidity.Accounts[0])
	assert.ErrorContains(t, cfg.Validate(), "liquidity: duplicated account")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := genesis.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "testnet", cfg.Name)

	_, err = genesis.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read genesis file")
}

func TestBuild(t *testing.T) {
	cfg, err := genesis.Parse([]byte(sample))
	require.NoError(t, err)
	gen, err := genesis.New(cfg)
	require.NoError(t, err)

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, gen.Build(db))

	meta, err := genesis.LoadMeta(db)
	require.NoError(t, err)
	assert.Equal(t, gen.ID(), meta.ID)
	assert.Equal(t, "testnet", meta.Name)
	assert.Equal(t, stakerAddr, meta.Staker)
	assert.Equal(t, uint64(1700000000), meta.LaunchTime)

	st := state.New(db)
	balance, err := token.New(principal, st).BalanceOf(holder)
	require.NoError(t, err)
	assert.Equal(t, synstake.Units(1000).String(), balance.String())
	allowance, err := token.New(principal, st).Allowance(holder, stakerAddr)
	require.NoError(t, err)
	assert.Equal(t, synstake.Units(1000).String(), allowance.String())
	allowance, err = token.New(liquidity, st).Allowance(holder, stakerAddr)
	require.NoError(t, err)
	assert.Equal(t, "0", allowance.String())

	ledgerCfg, err := genesis.NewStaker(st, stakerAddr).Config()
	require.NoError(t, err)
	assert.Equal(t, principal, ledgerCfg.PrincipalToken)
	assert.Equal(t, liquidity, ledgerCfg.LiquidityToken)
	assert.Equal(t, cfg.Admin, ledgerCfg.Admin)
	assert.Equal(t, uint64(240*3600), ledgerCfg.QualificationPeriod)
	assert.Equal(t, uint64(72*3600), ledgerCfg.UnstakeWaitPeriod)
	assert.Equal(t, synstake.DefaultRewardDuration, ledgerCfg.RewardDuration)
	assert.Equal(t, uint64(500), ledgerCfg.EarlyExitFeeBasisPoints)

	assert.ErrorContains(t, gen.Build(db), "db already holds genesis")
}

func TestGenesisID(t *testing.T) {
	cfg, err := genesis.Parse([]byte(sample))
	require.NoError(t, err)

	a, err := genesis.New(cfg)
	require.NoError(t, err)
	b, err := genesis.New(cfg)
	require.NoError(t, err)
	assert.Equal(t, a.ID(), b.ID())
	assert.False(t, a.ID().IsZero())

	fee := uint64(600)
	cfg.Params.EarlyExitFeeBasisPoints = &fee
	c, err := genesis.New(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), c.ID())

	cfg.LaunchTime++
	d, err := genesis.New(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, c.ID(), d.ID())
}

func TestDevnet(t *testing.T) {
	gen := genesis.NewDevnet()
	assert.Equal(t, "devnet", gen.Name())
	assert.Equal(t, genesis.DevStaker, gen.Staker())

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, gen.Build(db))

	st := state.New(db)
	accs := genesis.DevAccounts()
	require.Len(t, accs, 6)
	for _, acc := range accs {
		balance, err := token.New(genesis.DevPrincipalToken, st).BalanceOf(acc.Address)
		require.NoError(t, err)
		assert.Equal(t, synstake.Units(1_000_000).String(), balance.String())
	}

	cfg, err := genesis.NewStaker(st, genesis.DevStaker).Config()
	require.NoError(t, err)
	assert.Equal(t, accs[1].Address, cfg.Distributor)
}

func TestLoadMetaEmpty(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	_, err = genesis.LoadMeta(db)
	assert.ErrorIs(t, err, genesis.ErrNoGenesis)
}
