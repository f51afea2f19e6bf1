// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis turns a genesis file into the initial ledger state: token balances and
// allowances, and the initialized staker.
package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/synstake/builtin/staker"
	"github.com/vechain/synstake/builtin/token"
	"github.com/vechain/synstake/kv"
	"github.com/vechain/synstake/log"
	"github.com/vechain/synstake/state"
	"github.com/vechain/synstake/synstake"
)

var logger = log.WithContext("pkg", "genesis")

// Genesis is a validated genesis ready to be written.
type Genesis struct {
	builder    *Builder
	id         synstake.Bytes32
	name       string
	staker     synstake.Address
	launchTime uint64
}

// NewStaker returns the ledger at addr. Every token address resolves to the token keeper stored at
// that address.
func NewStaker(st *state.State, addr synstake.Address, opts ...staker.Option) *staker.Staker {
	return staker.New(addr, st, func(tok synstake.Address) staker.Asset {
		return token.New(tok, st).Custody(addr)
	}, opts...)
}

// New validates cfg and prepares its genesis.
func New(cfg *Config) (*Genesis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params := staker.InitParams{
		PrincipalToken:          cfg.Tokens.Principal.Address,
		LiquidityToken:          cfg.Tokens.Liquidity.Address,
		Vesting:                 cfg.Vesting,
		Distributor:             cfg.Distributor,
		EarlyExitFeeBasisPoints: cfg.Params.EarlyExitFeeBasisPoints,
	}
	// Validate already rejected durations that are not whole seconds.
	params.QualificationPeriod, _ = seconds("qualificationPeriod", cfg.Params.QualificationPeriod)
	params.UnstakeWaitPeriod, _ = seconds("unstakeWaitPeriod", cfg.Params.UnstakeWaitPeriod)
	params.RewardDuration, _ = seconds("rewardDuration", cfg.Params.RewardDuration)

	builder := new(Builder).
		LaunchTime(cfg.LaunchTime).
		State(func(st *state.State) error {
			for _, tok := range []Token{cfg.Tokens.Principal, cfg.Tokens.Liquidity} {
				keeper := token.New(tok.Address, st)
				for _, acc := range tok.Accounts {
					if err := keeper.Mint(acc.Address, acc.Balance.Int()); err != nil {
						return errors.WithMessagef(err, "mint %v to %v", tok.Address, acc.Address)
					}
					if acc.Allowance == nil {
						continue
					}
					if err := keeper.Approve(acc.Address, cfg.Staker, acc.Allowance.Int()); err != nil {
						return errors.WithMessagef(err, "approve %v for %v", tok.Address, acc.Address)
					}
				}
			}
			return NewStaker(st, cfg.Staker).Init(cfg.Admin, params)
		})

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	name := cfg.Name
	if name == "" {
		name = "custom"
	}
	return &Genesis{
		builder:    builder,
		id:         id,
		name:       name,
		staker:     cfg.Staker,
		launchTime: cfg.LaunchTime,
	}, nil
}

// Build writes the genesis state and its meta into an empty db.
func (g *Genesis) Build(db kv.Store) error {
	existing, err := LoadMeta(db)
	if err == nil {
		return errors.Errorf("db already holds genesis %v (%s)", existing.ID, existing.Name)
	}
	if !errors.Is(err, ErrNoGenesis) {
		return err
	}

	if err := g.builder.Build(db); err != nil {
		return err
	}
	if err := WriteMeta(db, &Meta{
		ID:         g.id,
		Name:       g.name,
		Staker:     g.staker,
		LaunchTime: g.launchTime,
	}); err != nil {
		return err
	}
	logger.Info("genesis written", "name", g.name, "id", g.id, "staker", g.staker)
	return nil
}

// ID returns the genesis ID.
func (g *Genesis) ID() synstake.Bytes32 {
	return g.id
}

// Name returns the network name.
func (g *Genesis) Name() string {
	return g.name
}

// Staker returns the ledger address.
func (g *Genesis) Staker() synstake.Address {
	return g.staker
}

func (g *Genesis) LaunchTime() uint64 {
	return g.launchTime
}
