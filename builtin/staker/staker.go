// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staker is the dual pool staking ledger. Every mutating operation is all or nothing: it
// runs against a state checkpoint that is reverted when the operation fails.
package staker

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/synstake/builtin/solidity"
	"github.com/vechain/synstake/builtin/staker/globalstats"
	"github.com/vechain/synstake/builtin/staker/pool"
	"github.com/vechain/synstake/builtin/staker/position"
	"github.com/vechain/synstake/builtin/staker/superstake"
	"github.com/vechain/synstake/log"
	"github.com/vechain/synstake/state"
	"github.com/vechain/synstake/synstake"
)

var (
	logger = log.WithContext("pkg", "staker")

	slotConfig = nameToSlot("staker-config")
)

func SetLogger(l log.Logger) {
	logger = l
}

func nameToSlot(name string) synstake.Bytes32 {
	return synstake.BytesToBytes32([]byte(name))
}

// Asset moves one token in and out of the ledger's custody.
type Asset interface {
	PullFrom(holder synstake.Address, amount *big.Int) error
	PushTo(recipient synstake.Address, amount *big.Int) error
	BalanceOfSelf() (*big.Int, error)
}

// AssetResolver returns the custody of the token at the given address.
type AssetResolver func(token synstake.Address) Asset

type Option func(*Staker)

// WithFeeRevenue replaces the balance derived fee revenue with an external counter.
func WithFeeRevenue(fees superstake.FeeRevenue) Option {
	return func(s *Staker) {
		s.fees = fees
	}
}

// WithEventSink delivers the events of every successful operation to sink.
func WithEventSink(sink EventSink) Option {
	return func(s *Staker) {
		s.sink = sink
	}
}

// Staker implements the public operations of the ledger. It is not safe for concurrent use.
type Staker struct {
	addr   synstake.Address
	state  *state.State
	sctx   *solidity.Context
	assets AssetResolver
	fees   superstake.FeeRevenue
	sink   EventSink

	config     *solidity.Value[*Config]
	pools      map[synstake.AssetClass]*pool.Service
	positions  map[synstake.AssetClass]*position.Service
	superstake *superstake.Service
	stats      *globalstats.Service

	pending []*Event
}

// New creates the ledger stored at addr.
func New(addr synstake.Address, st *state.State, assets AssetResolver, opts ...Option) *Staker {
	sctx := solidity.NewContext(addr, st)
	s := &Staker{
		addr:       addr,
		state:      st,
		sctx:       sctx,
		assets:     assets,
		config:     solidity.NewValue[*Config](sctx, slotConfig),
		pools:      make(map[synstake.AssetClass]*pool.Service, len(synstake.AssetClasses)),
		positions:  make(map[synstake.AssetClass]*position.Service, len(synstake.AssetClasses)),
		superstake: superstake.New(sctx),
		stats:      globalstats.New(sctx),
	}
	for _, class := range synstake.AssetClasses {
		s.pools[class] = pool.New(sctx, class)
		s.positions[class] = position.New(sctx, class)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Address returns the ledger's own address, the holder of all staked assets.
func (s *Staker) Address() synstake.Address {
	return s.addr
}

// atomically runs fn against a checkpoint. On error the state is reverted and the pending events
// dropped; on success the events are delivered.
func (s *Staker) atomically(op string, fn func() error) error {
	checkpoint := s.state.NewCheckpoint()
	s.pending = s.pending[:0]

	err := fn()
	recordResult(op, err)
	if err != nil {
		s.state.RevertTo(checkpoint)
		s.pending = s.pending[:0]
		return err
	}

	events := s.pending
	s.pending = nil
	for _, e := range events {
		recordEvent(e)
		if s.sink != nil {
			s.sink(e)
		}
	}
	for class, svc := range s.pools {
		if l, err := svc.Get(); err == nil {
			recordLedger(class, l)
		}
	}
	return nil
}

func (s *Staker) loadConfig() (*Config, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if !cfg.initialized() {
		return nil, ErrNotInitialized
	}
	return cfg, nil
}

func (s *Staker) asset(cfg *Config, class synstake.AssetClass) Asset {
	return s.assets(cfg.Token(class))
}

func checkAsset(class synstake.AssetClass) error {
	if !class.Valid() {
		return ErrUnknownAsset
	}
	return nil
}

func checkAmount(amount *big.Int) error {
	switch {
	case amount == nil || amount.Sign() == 0:
		return ErrZeroAmount
	case amount.Sign() < 0:
		return ErrNegativeAmount
	}
	return nil
}

//
// Getters - no state change
//

// Config returns the configuration set by Init.
func (s *Staker) Config() (*Config, error) {
	return s.loadConfig()
}

// Pool returns the stored ledger of an asset class as of its last update.
func (s *Staker) Pool(class synstake.AssetClass) (*pool.Ledger, error) {
	if err := checkAsset(class); err != nil {
		return nil, err
	}
	return s.pools[class].Get()
}

// Position returns the user's stored position in an asset class.
func (s *Staker) Position(class synstake.AssetClass, user synstake.Address) (*position.Position, error) {
	if err := checkAsset(class); err != nil {
		return nil, err
	}
	return s.positions[class].Get(user)
}

// Stats returns the global totals.
func (s *Staker) Stats() (*globalstats.Stats, error) {
	return s.stats.Get()
}

// Claimable returns what the user could claim at now from each pool.
func (s *Staker) Claimable(user synstake.Address, now uint64) (principal, liquidity *big.Int, err error) {
	earned := make(map[synstake.AssetClass]*big.Int, len(synstake.AssetClasses))
	for _, class := range synstake.AssetClasses {
		stored, err := s.pools[class].Get()
		if err != nil {
			return nil, nil, err
		}
		l, err := stored.At(now)
		if err != nil {
			return nil, nil, err
		}
		p, err := s.positions[class].Get(user)
		if err != nil {
			return nil, nil, err
		}
		if earned[class], err = p.Earned(l); err != nil {
			return nil, nil, err
		}
	}
	return earned[synstake.Principal], earned[synstake.Liquidity], nil
}

// CanPromoteToSuper reports for each asset class whether the user's position qualifies for the
// super tier at now.
func (s *Staker) CanPromoteToSuper(user synstake.Address, now uint64) (principal, liquidity bool, err error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return false, false, err
	}
	can := make(map[synstake.AssetClass]bool, len(synstake.AssetClasses))
	for _, class := range synstake.AssetClasses {
		p, err := s.positions[class].Get(user)
		if err != nil {
			return false, false, err
		}
		can[class] = p.CanPromote(now, cfg.QualificationPeriod)
	}
	return can[synstake.Principal], can[synstake.Liquidity], nil
}

// FeeRevenue returns the total fee revenue routed to the ledger so far.
func (s *Staker) FeeRevenue() (*big.Int, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}
	return s.feeRevenue(cfg).TotalFeeRevenue()
}

// feeRevenue is the external counter when one was given. Otherwise every unit of the principal
// asset held beyond deposits and unpaid injected rewards is fee revenue, and revenue already
// distributed to the super streams keeps counting until it is claimed.
func (s *Staker) feeRevenue(cfg *Config) superstake.FeeRevenue {
	if s.fees != nil {
		return s.fees
	}
	return superstake.FeeRevenueFunc(func() (*big.Int, error) {
		balance, err := s.asset(cfg, synstake.Principal).BalanceOfSelf()
		if err != nil {
			return nil, err
		}
		stats, err := s.stats.Get()
		if err != nil {
			return nil, err
		}
		surplus := new(big.Int).Sub(balance, stats.DepositedPrincipal)
		surplus.Sub(surplus, stats.TotalRewardsInjected)
		surplus.Add(surplus, stats.TotalRewardsClaimed)
		if surplus.Cmp(stats.TotalFeeRevenueObserved) < 0 {
			surplus.Set(stats.TotalFeeRevenueObserved)
		}
		return surplus, nil
	})
}

//
// Setters - state change
//

// Init sets the configuration once. The caller becomes the admin.
func (s *Staker) Init(caller synstake.Address, params InitParams) error {
	logger.Debug("init", "caller", caller, "principal", params.PrincipalToken, "liquidity", params.LiquidityToken)

	err := s.atomically("init", func() error {
		cfg, err := s.config.Get()
		if err != nil {
			return errors.Wrap(err, "load config")
		}
		if cfg.initialized() {
			return ErrInitDone
		}

		if err := params.validate(); err != nil {
			return err
		}

		return s.config.Set(&Config{
			PrincipalToken:          params.PrincipalToken,
			LiquidityToken:          params.LiquidityToken,
			Vesting:                 params.Vesting,
			Distributor:             params.Distributor,
			Admin:                   caller,
			QualificationPeriod:     orDefault(s.sctx, params.QualificationPeriod, QualificationPeriod),
			UnstakeWaitPeriod:       orDefault(s.sctx, params.UnstakeWaitPeriod, UnstakeWaitPeriod),
			RewardDuration:          orDefault(s.sctx, params.RewardDuration, RewardDuration),
			EarlyExitFeeBasisPoints: orDefault(s.sctx, params.EarlyExitFeeBasisPoints, EarlyExitFeeBasisPoints),
		})
	})
	if err != nil {
		logger.Info("init failed", "error", err)
		return err
	}

	logger.Info("initialized", "admin", caller, "distributor", params.Distributor)
	return nil
}

// SetRewardDistributor replaces the address allowed to inject rewards.
func (s *Staker) SetRewardDistributor(caller, distributor synstake.Address) error {
	logger.Debug("setting reward distributor", "caller", caller, "distributor", distributor)

	err := s.atomically("set distributor", func() error {
		cfg, err := s.loadConfig()
		if err != nil {
			return err
		}
		if caller != cfg.Admin {
			return ErrNotAdmin
		}
		if distributor.IsZero() {
			return ErrZeroAddress
		}
		cfg.Distributor = distributor
		return s.config.Set(cfg)
	})
	if err != nil {
		logger.Info("set reward distributor failed", "distributor", distributor, "error", err)
		return err
	}

	logger.Info("reward distributor set", "distributor", distributor)
	return nil
}
