// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/synstake/synstake"
)

// Amount is a token amount written in decimal or 0x-prefixed hex.
type Amount big.Int

func NewAmount(v *big.Int) *Amount {
	return (*Amount)(new(big.Int).Set(v))
}

func (a *Amount) Int() *big.Int {
	if a == nil {
		return new(big.Int)
	}
	return (*big.Int)(a)
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	v, ok := math.ParseBig256(node.Value)
	if !ok || v.Sign() < 0 {
		return errors.Errorf("line %d: invalid amount %q", node.Line, node.Value)
	}
	*a = Amount(*v)
	return nil
}

func (a *Amount) MarshalYAML() (any, error) {
	return a.Int().String(), nil
}

// Config is the genesis file of a ledger.
type Config struct {
	Name        string           `yaml:"name"`
	LaunchTime  uint64           `yaml:"launchTime"`
	Staker      synstake.Address `yaml:"staker"`
	Admin       synstake.Address `yaml:"admin"`
	Vesting     synstake.Address `yaml:"vesting"`
	Distributor synstake.Address `yaml:"distributor"`
	Tokens      Tokens           `yaml:"tokens"`
	Params      Params           `yaml:"params"`
}

type Tokens struct {
	Principal Token `yaml:"principal"`
	Liquidity Token `yaml:"liquidity"`
}

// Token is a token keeper and its initial holders.
type Token struct {
	Address  synstake.Address `yaml:"address"`
	Accounts []Account        `yaml:"accounts"`
}

// Account is a holder's initial balance and the allowance it grants the staker.
type Account struct {
	Address   synstake.Address `yaml:"address"`
	Balance   *Amount          `yaml:"balance"`
	Allowance *Amount          `yaml:"allowance,omitempty"`
}

// Params overrides the ledger defaults. Omitted fields keep the defaults.
type Params struct {
	QualificationPeriod     *time.Duration `yaml:"qualificationPeriod,omitempty"`
	UnstakeWaitPeriod       *time.Duration `yaml:"unstakeWaitPeriod,omitempty"`
	RewardDuration          *time.Duration `yaml:"rewardDuration,omitempty"`
	EarlyExitFeeBasisPoints *uint64        `yaml:"earlyExitFeeBasisPoints,omitempty"`
}

// Load reads and validates a genesis file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	return Parse(data)
}

// Parse decodes and validates a genesis document. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// seconds converts an optional duration. Nil stays nil.
func seconds(name string, d *time.Duration) (*uint64, error) {
	if d == nil {
		return nil, nil
	}
	if *d < 0 {
		return nil, errors.Errorf("%s must not be negative", name)
	}
	if *d%time.Second != 0 {
		return nil, errors.Errorf("%s must be whole seconds", name)
	}
	v := uint64(*d / time.Second)
	return &v, nil
}

// Validate checks the addresses and amounts of the genesis.
func (c *Config) Validate() error {
	for _, addr := range []struct {
		name  string
		value synstake.Address
	}{
		{"staker", c.Staker},
		{"admin", c.Admin},
		{"vesting", c.Vesting},
		{"distributor", c.Distributor},
		{"tokens.principal.address", c.Tokens.Principal.Address},
		{"tokens.liquidity.address", c.Tokens.Liquidity.Address},
	} {
		if addr.value.IsZero() {
			return errors.Errorf("%s address must be set", addr.name)
		}
	}
	if c.Tokens.Principal.Address == c.Tokens.Liquidity.Address {
		return errors.New("principal and liquidity tokens must differ")
	}
	if c.Staker == c.Tokens.Principal.Address || c.Staker == c.Tokens.Liquidity.Address {
		return errors.New("staker address must not be a token address")
	}

	for _, named := range []struct {
		name string
		tok  *Token
	}{
		{"principal", &c.Tokens.Principal},
		{"liquidity", &c.Tokens.Liquidity},
	} {
		name, tok := named.name, named.tok
		seen := make(map[synstake.Address]bool, len(tok.Accounts))
		for _, acc := range tok.Accounts {
			if acc.Address.IsZero() {
				return errors.Errorf("%s: account address must be set", name)
			}
			if seen[acc.Address] {
				return errors.Errorf("%s: duplicated account %v", name, acc.Address)
			}
			seen[acc.Address] = true
			if acc.Balance == nil {
				return errors.Errorf("%s: %v: balance must be set", name, acc.Address)
			}
		}
	}

	for _, d := range []struct {
		name  string
		value *time.Duration
	}{
		{"qualificationPeriod", c.Params.QualificationPeriod},
		{"unstakeWaitPeriod", c.Params.UnstakeWaitPeriod},
		{"rewardDuration", c.Params.RewardDuration},
	} {
		if _, err := seconds(d.name, d.value); err != nil {
			return err
		}
	}
	if d := c.Params.RewardDuration; d != nil && *d == 0 {
		return errors.New("rewardDuration must not be 0")
	}
	if fee := c.Params.EarlyExitFeeBasisPoints; fee != nil && *fee > synstake.BasisPoints {
		return errors.New("earlyExitFeeBasisPoints above 10000")
	}
	return nil
}
