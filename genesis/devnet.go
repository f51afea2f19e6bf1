// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/synstake/synstake"
)

// DevAccount account for development.
type DevAccount struct {
	Address    synstake.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns the pre-funded accounts of the devnet. The first three are the admin, the
// reward distributor and the vesting module.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
		"88d2d80b12b92feaa0da6d62309463d20408157723f2d7e799b6a74ead9a673b",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{synstake.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// Devnet addresses.
var (
	DevStaker         = synstake.BytesToAddress([]byte("synstake"))
	DevPrincipalToken = synstake.BytesToAddress([]byte("principal-token"))
	DevLiquidityToken = synstake.BytesToAddress([]byte("liquidity-token"))
)

// DevConfig returns the devnet genesis file. Every dev account holds one million principal and ten
// thousand liquidity units and lets the staker spend all of them.
func DevConfig() *Config {
	accs := DevAccounts()
	principal := synstake.Units(1_000_000)
	liquidity := synstake.Units(10_000)

	cfg := &Config{
		Name:        "devnet",
		LaunchTime:  uint64(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Unix()),
		Staker:      DevStaker,
		Admin:       accs[0].Address,
		Distributor: accs[1].Address,
		Vesting:     accs[2].Address,
		Tokens: Tokens{
			Principal: Token{Address: DevPrincipalToken},
			Liquidity: Token{Address: DevLiquidityToken},
		},
	}
	for _, acc := range accs {
		cfg.Tokens.Principal.Accounts = append(cfg.Tokens.Principal.Accounts, fullyApproved(acc.Address, principal))
		cfg.Tokens.Liquidity.Accounts = append(cfg.Tokens.Liquidity.Accounts, fullyApproved(acc.Address, liquidity))
	}
	return cfg
}

func fullyApproved(addr synstake.Address, balance *big.Int) Account {
	return Account{Address: addr, Balance: NewAmount(balance), Allowance: NewAmount(balance)}
}

// NewDevnet create the devnet genesis.
func NewDevnet() *Genesis {
	gen, err := New(DevConfig())
	if err != nil {
		panic(err)
	}
	return gen
}
