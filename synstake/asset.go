// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package synstake

import (
	"fmt"
	"strings"
)

// AssetClass identifies one of the two stakeable assets.
type AssetClass uint8

const (
	// Principal is the platform's principal token. Rewards of both pools are paid in it.
	Principal AssetClass = iota
	// Liquidity is the liquidity-provider token.
	Liquidity
)

// AssetClasses lists every asset class in storage order.
var AssetClasses = []AssetClass{Principal, Liquidity}

// Valid reports whether c is a known asset class.
func (c AssetClass) Valid() bool {
	return c == Principal || c == Liquidity
}

func (c AssetClass) String() string {
	switch c {
	case Principal:
		return "principal"
	case Liquidity:
		return "liquidity"
	default:
		return fmt.Sprintf("asset(%d)", uint8(c))
	}
}

// ParseAssetClass parses the name of an asset class. "token" and "lp" are accepted as aliases.
func ParseAssetClass(s string) (AssetClass, error) {
	switch strings.ToLower(s) {
	case "principal", "token":
		return Principal, nil
	case "liquidity", "lp":
		return Liquidity, nil
	default:
		return 0, fmt.Errorf("unknown asset class %q", s)
	}
}
