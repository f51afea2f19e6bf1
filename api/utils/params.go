// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/vechain/synstake/synstake"
)

// ParseAddress parses a path or query parameter into an address.
func ParseAddress(s string) (synstake.Address, error) {
	addr, err := synstake.ParseAddress(s)
	if err != nil {
		return synstake.Address{}, BadRequest(errors.WithMessage(err, "address"))
	}
	return addr, nil
}

// ParseAsset parses a path parameter into an asset class.
func ParseAsset(s string) (synstake.AssetClass, error) {
	class, err := synstake.ParseAssetClass(s)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, "asset"))
	}
	return class, nil
}

// ParseTime parses a unix timestamp query parameter. An empty value means now.
func ParseTime(s string, now func() uint64) (uint64, error) {
	if s == "" {
		return now(), nil
	}
	ts, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, "time"))
	}
	return ts, nil
}
