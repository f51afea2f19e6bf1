// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/synstake/synstake"
)

func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.synstake")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.synstake")
		default:
			return filepath.Join(home, ".org.vechain.synstake")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func readIntFromUInt64Flag(val uint64) (int, error) {
	if val > 9 {
		return 0, fmt.Errorf("invalid value %d, must be in range [0, 9]", val)
	}
	return int(val), nil
}

// parseAmount parses a positive amount in base units.
func parseAmount(name, s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.Errorf("-%s must be set", name)
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, errors.Errorf("-%s: invalid amount %q", name, s)
	}
	return v, nil
}

func parseAddress(name, s string) (synstake.Address, error) {
	if s == "" {
		return synstake.Address{}, errors.Errorf("-%s must be set", name)
	}
	addr, err := synstake.ParseAddress(s)
	if err != nil {
		return synstake.Address{}, errors.Wrap(err, "-"+name)
	}
	return addr, nil
}

// resolveTime returns t, or the current unix time when t is zero.
func resolveTime(t uint64, now func() time.Time) uint64 {
	if t != 0 {
		return t
	}
	return uint64(now().Unix())
}
