// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/synstake/synstake"
)

func TestParseAmount(t *testing.T) {
	v, err := parseAmount("amount", "1000")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), v)

	v, err = parseAmount("amount", "0x10")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(16), v)

	_, err = parseAmount("amount", "")
	assert.EqualError(t, err, "-amount must be set")

	_, err = parseAmount("amount", "-1")
	assert.EqualError(t, err, `-amount: invalid amount "-1"`)

	_, err = parseAmount("amount", "1.5")
	assert.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	addr, err := parseAddress("caller", "0x0000000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, synstake.BytesToAddress([]byte{1}), addr)

	_, err = parseAddress("caller", "")
	assert.EqualError(t, err, "-caller must be set")

	_, err = parseAddress("caller", "0x01")
	assert.ErrorContains(t, err, "-caller")
}

func TestResolveTime(t *testing.T) {
	now := func() time.Time { return time.Unix(1_700_000_000, 0) }
	assert.Equal(t, uint64(42), resolveTime(42, now))
	assert.Equal(t, uint64(1_700_000_000), resolveTime(0, now))
}

func TestReadIntFromUInt64Flag(t *testing.T) {
	v, err := readIntFromUInt64Flag(5)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	_, err = readIntFromUInt64Flag(10)
	assert.Error(t, err)
}
