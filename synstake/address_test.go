// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package synstake

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	require.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	_, err = ParseAddress("7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.NoError(t, err)

	_, err = ParseAddress("1x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.EqualError(t, err, "invalid prefix")

	_, err = ParseAddress("0x7567")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseAddress("0xz567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Error(t, err)
}

func TestAddressZeroAndBytes(t *testing.T) {
	assert.True(t, Address{}.IsZero())
	addr := BytesToAddress([]byte("alice"))
	assert.False(t, addr.IsZero())
	assert.Len(t, addr.Bytes(), AddressLength)
	assert.Equal(t, []byte("alice"), addr.Bytes()[AddressLength-5:])
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("bob"))
	data, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"0x12"`), &decoded))
}

func TestBytes32(t *testing.T) {
	b := BytesToBytes32([]byte("total-stake"))
	assert.False(t, b.IsZero())
	assert.Equal(t, byte(0), b[0])
	assert.Equal(t, []byte("total-stake"), b.Bytes()[32-len("total-stake"):])

	long := make([]byte, 40)
	long[39] = 1
	assert.Equal(t, byte(1), BytesToBytes32(long)[31])
}

func TestBlake2b(t *testing.T) {
	a := Blake2b([]byte("a"), []byte("b"))
	b := Blake2b([]byte("ab"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, Blake2b([]byte("ba")))
}

func TestAssetClass(t *testing.T) {
	for _, name := range []string{"principal", "token", "PRINCIPAL"} {
		c, err := ParseAssetClass(name)
		require.NoError(t, err)
		assert.Equal(t, Principal, c)
	}
	for _, name := range []string{"liquidity", "lp"} {
		c, err := ParseAssetClass(name)
		require.NoError(t, err)
		assert.Equal(t, Liquidity, c)
	}
	_, err := ParseAssetClass("vet")
	assert.Error(t, err)

	assert.True(t, Liquidity.Valid())
	assert.False(t, AssetClass(7).Valid())
	assert.Equal(t, "asset(7)", AssetClass(7).String())
	assert.Equal(t, "1000000000000000000000", Units(1000).String())
}
