// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package synstake

import (
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
)

var blake2bPool = sync.Pool{
	New: func() any {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	},
}

// Blake2b computes blake2b-256 checksum for given data.
func Blake2b(data ...[]byte) (b32 Bytes32) {
	h := blake2bPool.Get().(hash.Hash)
	defer blake2bPool.Put(h)
	h.Reset()

	for _, b := range data {
		h.Write(b)
	}
	h.Sum(b32[:0])
	return
}

// NewBlake2b returns a new blake2b-256 hash.
func NewBlake2b() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}
