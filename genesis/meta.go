// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/synstake/kv"
	"github.com/vechain/synstake/synstake"
)

// MetaBucket holds the genesis meta of a db.
const MetaBucket = kv.Bucket("g")

var metaKey = []byte("meta")

// ErrNoGenesis is returned by LoadMeta for a db that was never initialized.
var ErrNoGenesis = errors.New("no genesis in db")

// Meta identifies the genesis a db was built from.
type Meta struct {
	ID         synstake.Bytes32
	Name       string
	Staker     synstake.Address
	LaunchTime uint64
}

func WriteMeta(db kv.Putter, meta *Meta) error {
	data, err := rlp.EncodeToBytes(meta)
	if err != nil {
		return errors.Wrap(err, "encode genesis meta")
	}
	return errors.Wrap(MetaBucket.NewPutter(db).Put(metaKey, data), "write genesis meta")
}

func LoadMeta(db kv.Getter) (*Meta, error) {
	getter := MetaBucket.NewGetter(db)
	data, err := getter.Get(metaKey)
	if err != nil {
		if getter.IsNotFound(err) {
			return nil, ErrNoGenesis
		}
		return nil, errors.Wrap(err, "read genesis meta")
	}
	var meta Meta
	if err := rlp.DecodeBytes(data, &meta); err != nil {
		return nil, errors.Wrap(err, "decode genesis meta")
	}
	return &meta, nil
}
