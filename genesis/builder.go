// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/synstake/kv"
	"github.com/vechain/synstake/lvldb"
	"github.com/vechain/synstake/state"
	"github.com/vechain/synstake/synstake"
)

// Builder helper to build the genesis state.
type Builder struct {
	launchTime uint64
	stateProcs []func(state *state.State) error
}

// LaunchTime set launch time.
func (b *Builder) LaunchTime(t uint64) *Builder {
	b.launchTime = t
	return b
}

// State add a state process.
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// ComputeID builds the genesis into a scratch store and hashes the committed content.
func (b *Builder) ComputeID() (synstake.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return synstake.Bytes32{}, err
	}
	defer db.Close()

	if err := b.Build(db); err != nil {
		return synstake.Bytes32{}, err
	}

	hasher := synstake.NewBlake2b()
	var size [4]byte

	it := db.Iterate(kv.Range{})
	defer it.Release()
	for it.Next() {
		for _, field := range [][]byte{it.Key(), it.Value()} {
			binary.BigEndian.PutUint32(size[:], uint32(len(field)))
			hasher.Write(size[:])
			hasher.Write(field)
		}
	}
	if err := it.Error(); err != nil {
		return synstake.Bytes32{}, err
	}

	var launch [8]byte
	binary.BigEndian.PutUint64(launch[:], b.launchTime)
	hasher.Write(launch[:])

	var id synstake.Bytes32
	hasher.Sum(id[:0])
	return id, nil
}

// Build runs every state process and commits the result into db.
func (b *Builder) Build(db kv.Store) error {
	st := state.New(db)
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return errors.Wrap(err, "state process")
		}
	}
	if err := st.Commit(); err != nil {
		return errors.Wrap(err, "commit state")
	}
	return nil
}
