// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/vechain/synstake/kv"
	"github.com/vechain/synstake/stackedmap"
	"github.com/vechain/synstake/synstake"
)

const storageCacheSize = 4096

// StorageBucket is the kv bucket holding committed module storage.
const StorageBucket = kv.Bucket("s")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// State manages the storage of every ledger module. Writes are journaled in memory and only reach
// the kv store on Commit.
type State struct {
	store kv.Store
	cache *lru.Cache             // committed raw values keyed by storage key
	sm    *stackedmap.StackedMap // keeps revisions of uncommitted writes
}

type storageKey struct {
	addr synstake.Address
	key  synstake.Bytes32
}

func (k storageKey) dbKey() []byte {
	return append(k.addr.Bytes(), k.key.Bytes()...)
}

// New create state object.
func New(db kv.Store) *State {
	cache, _ := lru.New(storageCacheSize)
	s := &State{
		store: StorageBucket.NewStore(db),
		cache: cache,
	}
	s.sm = stackedmap.New(s.cacheGetter)
	return s
}

func (s *State) cacheGetter(key any) (any, bool, error) {
	k := key.(storageKey)
	dbKey := string(k.dbKey())
	if v, ok := s.cache.Get(dbKey); ok {
		return v.(rlp.RawValue), true, nil
	}
	data, err := s.store.Get([]byte(dbKey))
	if err != nil {
		if !s.store.IsNotFound(err) {
			return nil, false, err
		}
		data = nil
	}
	s.cache.Add(dbKey, rlp.RawValue(data))
	return rlp.RawValue(data), true, nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr synstake.Address, key synstake.Bytes32) (synstake.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return synstake.Bytes32{}, err
	}
	if len(raw) == 0 {
		return synstake.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return synstake.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return synstake.Blake2b(raw), nil
	}
	return synstake.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr synstake.Address, key, value synstake.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr synstake.Address, key synstake.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr synstake.Address, key synstake.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by end will be absorbed by State instance.
func (s *State) EncodeStorage(addr synstake.Address, key synstake.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr synstake.Address, key synstake.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Changes returns the number of distinct storage slots written since the last commit.
func (s *State) Changes() int {
	changes := make(map[storageKey]struct{})
	s.sm.Journal(func(k, _ any) bool {
		changes[k.(storageKey)] = struct{}{}
		return true
	})
	return len(changes)
}

// Commit writes every journaled change into the kv store in one batch and starts a fresh journal.
func (s *State) Commit() error {
	changes := make(map[storageKey]rlp.RawValue)
	var order []storageKey
	s.sm.Journal(func(k, v any) bool {
		key := k.(storageKey)
		if _, ok := changes[key]; !ok {
			order = append(order, key)
		}
		changes[key] = v.(rlp.RawValue)
		return true
	})

	bulk := s.store.Bulk()
	for _, key := range order {
		var err error
		if raw := changes[key]; len(raw) == 0 {
			err = bulk.Delete(key.dbKey())
		} else {
			err = bulk.Put(key.dbKey(), raw)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}

	for _, key := range order {
		s.cache.Add(string(key.dbKey()), changes[key])
	}
	s.sm = stackedmap.New(s.cacheGetter)
	return nil
}
