// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/vechain/synstake/synstake"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key value store whose entries live at blake2b(key, base) slots, rlp encoded.
type Mapping[K Key, V any] struct {
	context *Context
	basePos synstake.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos synstake.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) synstake.Bytes32 {
	return synstake.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value under key. A missing entry decodes to the zero value, with pointers
// allocated.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = decodeSlot(m.context, m.position(key), &value)
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return encodeSlot(m.context, m.position(key), value)
}

// Delete clears the entry so it reads back as the zero value.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}

// Value is a single rlp encoded value held at a fixed slot.
type Value[V any] struct {
	context *Context
	pos     synstake.Bytes32
}

func NewValue[V any](context *Context, pos synstake.Bytes32) *Value[V] {
	return &Value[V]{context: context, pos: pos}
}

func (v *Value[V]) Get() (value V, err error) {
	err = decodeSlot(v.context, v.pos, &value)
	return
}

func (v *Value[V]) Set(value V) error {
	return encodeSlot(v.context, v.pos, value)
}

func decodeSlot[V any](ctx *Context, pos synstake.Bytes32, value *V) error {
	return ctx.state.DecodeStorage(ctx.address, pos, func(raw []byte) error {
		if t := reflect.TypeOf(*value); t != nil && t.Kind() == reflect.Ptr {
			*value = reflect.New(t.Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, value)
	})
}

func encodeSlot[V any](ctx *Context, pos synstake.Bytes32, value V) error {
	return ctx.state.EncodeStorage(ctx.address, pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
