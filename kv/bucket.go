// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket is a key prefix that carves a logical namespace out of a store.
type Bucket string

func (b Bucket) prefixed(key []byte) []byte {
	k := make([]byte, 0, len(b)+len(key))
	return append(append(k, b...), key...)
}

// NewGetter reads the bucket's keys from src.
func (b Bucket) NewGetter(src Getter) Getter {
	return &bucketGetter{b, src}
}

// NewPutter writes the bucket's keys to src.
func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{b, src}
}

// NewStore scopes every read, write, bulk and iteration of src to the bucket.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{
		bucketGetter: bucketGetter{b, src},
		bucketPutter: bucketPutter{b, src},
		src:          src,
	}
}

type bucketGetter struct {
	bucket Bucket
	src    Getter
}

func (g *bucketGetter) Get(key []byte) ([]byte, error) { return g.src.Get(g.bucket.prefixed(key)) }
func (g *bucketGetter) Has(key []byte) (bool, error)   { return g.src.Has(g.bucket.prefixed(key)) }
func (g *bucketGetter) IsNotFound(err error) bool      { return g.src.IsNotFound(err) }

type bucketPutter struct {
	bucket Bucket
	src    Putter
}

func (p *bucketPutter) Put(key, val []byte) error { return p.src.Put(p.bucket.prefixed(key), val) }
func (p *bucketPutter) Delete(key []byte) error   { return p.src.Delete(p.bucket.prefixed(key)) }

type bucketStore struct {
	bucketGetter
	bucketPutter
	src Store
}

func (s *bucketStore) Bulk() Bulk {
	bulk := s.src.Bulk()
	return &bucketBulk{bucketPutter{s.bucketPutter.bucket, bulk}, bulk}
}

func (s *bucketStore) Iterate(r Range) Iterator {
	b := s.bucketPutter.bucket
	r.Start = b.prefixed(r.Start)
	if len(r.Limit) == 0 {
		r.Limit = util.BytesPrefix([]byte(b)).Limit
	} else {
		r.Limit = b.prefixed(r.Limit)
	}
	return &bucketIterator{s.src.Iterate(r), len(b)}
}

type bucketBulk struct {
	bucketPutter
	bulk Bulk
}

func (b *bucketBulk) Len() int     { return b.bulk.Len() }
func (b *bucketBulk) Write() error { return b.bulk.Write() }

// bucketIterator strips the bucket prefix from the keys of the wrapped iterator.
type bucketIterator struct {
	Iterator
	prefixLen int
}

func (it *bucketIterator) Key() []byte {
	return it.Iterator.Key()[it.prefixLen:]
}
