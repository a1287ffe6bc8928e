// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"math/big"

	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/scrip-coop/scripd/fault"
)

// Cursor - iterate the elements of a pool in key order
type Cursor interface {
	Seek(key []byte) Cursor
	Fetch(count int) ([]Element, error)
	Map(f func(key []byte, value []byte) error) error
}

// FetchCursor - cursor state over one pool
type FetchCursor struct {
	pool     *PoolHandle
	maxRange ldb_util.Range
}

// NewFetchCursor - create a cursor positioned at the start of the pool
func (p *PoolHandle) NewFetchCursor() Cursor {
	return &FetchCursor{
		pool: p,
		maxRange: ldb_util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// Seek - position the cursor at a specific key, the next Fetch or Map
// starts there
func (cursor *FetchCursor) Seek(key []byte) Cursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return up to count elements and advance the cursor past them
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	iter := cursor.pool.access.Iterator(&cursor.maxRange)
	results := make([]Element, 0, count)
	n := 0
loop:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		e := Element{
			Key:   dataKey,
			Value: dataValue,
		}
		results = append(results, e)
		n += 1
		if n >= count {
			break loop
		}
	}
	iter.Release()
	err := iter.Error()
	if nil != err {
		return nil, err
	}

	if n > 0 {
		cursor.advancePast(results[n-1].Key)
	}
	return results, nil
}

// move the range start to just after a key, preserving key length so
// that fixed width big endian keys stay ordered
func (cursor *FetchCursor) advancePast(key []byte) {
	one := big.NewInt(1)

	b := new(big.Int).SetBytes(key)
	b.Add(b, one)

	next := b.Bytes()
	if len(next) < len(key) {
		padded := make([]byte, len(key))
		copy(padded[len(padded)-len(next):], next)
		next = padded
	}
	cursor.maxRange.Start = cursor.pool.prefixKey(next)
}

// Map - run a function over all remaining elements in order
//
// iteration stops at the first error, which is returned; the key and
// value slices passed to f are only valid during that call
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.InvalidCursor
	}

	iter := cursor.pool.access.Iterator(&cursor.maxRange)
	defer iter.Release()

	for iter.Next() {
		err := f(iter.Key()[1:], iter.Value())
		if nil != err {
			return err
		}
	}
	return iter.Error()
}
