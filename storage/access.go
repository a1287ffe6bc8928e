// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// Access - database operations, batched while a transaction is open
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	Iterator(*ldb_util.Range) iterator.Iterator
	Put([]byte, []byte)
}

// AccessData - wrap the database with a write batch and its cache
//
// while a transaction is open all writes accumulate in the batch and
// are mirrored in the cache so reads observe the pending state; when
// no transaction is open writes are applied immediately
//
// note: pools never store empty values, so a cached nil value is a
// pending delete
type AccessData struct {
	sync.Mutex
	inUse bool
	db    *leveldb.DB
	batch *leveldb.Batch
	cache Cache
}

func newAccess(db *leveldb.DB, batch *leveldb.Batch, cache Cache) Access {
	return &AccessData{
		inUse: false,
		db:    db,
		batch: batch,
		cache: cache,
	}
}

func (d *AccessData) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fmt.Errorf("batch already in use")
	}

	d.inUse = true
	return nil
}

func (d *AccessData) Put(key []byte, value []byte) {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		d.cache.Set(dbPut, string(key), value)
		d.batch.Put(key, value)
		return
	}

	err := d.db.Put(key, value, nil)
	logger.PanicIfError("storage: direct put", err)
	d.cache.Set(dbPut, string(key), value)
}

func (d *AccessData) Delete(key []byte) {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		d.cache.Set(dbDelete, string(key), nil)
		d.batch.Delete(key)
		return
	}

	err := d.db.Delete(key, nil)
	logger.PanicIfError("storage: direct delete", err)
	d.cache.Set(dbDelete, string(key), nil)
}

func (d *AccessData) Commit() error {
	d.Lock()
	defer d.Unlock()

	err := d.db.Write(d.batch, nil)

	// the batch is finished whether or not the write succeeded
	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false

	return err
}

func (d *AccessData) Abort() {
	d.Lock()
	defer d.Unlock()

	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}

func (d *AccessData) Get(key []byte) ([]byte, error) {
	value, found := d.cache.Get(string(key))
	if found {
		if nil == value {
			return nil, leveldb.ErrNotFound
		}
		return value, nil
	}
	return d.db.Get(key, nil)
}

func (d *AccessData) Has(key []byte) (bool, error) {
	value, found := d.cache.Get(string(key))
	if found {
		return nil != value, nil
	}
	return d.db.Has(key, nil)
}

func (d *AccessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}
