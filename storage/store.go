// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/scrip-coop/scripd/fault"
)

// exported storage pools
//
// note: all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Accounts *PoolHandle `prefix:"A"`
	Logs     *PoolHandle `prefix:"L"`
	Index    *PoolHandle `prefix:"I"`
	Control  *PoolHandle `prefix:"C"`
	Tracking *PoolHandle `prefix:"T"`
}

// Store - all open handles to one scope database
type Store struct {
	path   string
	db     *leveldb.DB
	access Access
	pool   pools
}

// open mode
const (
	ReadOnly  = true
	ReadWrite = false
)

// the saved version of the database
//
// note: this key is deliberately outside the range of all pool
// prefixes so a cursor can never see it
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentStoreVersion = 0x100
)

// Open - open or create a scope database
//
// when opened read-only the database file must already exist
func Open(path string, readOnly bool) (*Store, error) {
	db, err := openLevelDB(path, readOnly)
	if nil != err {
		return nil, err
	}

	err = validateStoreVersion(db, readOnly)
	if nil != err {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		path:   path,
		db:     db,
		access: newAccess(db, new(leveldb.Batch), newCache()),
	}

	// this will be a struct type
	poolType := reflect.TypeOf(s.pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&s.pool).Elem()

	// scan each field to locate its prefix tag and set up the handle
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			_ = db.Close()
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			access: s.access,
		}
		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	return s, nil
}

// Close - finish with the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Path - location of the underlying database file
func (s *Store) Path() string {
	return s.path
}

// Accounts - handle for the account balance pool
func (s *Store) Accounts() Handle {
	return s.pool.Accounts
}

// Logs - handle for the ledger entry pool
func (s *Store) Logs() Handle {
	return s.pool.Logs
}

// Index - handle for the owner to entry index pool
func (s *Store) Index() Handle {
	return s.pool.Index
}

// Control - handle for the control value pool
func (s *Store) Control() Handle {
	return s.pool.Control
}

// Tracking - handle for the activity tracking pool
func (s *Store) Tracking() Handle {
	return s.pool.Tracking
}

// NewTransaction - begin a batched transaction covering all pools
//
// the transaction must be finished with either Commit or Abort
func (s *Store) NewTransaction() (Transaction, error) {
	trx := newTransaction(s.access)
	err := trx.Begin()
	if nil != err {
		return nil, err
	}
	return trx, nil
}

// open the underlying LevelDB file
func openLevelDB(path string, readOnly bool) (*leveldb.DB, error) {
	opts := &opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}
	return leveldb.OpenFile(path, opts)
}

// ensure the database layout matches this build
func validateStoreVersion(db *leveldb.DB, readOnly bool) error {
	buffer, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		if readOnly {
			return fault.IncompatibleDatabaseVersion
		}
		return putVersion(db, currentStoreVersion)
	} else if nil != err {
		return err
	}

	if 4 != len(buffer) {
		return fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(buffer))
	}

	version := binary.BigEndian.Uint32(buffer)
	if currentStoreVersion != version {
		return fault.IncompatibleDatabaseVersion
	}
	return nil
}

// store the database version
func putVersion(db *leveldb.DB, version uint32) error {
	buffer := make([]byte, 4)
	binary.BigEndian.PutUint32(buffer, version)
	return db.Put(versionKey, buffer, nil)
}
