// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/messagebus"
)

// ledger event commands on the message bus
const (
	eventEntry  = "entry"  // a new entry was committed
	eventUpdate = "update" // an entry's metadata changed
	eventRemove = "remove" // an entry was deleted
)

// Bank - one scope's accounts and ledger
type Bank struct {
	log      *logger.L
	scope    ident.ScopeID
	store    Store
	cacheMu  sync.Mutex // guards the account cache
	accounts map[ident.OwnerID]*Account
	trxMu    sync.Mutex // serialises id reservation and batch commits
}

func newBank(scope ident.ScopeID, store Store) *Bank {
	return &Bank{
		log:      logger.New(fmt.Sprintf("bank-%d", scope)),
		scope:    scope,
		store:    store,
		accounts: make(map[ident.OwnerID]*Account),
	}
}

// Scope - the scope this bank serves
func (b *Bank) Scope() ident.ScopeID {
	return b.scope
}

// Account - fetch or create the account for an owner
//
// the first access persists a zero balance row; at most one Account
// object exists per owner for the bank's lifetime
func (b *Bank) Account(owner ident.OwnerID) (*Account, error) {
	b.cacheMu.Lock()
	defer b.cacheMu.Unlock()

	if a, ok := b.accounts[owner]; ok {
		return a, nil
	}

	a, err := b.loadAccount(owner)
	if nil != err {
		return nil, err
	}
	b.accounts[owner] = a
	return a, nil
}

// Accounts - materialise every account with a row in the store
//
// a nil predicate keeps everything; order is ascending owner id
func (b *Bank) Accounts(predicate func(*Account) bool) ([]*Account, error) {
	entries, err := b.snapshot()
	if nil != err {
		return nil, err
	}

	out := make([]*Account, 0, len(entries))
	for _, e := range entries {
		a, err := b.Account(e.owner)
		if nil != err {
			return nil, err
		}
		if nil != predicate && !predicate(a) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// load or create one account from the store
//
// caller holds the cache lock
func (b *Bank) loadAccount(owner ident.OwnerID) (*Account, error) {
	a := &Account{
		bank:  b,
		owner: owner,
	}

	key := ownerKey(owner)
	n, found := b.store.Accounts().GetN(key)
	if !found {
		// persist the zero balance row immediately
		b.trxMu.Lock()
		err := b.createRow(key)
		b.trxMu.Unlock()
		if nil != err {
			return nil, err
		}
		return a, nil
	}

	a.balance = int64(n)
	logs, err := b.loadLogs(a)
	if nil != err {
		return nil, err
	}
	a.logs = logs
	return a, nil
}

// caller holds the transaction lock
func (b *Bank) createRow(key []byte) error {
	trx, err := b.store.NewTransaction()
	if nil != err {
		b.log.Errorf("begin transaction error: %s", err)
		return fault.StoreUnavailable
	}
	trx.PutN(b.store.Accounts(), key, 0)
	if err := trx.Commit(); nil != err {
		b.log.Errorf("commit error: %s", err)
		return fault.StoreUnavailable
	}
	return nil
}

// iteration stop marker, not an error
var errEndOfOwner = errors.New("end of owner")

// materialise the stored entries of one account in creation order
func (b *Bank) loadLogs(a *Account) ([]*Log, error) {
	prefix := ownerKey(a.owner)

	logs := make([]*Log, 0, 16)
	cursor := b.store.Index().NewFetchCursor().Seek(prefix)
	err := cursor.Map(func(key []byte, value []byte) error {
		if !bytes.HasPrefix(key, prefix) {
			return errEndOfOwner
		}

		packed := b.store.Logs().Get(value)
		if nil == packed {
			return fault.DataInconsistent
		}
		record, err := unpackLog(packed)
		if nil != err {
			return err
		}
		if record.owner != a.owner {
			return fault.DataInconsistent
		}

		logs = append(logs, &Log{
			account:   a,
			id:        binary.BigEndian.Uint64(value),
			amount:    record.amount,
			createdAt: record.created,
			metadata:  record.meta,
		})
		return nil
	})
	if nil != err && errEndOfOwner != err {
		if fault.IsErrRecord(err) || fault.IsErrLength(err) {
			return nil, err
		}
		b.log.Errorf("load entries error: %s", err)
		return nil, fault.StoreUnavailable
	}
	return logs, nil
}

// reserve n consecutive entry ids
//
// the bumped high water mark commits before the operation batch, so an
// id can never be reused even if the operation itself fails or the
// process crashes between the two writes; gaps are acceptable
//
// caller holds the transaction lock
func (b *Bank) reserveLogIDs(n uint64) (uint64, error) {
	next, ok := b.store.Control().GetN(nextLogIDKey)
	if !ok {
		next = 1
	}

	trx, err := b.store.NewTransaction()
	if nil != err {
		b.log.Errorf("begin transaction error: %s", err)
		return 0, fault.StoreUnavailable
	}
	trx.PutN(b.store.Control(), nextLogIDKey, next+n)
	if err := trx.Commit(); nil != err {
		b.log.Errorf("commit error: %s", err)
		return 0, fault.StoreUnavailable
	}
	return next, nil
}

// an already stored entry whose record is being rewritten
type logUpdate struct {
	log    *Log
	packed []byte
}

// commit - write entry updates and new entries in one batch
//
// new entries receive their ids here
func (b *Bank) commit(updates []*logUpdate, entries []*pending) error {
	b.trxMu.Lock()
	defer b.trxMu.Unlock()

	if len(entries) > 0 {
		first, err := b.reserveLogIDs(uint64(len(entries)))
		if nil != err {
			return err
		}
		for i, e := range entries {
			e.log.id = first + uint64(i)
		}
	}

	trx, err := b.store.NewTransaction()
	if nil != err {
		b.log.Errorf("begin transaction error: %s", err)
		return fault.StoreUnavailable
	}

	for _, u := range updates {
		trx.Put(b.store.Logs(), logKey(u.log.id), u.packed)
	}
	for _, e := range entries {
		trx.PutN(b.store.Accounts(), ownerKey(e.account.owner), uint64(e.balance))
		trx.Put(b.store.Logs(), logKey(e.log.id), e.packed)
		trx.Put(b.store.Index(), indexKey(e.account.owner, e.log.id), logKey(e.log.id))
	}

	if err := trx.Commit(); nil != err {
		b.log.Errorf("commit error: %s", err)
		return fault.StoreUnavailable
	}
	return nil
}

// commitDelete - remove one entry and its index row
func (b *Bank) commitDelete(l *Log) error {
	b.trxMu.Lock()
	defer b.trxMu.Unlock()

	trx, err := b.store.NewTransaction()
	if nil != err {
		b.log.Errorf("begin transaction error: %s", err)
		return fault.StoreUnavailable
	}
	trx.Delete(b.store.Logs(), logKey(l.id))
	trx.Delete(b.store.Index(), indexKey(l.account.owner, l.id))

	if err := trx.Commit(); nil != err {
		b.log.Errorf("commit error: %s", err)
		return fault.StoreUnavailable
	}
	return nil
}

// broadcast a committed mutation
func (b *Bank) announce(event string, l *Log) {
	messagebus.Bus.Ledger.Send(event,
		uint64Bytes(uint64(b.scope)),
		uint64Bytes(uint64(l.account.owner)),
		uint64Bytes(l.id),
		uint64Bytes(uint64(l.amount)),
		[]byte(l.Reason()),
	)
}

func uint64Bytes(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}
