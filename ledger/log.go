// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"
	"time"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/metadata"
)

// Log - one balance changing event
//
// the amount is immutable once created; only the metadata bag may
// change, through UpdateMetadata/ReplaceMetadata, until an explicit
// Delete removes the entry entirely
type Log struct {
	mu        sync.Mutex // guards metadata and the deleted flag
	account   *Account
	id        uint64
	amount    int64
	createdAt time.Time
	metadata  metadata.Map
	deleted   bool
}

// ID - entry identifier, unique per scope, never reused
func (l *Log) ID() uint64 {
	return l.id
}

// Amount - the signed balance delta recorded at creation
func (l *Log) Amount() int64 {
	return l.amount
}

// CreatedAt - when the entry was created
func (l *Log) CreatedAt() time.Time {
	return l.createdAt
}

// Account - the owning account (back reference)
func (l *Log) Account() *Account {
	return l.account
}

// Metadata - a copy of the annotation bag
func (l *Log) Metadata() metadata.Map {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.metadata.Clone()
}

// Reason - metadata["reason"], defaulting to "N/A"
func (l *Log) Reason() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.metadata.Reason()
}

// IsRollback - true when a rollback flagged this entry
func (l *Log) IsRollback() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.metadata.IsRollback()
}

// UpdateMetadata - merge patch into the metadata and persist
//
// existing keys are overwritten, others preserved
func (l *Log) UpdateMetadata(patch metadata.Map) error {
	a := l.account
	a.Lock()
	defer a.Unlock()

	if l.isDeleted() {
		return fault.LogNotFound
	}

	merged := l.Metadata()
	merged.Merge(patch)
	return l.persistMetadata(merged)
}

// ReplaceMetadata - discard the old metadata entirely
func (l *Log) ReplaceMetadata(m metadata.Map) error {
	a := l.account
	a.Lock()
	defer a.Unlock()

	if l.isDeleted() {
		return fault.LogNotFound
	}

	return l.persistMetadata(m.Clone())
}

// write a new metadata bag for this entry
//
// caller must hold the account lock
func (l *Log) persistMetadata(m metadata.Map) error {
	record := logRecord{
		owner:   l.account.owner,
		amount:  l.amount,
		created: l.createdAt,
		meta:    m,
	}
	packed, err := record.pack()
	if nil != err {
		return err
	}

	err = l.account.bank.commit([]*logUpdate{{log: l, packed: packed}}, nil)
	if nil != err {
		return err
	}

	l.setMetadata(m)
	l.account.bank.announce(eventUpdate, l)
	return nil
}

// Delete - remove the entry from the store
//
// administrative correction only; rollback is the reversal path. after
// a delete every further operation fails with LogNotFound
func (l *Log) Delete() error {
	a := l.account
	a.Lock()
	defer a.Unlock()

	if l.isDeleted() {
		return fault.LogNotFound
	}

	err := a.bank.commitDelete(l)
	if nil != err {
		return err
	}

	l.mu.Lock()
	l.deleted = true
	l.mu.Unlock()

	// drop from the account's materialised sequence
	for i, x := range a.logs {
		if x == l {
			a.logs = append(a.logs[:i], a.logs[i+1:]...)
			break
		}
	}

	a.bank.announce(eventRemove, l)
	return nil
}

func (l *Log) isDeleted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.deleted
}

func (l *Log) setMetadata(m metadata.Map) {
	l.mu.Lock()
	l.metadata = m
	l.mu.Unlock()
}
