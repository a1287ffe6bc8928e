// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"
	"time"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/metadata"
)

// Account - one owner's balance and entry history within a scope
//
// the embedded lock serialises every mutation and every consistent
// read of this account; separate accounts proceed in parallel
type Account struct {
	sync.Mutex
	bank    *Bank
	owner   ident.OwnerID
	balance int64
	logs    []*Log // creation order
}

// Owner - the owner identifier
func (a *Account) Owner() ident.OwnerID {
	return a.owner
}

// Scope - the scope this account belongs to
func (a *Account) Scope() ident.ScopeID {
	return a.bank.scope
}

// Balance - the current balance
func (a *Account) Balance() int64 {
	a.Lock()
	defer a.Unlock()
	return a.balance
}

// Deposit - increase the balance by amount
//
// a negative amount is not rejected here (that policy belongs to the
// caller) but the resulting balance must stay non-negative
func (a *Account) Deposit(amount int64, reason string, meta metadata.Map) (*Log, error) {
	a.Lock()
	defer a.Unlock()
	return a.setBalance(a.balance+amount, reason, meta)
}

// Withdraw - remove amount from the balance
func (a *Account) Withdraw(amount int64, reason string, meta metadata.Map) (*Log, error) {
	a.Lock()
	defer a.Unlock()

	if amount > a.balance {
		return nil, fault.InsufficientBalance
	}
	return a.setBalance(a.balance-amount, reason, meta)
}

// SetBalance - assign the balance directly
func (a *Account) SetBalance(value int64, reason string, meta metadata.Map) (*Log, error) {
	a.Lock()
	defer a.Unlock()
	return a.setBalance(value, reason, meta)
}

// the single choke point through which every balance mutation passes
//
// caller must hold the account lock
func (a *Account) setBalance(value int64, reason string, meta metadata.Map) (*Log, error) {
	entry, err := newPending(a, value, value-a.balance, reason, meta, time.Now().UTC())
	if nil != err {
		return nil, err
	}

	err = a.bank.commit(nil, []*pending{entry})
	if nil != err {
		return nil, err
	}

	entry.apply()
	a.bank.announce(eventEntry, entry.log)
	return entry.log, nil
}

// Transfer - move amount to another account in the same scope
//
// returns the withdrawal entry and the deposit entry; both balance
// writes and both entries commit in one storage batch, so a failure
// of either leaves both balances unchanged
func (a *Account) Transfer(to *Account, amount int64, reason string, meta metadata.Map) (*Log, *Log, error) {
	if nil == to {
		return nil, nil, fault.MissingParameters
	}
	if a.bank != to.bank {
		return nil, nil, fault.CrossScopeTransfer
	}

	// fixed global lock order so opposing transfers cannot deadlock
	first, second := a, to
	if to.owner < a.owner {
		first, second = to, a
	}
	first.Lock()
	defer first.Unlock()
	if first != second {
		second.Lock()
		defer second.Unlock()
	}

	if amount > a.balance {
		return nil, nil, fault.InsufficientBalance
	}

	sourceAfter := a.balance - amount

	// a transfer to self nets to the starting balance but still
	// records both entries
	destBefore := to.balance
	if a == to {
		destBefore = sourceAfter
	}
	destAfter := destBefore + amount

	now := time.Now().UTC()

	withdrawal, err := newPending(a, sourceAfter, -amount, reason, meta, now)
	if nil != err {
		return nil, nil, err
	}
	deposit, err := newPending(to, destAfter, amount, reason, meta, now)
	if nil != err {
		return nil, nil, err
	}

	err = a.bank.commit(nil, []*pending{withdrawal, deposit})
	if nil != err {
		return nil, nil, err
	}

	withdrawal.apply()
	deposit.apply()
	a.bank.announce(eventEntry, withdrawal.log)
	a.bank.announce(eventEntry, deposit.log)
	return withdrawal.log, deposit.log, nil
}

// Rollback - undo one entry by creating a balancing entry
//
// the original entry is flagged rollback=true and kept; the new entry
// carries the flagged metadata with reason "rollback" and the negated
// amount. fails with LogNotFound when the id does not belong to this
// account
func (a *Account) Rollback(id uint64) (*Log, error) {
	a.Lock()
	defer a.Unlock()

	original := a.findLog(id)
	if nil == original {
		return nil, fault.LogNotFound
	}

	flagged := original.Metadata()
	flagged[metadata.RollbackKey] = true

	record := logRecord{
		owner:   a.owner,
		amount:  original.amount,
		created: original.createdAt,
		meta:    flagged,
	}
	flaggedPacked, err := record.pack()
	if nil != err {
		return nil, err
	}

	entry, err := newPending(a, a.balance-original.amount, -original.amount, "rollback", flagged, time.Now().UTC())
	if nil != err {
		return nil, err
	}

	// the flag on the original and the balancing entry land together
	update := &logUpdate{log: original, packed: flaggedPacked}
	err = a.bank.commit([]*logUpdate{update}, []*pending{entry})
	if nil != err {
		return nil, err
	}

	original.setMetadata(flagged)
	entry.apply()
	a.bank.announce(eventUpdate, original)
	a.bank.announce(eventEntry, entry.log)
	return entry.log, nil
}

// BalanceVariation - sum of entry amounts created in [start, end]
func (a *Account) BalanceVariation(start time.Time, end time.Time) (int64, error) {
	if end.Before(start) {
		return 0, fault.InvalidTimeInterval
	}

	a.Lock()
	defer a.Unlock()

	sum := int64(0)
	for _, l := range a.logs {
		if !l.createdAt.Before(start) && !l.createdAt.After(end) {
			sum += l.amount
		}
	}
	return sum, nil
}

// Logs - every entry in creation order
func (a *Account) Logs() []*Log {
	a.Lock()
	defer a.Unlock()

	out := make([]*Log, len(a.logs))
	copy(out, a.logs)
	return out
}

// FetchLog - a single entry by id
func (a *Account) FetchLog(id uint64) (*Log, error) {
	a.Lock()
	defer a.Unlock()

	log := a.findLog(id)
	if nil == log {
		return nil, fault.LogNotFound
	}
	return log, nil
}

// FetchLogs - entries most recent first, optionally filtered
//
// a limit of zero or less returns everything
func (a *Account) FetchLogs(limit int, predicate func(*Log) bool) []*Log {
	a.Lock()
	defer a.Unlock()

	out := make([]*Log, 0, len(a.logs))
	for i := len(a.logs) - 1; i >= 0; i -= 1 {
		l := a.logs[i]
		if nil != predicate && !predicate(l) {
			continue
		}
		out = append(out, l)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// caller must hold the account lock
func (a *Account) findLog(id uint64) *Log {
	for _, l := range a.logs {
		if l.id == id {
			return l
		}
	}
	return nil
}

// a validated balance change and its entry, not yet committed
type pending struct {
	account *Account
	balance int64
	log     *Log
	packed  []byte
}

// build a pending entry, enforcing the non-negative invariant and
// validating the metadata before anything is written
//
// caller must hold the account lock
func newPending(a *Account, newBalance int64, delta int64, reason string, meta metadata.Map, at time.Time) (*pending, error) {
	if newBalance < 0 {
		return nil, fault.NegativeBalance
	}

	m := meta.Clone()
	if "" != reason {
		m[metadata.ReasonKey] = reason
	}

	record := logRecord{
		owner:   a.owner,
		amount:  delta,
		created: at,
		meta:    m,
	}
	packed, err := record.pack()
	if nil != err {
		return nil, err
	}

	return &pending{
		account: a,
		balance: newBalance,
		log: &Log{
			account:   a,
			amount:    delta,
			createdAt: at,
			metadata:  m,
		},
		packed: packed,
	}, nil
}

// make the committed change visible in memory
func (p *pending) apply() {
	p.account.balance = p.balance
	p.account.logs = append(p.account.logs, p.log)
}
