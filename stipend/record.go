// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stipend

import (
	"encoding/binary"
	"time"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
)

// tracking pool record: day stamp + messages counted that day
//
//	T<owner> -> day(8) + count(8)
//
// the count is only stored up to the message threshold: once the
// stipend decision for the day is made the record stays frozen until
// the day changes
const trackingRecordSize = 16

type trackingRecord struct {
	day   uint64
	count uint64
}

// Record - count one activity event and credit the daily stipend when
// the count reaches the message threshold
//
// returns the deposit entry when a stipend was credited, nil otherwise;
// the wealth check happens once, on the threshold event: an owner over
// the limit at that moment gets nothing until the next day
func Record(scope ident.ScopeID, owner ident.OwnerID) (*ledger.Log, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	globalData.events.Increment()

	policy := globalData.policy
	if 0 == policy.Amount {
		return nil, nil
	}

	// the bank is fetched first so the scope store is open before the
	// tracking pool is touched
	bank, err := globalData.ledger.Bank(scope)
	if nil != err {
		return nil, err
	}

	tracking, err := globalData.tracking(scope)
	if nil != err {
		globalData.log.Errorf("tracking pool for scope: %d error: %s", scope, err)
		return nil, fault.StoreUnavailable
	}

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(owner))

	row := unpackTracking(tracking.Get(key))

	day := currentDay()
	if row.day != day {
		row.day = day
		row.count = 0
	}

	row.count += 1

	if row.count > policy.MessageThreshold {
		// today's stipend decision was already made
		return nil, nil
	}

	tracking.Put(key, packTracking(row))

	if row.count < policy.MessageThreshold {
		return nil, nil
	}

	account, err := bank.Account(owner)
	if nil != err {
		return nil, err
	}

	if account.Balance() > policy.WealthLimit {
		globalData.log.Infof("scope: %d owner: %d over wealth limit", scope, owner)
		return nil, nil
	}

	entry, err := account.Deposit(policy.Amount, policy.Reason, nil)
	if nil != err {
		globalData.log.Errorf("deposit scope: %d owner: %d error: %s", scope, owner, err)
		return nil, err
	}

	globalData.credits.Increment()
	globalData.log.Infof("credited scope: %d owner: %d amount: %d", scope, owner, policy.Amount)

	return entry, nil
}

// local date as a sortable number, e.g. 20260512
func currentDay() uint64 {
	year, month, day := time.Now().Date()
	return uint64(year)*10000 + uint64(month)*100 + uint64(day)
}

func packTracking(r trackingRecord) []byte {
	buffer := make([]byte, trackingRecordSize)
	binary.BigEndian.PutUint64(buffer[:8], r.day)
	binary.BigEndian.PutUint64(buffer[8:], r.count)
	return buffer
}

// a missing or malformed record counts as a fresh day
func unpackTracking(buffer []byte) trackingRecord {
	if trackingRecordSize != len(buffer) {
		return trackingRecord{}
	}
	return trackingRecord{
		day:   binary.BigEndian.Uint64(buffer[:8]),
		count: binary.BigEndian.Uint64(buffer[8:]),
	}
}
