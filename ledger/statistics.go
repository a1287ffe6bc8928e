// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
)

// Statistics - aggregate figures for one scope
type Statistics struct {
	AccountCount   int     `json:"account_count"`
	TotalBalance   int64   `json:"total_balance"`
	AverageBalance float64 `json:"average_balance"`
	MedianBalance  float64 `json:"median_balance"`
}

// one stored account row
type balanceEntry struct {
	owner   ident.OwnerID
	balance int64
}

// read every account row; the store is authoritative
func (b *Bank) snapshot() ([]balanceEntry, error) {
	entries := make([]balanceEntry, 0, 64)
	err := b.store.Accounts().NewFetchCursor().Map(func(key []byte, value []byte) error {
		if 8 != len(key) || 8 != len(value) {
			return fault.DataInconsistent
		}
		entries = append(entries, balanceEntry{
			owner:   ident.OwnerID(binary.BigEndian.Uint64(key)),
			balance: int64(binary.BigEndian.Uint64(value)),
		})
		return nil
	})
	if nil != err {
		if fault.IsErrRecord(err) {
			return nil, err
		}
		b.log.Errorf("account scan error: %s", err)
		return nil, fault.StoreUnavailable
	}
	return entries, nil
}

// order for ranking: balance descending, ties by ascending owner
func sortForRank(entries []balanceEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].balance != entries[j].balance {
			return entries[i].balance > entries[j].balance
		}
		return entries[i].owner < entries[j].owner
	})
}

// Leaderboard - accounts by descending balance, ties broken by
// ascending owner id
//
// a limit of zero or less returns the full ordering
func (b *Bank) Leaderboard(limit int) ([]*Account, error) {
	entries, err := b.snapshot()
	if nil != err {
		return nil, err
	}
	sortForRank(entries)

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	accounts := make([]*Account, 0, len(entries))
	for _, e := range entries {
		a, err := b.Account(e.owner)
		if nil != err {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// Rank - the 1-based position of an account in the full descending
// ordering
//
// when the owner has no stored row at all the account count is
// returned instead (a documented sentinel, not a true rank)
func (b *Bank) Rank(account *Account) (int, error) {
	if nil == account {
		return 0, fault.MissingParameters
	}

	entries, err := b.snapshot()
	if nil != err {
		return 0, err
	}
	sortForRank(entries)

	for i, e := range entries {
		if e.owner == account.owner {
			return i + 1, nil
		}
	}
	return len(entries), nil
}

// Statistics - compute the aggregates over every stored account
func (b *Bank) Statistics() (*Statistics, error) {
	entries, err := b.snapshot()
	if nil != err {
		return nil, err
	}

	s := &Statistics{
		AccountCount: len(entries),
	}
	if 0 == len(entries) {
		return s, nil
	}

	balances := make([]int64, 0, len(entries))
	for _, e := range entries {
		s.TotalBalance += e.balance
		balances = append(balances, e.balance)
	}

	average := float64(s.TotalBalance) / float64(len(entries))
	s.AverageBalance = math.Round(average*100) / 100

	sort.Slice(balances, func(i, j int) bool { return balances[i] < balances[j] })
	middle := len(balances) / 2
	if 1 == len(balances)%2 {
		s.MedianBalance = float64(balances[middle])
	} else {
		s.MedianBalance = float64(balances[middle-1]+balances[middle]) / 2
	}

	return s, nil
}

// AccountCount - number of stored accounts
func (b *Bank) AccountCount() (int, error) {
	s, err := b.Statistics()
	if nil != err {
		return 0, err
	}
	return s.AccountCount, nil
}

// TotalBalance - sum of every stored balance
func (b *Bank) TotalBalance() (int64, error) {
	s, err := b.Statistics()
	if nil != err {
		return 0, err
	}
	return s.TotalBalance, nil
}

// AverageBalance - mean balance rounded to 2 decimals, 0 when empty
func (b *Bank) AverageBalance() (float64, error) {
	s, err := b.Statistics()
	if nil != err {
		return 0, err
	}
	return s.AverageBalance, nil
}

// MedianBalance - standard even/odd median over all balances
func (b *Bank) MedianBalance() (float64, error) {
	s, err := b.Statistics()
	if nil != err {
		return 0, err
	}
	return s.MedianBalance, nil
}
