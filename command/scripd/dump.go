// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/prometheus/common/log"

	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/metadata"
)

type accountItem struct {
	Owner   ident.OwnerID `json:"owner"`
	Balance int64         `json:"balance"`
}

type accountsResult struct {
	Scope    ident.ScopeID `json:"scope"`
	Accounts []accountItem `json:"accounts"`
}

type entryItem struct {
	Entry     uint64       `json:"entry"`
	Amount    int64        `json:"amount"`
	CreatedAt time.Time    `json:"createdAt"`
	Reason    string       `json:"reason"`
	Rollback  bool         `json:"rollback,omitempty"`
	Metadata  metadata.Map `json:"metadata"`
}

type entriesResult struct {
	Scope   ident.ScopeID `json:"scope"`
	Owner   ident.OwnerID `json:"owner"`
	Entries []entryItem   `json:"entries"`
}

// dump of every account in one scope, ascending owner order
func dumpAccounts(bank *ledger.Bank) (*accountsResult, error) {
	accounts, err := bank.Accounts(nil)
	if nil != err {
		log.Errorf("unable to list accounts: %s", err)
		return nil, err
	}

	items := make([]accountItem, len(accounts))
	for i, a := range accounts {
		items[i] = accountItem{
			Owner:   a.Owner(),
			Balance: a.Balance(),
		}
	}

	result := &accountsResult{
		Scope:    bank.Scope(),
		Accounts: items,
	}

	return result, nil
}

// dump of one owner's ledger entries in creation order
func dumpEntries(bank *ledger.Bank, owner ident.OwnerID) (*entriesResult, error) {

	// scan instead of a direct account fetch: fetching would create
	// a missing account and this path must stay read-only
	accounts, err := bank.Accounts(func(a *ledger.Account) bool {
		return owner == a.Owner()
	})
	if nil != err {
		log.Errorf("unable to scan accounts: %s", err)
		return nil, err
	}
	if 0 == len(accounts) {
		err := fmt.Errorf("owner: %d has no account", owner)
		log.Errorf("%s", err)
		return nil, err
	}

	logs := accounts[0].Logs()
	items := make([]entryItem, len(logs))
	for i, l := range logs {
		items[i] = entryItem{
			Entry:     l.ID(),
			Amount:    l.Amount(),
			CreatedAt: l.CreatedAt(),
			Reason:    l.Reason(),
			Rollback:  l.IsRollback(),
			Metadata:  l.Metadata(),
		}
	}

	result := &entriesResult{
		Scope:   bank.Scope(),
		Owner:   owner,
		Entries: items,
	}

	return result, nil
}
