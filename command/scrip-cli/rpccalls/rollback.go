// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/rpc/account"
)

// RollbackData - the parameters for a rollback request
type RollbackData struct {
	Scope ident.ScopeID
	Owner ident.OwnerID
	Entry uint64
}

// Rollback - undo one ledger entry with a balancing entry
func (client *Client) Rollback(rollbackConfig *RollbackData) (*account.TransactionReply, error) {

	rollbackArgs := account.RollbackArguments{
		Scope: rollbackConfig.Scope,
		Owner: rollbackConfig.Owner,
		Entry: rollbackConfig.Entry,
	}

	client.printJson("Rollback Request", rollbackArgs)

	reply := &account.TransactionReply{}
	err := client.client.Call("Account.Rollback", rollbackArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Rollback Reply", reply)

	return reply, nil
}
