// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/rpc/account"
)

// BalanceData - the parameters for a balance request
type BalanceData struct {
	Scope ident.ScopeID
	Owner ident.OwnerID
}

// GetBalance - retrieve the current balance of one account
func (client *Client) GetBalance(balanceConfig *BalanceData) (*account.BalanceReply, error) {

	balanceArgs := account.BalanceArguments{
		Scope: balanceConfig.Scope,
		Owner: balanceConfig.Owner,
	}

	client.printJson("Balance Request", balanceArgs)

	reply := &account.BalanceReply{}
	err := client.client.Call("Account.Balance", balanceArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Balance Reply", reply)

	return reply, nil
}
