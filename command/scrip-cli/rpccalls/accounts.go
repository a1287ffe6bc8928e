// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/rpc/bank"
)

// AccountsData - the parameters for an account listing request
type AccountsData struct {
	Scope ident.ScopeID
}

// GetAccounts - every stored account of one scope
func (client *Client) GetAccounts(accountsConfig *AccountsData) (*bank.AccountsReply, error) {

	accountsArgs := bank.AccountsArguments{
		Scope: accountsConfig.Scope,
	}

	client.printJson("Accounts Request", accountsArgs)

	reply := &bank.AccountsReply{}
	err := client.client.Call("Bank.Accounts", accountsArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Accounts Reply", reply)

	return reply, nil
}
