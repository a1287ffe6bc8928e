// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/rpc/account"
)

// HistoryData - the parameters for a history request
type HistoryData struct {
	Scope ident.ScopeID
	Owner ident.OwnerID
	Count int
}

// GetHistory - retrieve the most recent entries of one account
func (client *Client) GetHistory(historyConfig *HistoryData) (*account.HistoryReply, error) {

	historyArgs := account.HistoryArguments{
		Scope: historyConfig.Scope,
		Owner: historyConfig.Owner,
		Count: historyConfig.Count,
	}

	client.printJson("History Request", historyArgs)

	reply := &account.HistoryReply{}
	err := client.client.Call("Account.History", historyArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("History Reply", reply)

	return reply, nil
}
