// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/rpc/bank"
)

// RankData - the parameters for a rank request
type RankData struct {
	Scope ident.ScopeID
	Owner ident.OwnerID
}

// GetRank - the position of one account in the scope ordering
func (client *Client) GetRank(rankConfig *RankData) (*bank.RankReply, error) {

	rankArgs := bank.RankArguments{
		Scope: rankConfig.Scope,
		Owner: rankConfig.Owner,
	}

	client.printJson("Rank Request", rankArgs)

	reply := &bank.RankReply{}
	err := client.client.Call("Bank.Rank", rankArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Rank Reply", reply)

	return reply, nil
}
