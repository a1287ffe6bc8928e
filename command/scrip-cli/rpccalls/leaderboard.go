// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/rpc/bank"
)

// LeaderboardData - the parameters for a leaderboard request
type LeaderboardData struct {
	Scope ident.ScopeID
	Count int
}

// GetLeaderboard - retrieve the richest accounts of one scope
func (client *Client) GetLeaderboard(leaderboardConfig *LeaderboardData) (*bank.LeaderboardReply, error) {

	leaderboardArgs := bank.LeaderboardArguments{
		Scope: leaderboardConfig.Scope,
		Count: leaderboardConfig.Count,
	}

	client.printJson("Leaderboard Request", leaderboardArgs)

	reply := &bank.LeaderboardReply{}
	err := client.client.Call("Bank.Leaderboard", leaderboardArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Leaderboard Reply", reply)

	return reply, nil
}
