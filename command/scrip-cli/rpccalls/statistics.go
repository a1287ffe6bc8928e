// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/rpc/bank"
)

// StatisticsData - the parameters for a statistics request
type StatisticsData struct {
	Scope ident.ScopeID
}

// GetStatistics - aggregate figures over every account of one scope
func (client *Client) GetStatistics(statisticsConfig *StatisticsData) (*bank.StatisticsReply, error) {

	statisticsArgs := bank.StatisticsArguments{
		Scope: statisticsConfig.Scope,
	}

	client.printJson("Statistics Request", statisticsArgs)

	reply := &bank.StatisticsReply{}
	err := client.client.Call("Bank.Statistics", statisticsArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Statistics Reply", reply)

	return reply, nil
}
