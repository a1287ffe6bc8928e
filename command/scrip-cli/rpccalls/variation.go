// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"time"

	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/rpc/account"
)

// VariationData - the parameters for a balance variation request
type VariationData struct {
	Scope ident.ScopeID
	Owner ident.OwnerID
	Start time.Time
	End   time.Time
}

// GetVariation - sum of one account's entry amounts inside a time window
func (client *Client) GetVariation(variationConfig *VariationData) (*account.VariationReply, error) {

	variationArgs := account.VariationArguments{
		Scope: variationConfig.Scope,
		Owner: variationConfig.Owner,
		Start: variationConfig.Start,
		End:   variationConfig.End,
	}

	client.printJson("Variation Request", variationArgs)

	reply := &account.VariationReply{}
	err := client.client.Call("Account.Variation", variationArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Variation Reply", reply)

	return reply, nil
}
