// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/metadata"
	"github.com/scrip-coop/scripd/rpc/account"
)

// TransferData - the parameters for a transfer request
type TransferData struct {
	Scope    ident.ScopeID
	From     ident.OwnerID
	To       ident.OwnerID
	Amount   int64
	Reason   string
	Metadata metadata.Map
}

// Transfer - move an amount between two accounts of one scope
func (client *Client) Transfer(transferConfig *TransferData) (*account.TransferReply, error) {

	transferArgs := account.TransferArguments{
		Scope:    transferConfig.Scope,
		From:     transferConfig.From,
		To:       transferConfig.To,
		Amount:   transferConfig.Amount,
		Reason:   transferConfig.Reason,
		Metadata: transferConfig.Metadata,
	}

	client.printJson("Transfer Request", transferArgs)

	reply := &account.TransferReply{}
	err := client.client.Call("Account.Transfer", transferArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Transfer Reply", reply)

	return reply, nil
}
