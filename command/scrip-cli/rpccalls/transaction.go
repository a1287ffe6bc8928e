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

// TransactionData - the parameters for a single account mutation
type TransactionData struct {
	Scope    ident.ScopeID
	Owner    ident.OwnerID
	Amount   int64
	Reason   string
	Metadata metadata.Map
}

func (t *TransactionData) arguments() account.TransactionArguments {
	return account.TransactionArguments{
		Scope:    t.Scope,
		Owner:    t.Owner,
		Amount:   t.Amount,
		Reason:   t.Reason,
		Metadata: t.Metadata,
	}
}

// Deposit - add an amount to one account balance
func (client *Client) Deposit(transactionConfig *TransactionData) (*account.TransactionReply, error) {

	depositArgs := transactionConfig.arguments()

	client.printJson("Deposit Request", depositArgs)

	reply := &account.TransactionReply{}
	err := client.client.Call("Account.Deposit", depositArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Deposit Reply", reply)

	return reply, nil
}

// Withdraw - remove an amount from one account balance
func (client *Client) Withdraw(transactionConfig *TransactionData) (*account.TransactionReply, error) {

	withdrawArgs := transactionConfig.arguments()

	client.printJson("Withdraw Request", withdrawArgs)

	reply := &account.TransactionReply{}
	err := client.client.Call("Account.Withdraw", withdrawArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Withdraw Reply", reply)

	return reply, nil
}

// SetBalance - assign one account balance directly
func (client *Client) SetBalance(transactionConfig *TransactionData) (*account.TransactionReply, error) {

	setBalanceArgs := transactionConfig.arguments()

	client.printJson("SetBalance Request", setBalanceArgs)

	reply := &account.TransactionReply{}
	err := client.client.Call("Account.SetBalance", setBalanceArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("SetBalance Reply", reply)

	return reply, nil
}
