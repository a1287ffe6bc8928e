// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/scrip-coop/scripd/command/scrip-cli/rpccalls"
)

func runWithdraw(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	scope, err := checkScope(c.GlobalString("scope"), m.config)
	if nil != err {
		return err
	}

	owner, err := checkOwner(c.String("owner"))
	if nil != err {
		return err
	}

	amount := c.Int64("amount")
	if amount <= 0 {
		return fmt.Errorf("invalid amount: %d", amount)
	}

	reason := c.String("reason")

	meta, err := checkMetadata(c.String("metadata"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "scope: %s\n", scope)
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "amount: %d\n", amount)
		fmt.Fprintf(m.e, "reason: %q\n", reason)
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	withdrawConfig := &rpccalls.TransactionData{
		Scope:    scope,
		Owner:    owner,
		Amount:   amount,
		Reason:   reason,
		Metadata: meta,
	}

	response, err := client.Withdraw(withdrawConfig)
	if nil != err {
		return err
	}

	printReply(m, response)

	return nil
}
