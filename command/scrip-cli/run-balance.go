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

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	scope, err := checkScope(c.GlobalString("scope"), m.config)
	if nil != err {
		return err
	}

	owner, err := checkOwner(c.String("owner"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "scope: %s\n", scope)
		fmt.Fprintf(m.e, "owner: %s\n", owner)
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	balanceConfig := &rpccalls.BalanceData{
		Scope: scope,
		Owner: owner,
	}

	response, err := client.GetBalance(balanceConfig)
	if nil != err {
		return err
	}

	printReply(m, response)

	return nil
}
