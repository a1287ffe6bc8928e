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

func runAccounts(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	scope, err := checkScope(c.GlobalString("scope"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "scope: %s\n", scope)
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	accountsConfig := &rpccalls.AccountsData{
		Scope: scope,
	}

	response, err := client.GetAccounts(accountsConfig)
	if nil != err {
		return err
	}

	printReply(m, response)

	return nil
}
