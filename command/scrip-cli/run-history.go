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

func runHistory(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	scope, err := checkScope(c.GlobalString("scope"), m.config)
	if nil != err {
		return err
	}

	owner, err := checkOwner(c.String("owner"))
	if nil != err {
		return err
	}

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "scope: %s\n", scope)
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "count: %d\n", count)
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	historyConfig := &rpccalls.HistoryData{
		Scope: scope,
		Owner: owner,
		Count: count,
	}

	response, err := client.GetHistory(historyConfig)
	if nil != err {
		return err
	}

	printReply(m, response)

	return nil
}
