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

func runVariation(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	scope, err := checkScope(c.GlobalString("scope"), m.config)
	if nil != err {
		return err
	}

	owner, err := checkOwner(c.String("owner"))
	if nil != err {
		return err
	}

	start, err := checkTimestamp(c.String("start"))
	if nil != err {
		return err
	}

	end, err := checkOptionalTimestamp(c.String("end"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "scope: %s\n", scope)
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "start: %s\n", start)
		fmt.Fprintf(m.e, "end: %s\n", end)
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	variationConfig := &rpccalls.VariationData{
		Scope: scope,
		Owner: owner,
		Start: start,
		End:   end,
	}

	response, err := client.GetVariation(variationConfig)
	if nil != err {
		return err
	}

	printReply(m, response)

	return nil
}
