// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/scrip-coop/scripd/command/scrip-cli/rpccalls"
	"github.com/scrip-coop/scripd/ident"
)

// the entry commands share the same addressing flags
func entryArguments(c *cli.Context, m *metadata) (ident.ScopeID, ident.OwnerID, uint64, error) {

	scope, err := checkScope(c.GlobalString("scope"), m.config)
	if nil != err {
		return 0, 0, 0, err
	}

	owner, err := checkOwner(c.String("owner"))
	if nil != err {
		return 0, 0, 0, err
	}

	entry, err := checkEntry(c.Uint64("entry"))
	if nil != err {
		return 0, 0, 0, err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "scope: %s\n", scope)
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "entry: %d\n", entry)
	}

	return scope, owner, entry, nil
}

func runEntry(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	scope, owner, entry, err := entryArguments(c, m)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	entryConfig := &rpccalls.EntryData{
		Scope: scope,
		Owner: owner,
		Entry: entry,
	}

	response, err := client.GetEntry(entryConfig)
	if nil != err {
		return err
	}

	printReply(m, response)

	return nil
}

func runEntryUpdate(c *cli.Context) error {
	return runEntryMetadata(c, func(client *rpccalls.Client, metadataConfig *rpccalls.EntryMetadataData) (interface{}, error) {
		return client.UpdateEntryMetadata(metadataConfig)
	})
}

func runEntryReplace(c *cli.Context) error {
	return runEntryMetadata(c, func(client *rpccalls.Client, metadataConfig *rpccalls.EntryMetadataData) (interface{}, error) {
		return client.ReplaceEntryMetadata(metadataConfig)
	})
}

// shared action for the two metadata changing commands
func runEntryMetadata(c *cli.Context, call func(*rpccalls.Client, *rpccalls.EntryMetadataData) (interface{}, error)) error {

	m := c.App.Metadata["config"].(*metadata)

	scope, owner, entry, err := entryArguments(c, m)
	if nil != err {
		return err
	}

	meta, err := checkRequiredMetadata(c.String("metadata"))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	metadataConfig := &rpccalls.EntryMetadataData{
		Scope:    scope,
		Owner:    owner,
		Entry:    entry,
		Metadata: meta,
	}

	response, err := call(client, metadataConfig)
	if nil != err {
		return err
	}

	printReply(m, response)

	return nil
}

func runEntryDelete(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	scope, owner, entry, err := entryArguments(c, m)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.config.Connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	deleteConfig := &rpccalls.EntryData{
		Scope: scope,
		Owner: owner,
		Entry: entry,
	}

	response, err := client.DeleteEntry(deleteConfig)
	if nil != err {
		return err
	}

	printReply(m, response)

	return nil
}
