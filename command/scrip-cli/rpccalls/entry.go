// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/metadata"
	"github.com/scrip-coop/scripd/rpc/entry"
)

// EntryData - the parameters addressing one ledger entry
type EntryData struct {
	Scope ident.ScopeID
	Owner ident.OwnerID
	Entry uint64
}

// EntryMetadataData - the parameters for a metadata change
type EntryMetadataData struct {
	Scope    ident.ScopeID
	Owner    ident.OwnerID
	Entry    uint64
	Metadata metadata.Map
}

func (e *EntryMetadataData) arguments() entry.MetadataArguments {
	return entry.MetadataArguments{
		Scope:    e.Scope,
		Owner:    e.Owner,
		Entry:    e.Entry,
		Metadata: e.Metadata,
	}
}

// GetEntry - fetch one ledger entry in full
func (client *Client) GetEntry(entryConfig *EntryData) (*entry.GetReply, error) {

	getArgs := entry.GetArguments{
		Scope: entryConfig.Scope,
		Owner: entryConfig.Owner,
		Entry: entryConfig.Entry,
	}

	client.printJson("Entry Request", getArgs)

	reply := &entry.GetReply{}
	err := client.client.Call("Entry.Get", getArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Entry Reply", reply)

	return reply, nil
}

// UpdateEntryMetadata - merge a patch into one entry's metadata
func (client *Client) UpdateEntryMetadata(metadataConfig *EntryMetadataData) (*entry.GetReply, error) {

	updateArgs := metadataConfig.arguments()

	client.printJson("UpdateMetadata Request", updateArgs)

	reply := &entry.GetReply{}
	err := client.client.Call("Entry.UpdateMetadata", updateArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("UpdateMetadata Reply", reply)

	return reply, nil
}

// ReplaceEntryMetadata - replace one entry's metadata in full
func (client *Client) ReplaceEntryMetadata(metadataConfig *EntryMetadataData) (*entry.GetReply, error) {

	replaceArgs := metadataConfig.arguments()

	client.printJson("ReplaceMetadata Request", replaceArgs)

	reply := &entry.GetReply{}
	err := client.client.Call("Entry.ReplaceMetadata", replaceArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("ReplaceMetadata Reply", reply)

	return reply, nil
}

// DeleteEntry - remove one ledger entry outright
func (client *Client) DeleteEntry(entryConfig *EntryData) (*entry.DeleteReply, error) {

	deleteArgs := entry.DeleteArguments{
		Scope: entryConfig.Scope,
		Owner: entryConfig.Owner,
		Entry: entryConfig.Entry,
	}

	client.printJson("Delete Request", deleteArgs)

	reply := &entry.DeleteReply{}
	err := client.client.Call("Entry.Delete", deleteArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Delete Reply", reply)

	return reply, nil
}
