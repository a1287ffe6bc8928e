// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entry

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/metadata"
	"github.com/scrip-coop/scripd/mode"
	"github.com/scrip-coop/scripd/rpc/ratelimit"
)

// Entry
// -----

const (
	rateLimitEntry = 200
	rateBurstEntry = 100
)

// Entry - type for the RPC
type Entry struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	Ledger       *ledger.Registry
}

// New - create the entry service
func New(log *logger.L, isNormalMode func(mode.Mode) bool, registry *ledger.Registry) *Entry {
	return &Entry{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitEntry, rateBurstEntry),
		IsNormalMode: isNormalMode,
		Ledger:       registry,
	}
}

// fetch the addressed entry from its owner's account
func (e *Entry) fetch(scope ident.ScopeID, owner ident.OwnerID, id uint64) (*ledger.Log, error) {
	bank, err := e.Ledger.Bank(scope)
	if nil != err {
		return nil, err
	}
	account, err := bank.Account(owner)
	if nil != err {
		return nil, err
	}
	return account.FetchLog(id)
}

// Entry fetch
// -----------

// GetArguments - arguments for RPC
type GetArguments struct {
	Scope ident.ScopeID `json:"scope"`
	Owner ident.OwnerID `json:"owner"`
	Entry uint64        `json:"entry"`
}

// GetReply - one ledger entry in full
type GetReply struct {
	Scope     ident.ScopeID `json:"scope"`
	Owner     ident.OwnerID `json:"owner"`
	Entry     uint64        `json:"entry"`
	Amount    int64         `json:"amount"`
	CreatedAt time.Time     `json:"createdAt"`
	Reason    string        `json:"reason"`
	Rollback  bool          `json:"rollback,omitempty"`
	Metadata  metadata.Map  `json:"metadata"`
}

func (reply *GetReply) set(scope ident.ScopeID, owner ident.OwnerID, entry *ledger.Log) {
	reply.Scope = scope
	reply.Owner = owner
	reply.Entry = entry.ID()
	reply.Amount = entry.Amount()
	reply.CreatedAt = entry.CreatedAt()
	reply.Reason = entry.Reason()
	reply.Rollback = entry.IsRollback()
	reply.Metadata = entry.Metadata()
}

// Get - fetch one entry by id
func (e *Entry) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}

	log := e.Log
	log.Infof("Entry.Get: %+v", arguments)

	entry, err := e.fetch(arguments.Scope, arguments.Owner, arguments.Entry)
	if nil != err {
		return err
	}

	reply.set(arguments.Scope, arguments.Owner, entry)
	return nil
}

// Entry metadata
// --------------

// MetadataArguments - arguments for the metadata RPCs
type MetadataArguments struct {
	Scope    ident.ScopeID `json:"scope"`
	Owner    ident.OwnerID `json:"owner"`
	Entry    uint64        `json:"entry"`
	Metadata metadata.Map  `json:"metadata"`
}

// UpdateMetadata - merge a patch into the entry's metadata
//
// existing keys not named by the patch are kept
func (e *Entry) UpdateMetadata(arguments *MetadataArguments, reply *GetReply) error {

	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}

	log := e.Log
	log.Infof("Entry.UpdateMetadata: %+v", arguments)

	if !e.IsNormalMode(mode.Normal) {
		return fault.NotAvailableInCurrentMode
	}

	entry, err := e.fetch(arguments.Scope, arguments.Owner, arguments.Entry)
	if nil != err {
		return err
	}

	if err := entry.UpdateMetadata(arguments.Metadata); nil != err {
		return err
	}

	reply.set(arguments.Scope, arguments.Owner, entry)
	return nil
}

// ReplaceMetadata - replace the entry's metadata in full
func (e *Entry) ReplaceMetadata(arguments *MetadataArguments, reply *GetReply) error {

	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}

	log := e.Log
	log.Infof("Entry.ReplaceMetadata: %+v", arguments)

	if !e.IsNormalMode(mode.Normal) {
		return fault.NotAvailableInCurrentMode
	}

	entry, err := e.fetch(arguments.Scope, arguments.Owner, arguments.Entry)
	if nil != err {
		return err
	}

	if err := entry.ReplaceMetadata(arguments.Metadata); nil != err {
		return err
	}

	reply.set(arguments.Scope, arguments.Owner, entry)
	return nil
}

// Entry removal
// -------------

// DeleteArguments - arguments for RPC
type DeleteArguments struct {
	Scope ident.ScopeID `json:"scope"`
	Owner ident.OwnerID `json:"owner"`
	Entry uint64        `json:"entry"`
}

// DeleteReply - result of delete RPC
type DeleteReply struct {
	Entry   uint64 `json:"entry"`
	Deleted bool   `json:"deleted"`
}

// Delete - remove one entry outright
//
// administrative: the balance is untouched, only the record goes away
func (e *Entry) Delete(arguments *DeleteArguments, reply *DeleteReply) error {

	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}

	log := e.Log
	log.Infof("Entry.Delete: %+v", arguments)

	if !e.IsNormalMode(mode.Normal) {
		return fault.NotAvailableInCurrentMode
	}

	entry, err := e.fetch(arguments.Scope, arguments.Owner, arguments.Entry)
	if nil != err {
		return err
	}

	if err := entry.Delete(); nil != err {
		return err
	}

	reply.Entry = arguments.Entry
	reply.Deleted = true
	return nil
}
