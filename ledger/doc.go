// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the scoped community currency ledger
//
// a Registry owns one Bank per scope; a Bank owns the scope's accounts
// and its store; an Account owns a balance and the materialised
// sequence of Log entries that produced it
//
// every balance mutation flows through a single choke point that
// validates the non-negative invariant, creates the entry and commits
// the new balance together with the entry in one storage batch; a
// failed commit leaves no trace in memory or on disk
//
// mutations and consistent reads of one account are serialised by the
// account's own lock; separate accounts and separate banks proceed in
// parallel; transfers take both account locks in ascending owner order
package ledger
