// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command line client for scripd
//
// speaks JSON RPC over TLS to a running daemon to query and
// administer the per community ledgers
package main
