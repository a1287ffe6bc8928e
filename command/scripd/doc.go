// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Scoped community-currency ledger daemon
//
// This program keeps one balance ledger per community scope, credits
// activity stipends, broadcasts committed mutations, and serves the
// JSON RPC query and administration services over TLS.
package main
