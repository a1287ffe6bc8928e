// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - the transports carrying the JSON RPC services:
// a TLS TCP listener and an HTTPS bridge
package listeners

// Listener - a serving transport
type Listener interface {
	Serve() error
}

const minConnectionCount = 1
