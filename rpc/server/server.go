// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/counter"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/mode"
	"github.com/scrip-coop/scripd/rpc/account"
	"github.com/scrip-coop/scripd/rpc/bank"
	"github.com/scrip-coop/scripd/rpc/entry"
	"github.com/scrip-coop/scripd/rpc/node"
)

// Create - an RPC server with every scripd service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, registry *ledger.Registry) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(account.New(log, mode.Is, registry))
	_ = server.Register(bank.New(log, registry))
	_ = server.Register(entry.New(log, mode.Is, registry))
	_ = server.Register(node.New(log, registry, start, version, rpcCount))

	return server
}
