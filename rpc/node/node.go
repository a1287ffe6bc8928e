// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/counter"
	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/mode"
	"github.com/scrip-coop/scripd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Ledger  *ledger.Registry
	counter *counter.Counter
}

// New - create the node service
func New(log *logger.L, registry *ledger.Registry, start time.Time, version string, connections *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Ledger:  registry,
		counter: connections,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Mode    string `json:"mode"`
	Scopes  int    `json:"scopes"`
	RPCs    uint64 `json:"rpcs"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Info - return some information about this daemon
// only enough for clients to determine daemon state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Ledger {
		return fault.StoreUnavailable
	}

	reply.Mode = mode.String()
	reply.Scopes = len(node.Ledger.Scopes())
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
