// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stipend

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/counter"
	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/storage"
)

// Policy - tunable daily stipend values
//
// this is read from the configuration file and can be replaced at
// run time by a configuration reload
type Policy struct {
	Amount           int64  `gluamapper:"amount" json:"amount"`
	MessageThreshold uint64 `gluamapper:"message_threshold" json:"message_threshold"`
	WealthLimit      int64  `gluamapper:"wealth_limit" json:"wealth_limit"`
	Reason           string `gluamapper:"reason" json:"reason"`
}

// DefaultReason - reason recorded on stipend deposits when the
// configuration does not supply one
const DefaultReason = "daily stipend"

// Ledger - the slice of the ledger needed to credit stipends
type Ledger interface {
	Bank(scope ident.ScopeID) (*ledger.Bank, error)
}

// TrackingStore - obtain the activity tracking pool for a scope
type TrackingStore func(scope ident.ScopeID) (storage.Handle, error)

// globals for the stipend processor
type stipendData struct {
	sync.Mutex // serialises Record so one owner cannot be counted twice

	log *logger.L

	ledger   Ledger
	tracking TrackingStore
	policy   Policy

	events  counter.Counter // activity events recorded
	credits counter.Counter // stipends credited

	// set once during initialise
	initialised bool
}

// global data
var globalData stipendData

// Initialise - set up the stipend processor
func Initialise(policy Policy, l Ledger, tracking TrackingStore) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	if nil == l || nil == tracking {
		return fault.MissingParameters
	}

	globalData.log = logger.New("stipend")
	globalData.log.Info("starting…")

	globalData.ledger = l
	globalData.tracking = tracking
	globalData.policy = normalise(policy)

	globalData.log.Infof("policy: %+v", globalData.policy)

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all stipend processing
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.ledger = nil
	globalData.tracking = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// SetPolicy - replace the tunable values
//
// called by the configuration reload watcher; takes effect for the
// next activity event
func SetPolicy(policy Policy) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.policy = normalise(policy)
	globalData.log.Infof("policy: %+v", globalData.policy)
	return nil
}

// CurrentPolicy - the values currently applied
func CurrentPolicy() Policy {
	globalData.Lock()
	defer globalData.Unlock()
	return globalData.policy
}

// Statistics - events recorded and stipends credited
func Statistics() (events uint64, credits uint64) {
	return globalData.events.Uint64(), globalData.credits.Uint64()
}

// fill in usable values
//
// an amount of zero stays zero: that disables the stipend entirely
func normalise(policy Policy) Policy {
	if policy.Amount < 0 {
		policy.Amount = 0
	}
	if policy.MessageThreshold < 1 {
		policy.MessageThreshold = 1
	}
	if policy.WealthLimit < 0 {
		policy.WealthLimit = 0
	}
	if "" == policy.Reason {
		policy.Reason = DefaultReason
	}
	return policy
}
