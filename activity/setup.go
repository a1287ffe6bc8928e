// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package activity - ZeroMQ intake for activity events
//
// presentation layers push one message per observed activity event;
// the listener counts it through the stipend processor and answers
// whether a stipend was credited
package activity

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/background"
	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/zmqutil"
)

// Configuration - a block of configuration data
// this is read from the configuration file
type Configuration struct {
	Listen     []string `gluamapper:"listen" json:"listen"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// globals for background process
type activityData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	lstn listener // intake socket handler

	publicKey []byte

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData activityData

// Initialise - start the activity intake background process
func Initialise(configuration *Configuration) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("activity")
	globalData.log.Info("starting…")

	// read the keys
	privateKey, err := zmqutil.ReadPrivateKey(configuration.PrivateKey)
	if nil != err {
		globalData.log.Errorf("read private key error: %s", err)
		return err
	}
	publicKey, err := zmqutil.ReadPublicKey(configuration.PublicKey)
	if nil != err {
		globalData.log.Errorf("read public key error: %s", err)
		return err
	}
	globalData.publicKey = publicKey

	if err := globalData.lstn.initialise(privateKey, publicKey, configuration.Listen); nil != err {
		return err
	}

	// all data initialised
	globalData.initialised = true

	// start background processes
	globalData.log.Info("start background…")

	processes := background.Processes{
		&globalData.lstn,
	}

	globalData.background = background.Start(processes, globalData.log)

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// stop background
	globalData.background.Stop()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
