// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package activity

import (
	"encoding/binary"
	"encoding/json"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/mode"
	"github.com/scrip-coop/scripd/stipend"
	"github.com/scrip-coop/scripd/util"
	"github.com/scrip-coop/scripd/version"
	"github.com/scrip-coop/scripd/zmqutil"
)

const (
	listenerZapDomain = "activity"
	listenerSignal    = "inproc://scripd-activity-signal"
)

type listener struct {
	log     *logger.L
	push    *zmq.Socket // signal send
	pull    *zmq.Socket // signal receive
	socket4 *zmq.Socket // IPv4 traffic
	socket6 *zmq.Socket // IPv6 traffic
}

// type to hold server info
type serverInfo struct {
	Version string `json:"version"`
	Normal  bool   `json:"normal"`
	Events  uint64 `json:"events"`
	Credits uint64 `json:"credits"`
}

// initialise the listener
func (lstn *listener) initialise(privateKey []byte, publicKey []byte, listen []string) error {

	log := logger.New("activity-listener")
	lstn.log = log

	log.Info("initialising…")

	c, err := util.NewConnections(listen)
	if nil != err {
		log.Errorf("ip and port error: %s", err)
		return err
	}

	// signalling channel
	lstn.push, lstn.pull, err = zmqutil.NewSignalPair(listenerSignal)
	if nil != err {
		return err
	}

	// allocate IPv4 and IPv6 sockets
	lstn.socket4, lstn.socket6, err = zmqutil.NewBind(log, zmq.REP, listenerZapDomain, privateKey, publicKey, c)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	return nil
}

// Run - wait for incoming requests, process them and reply
func (lstn *listener) Run(args interface{}, shutdown <-chan struct{}) {

	log := lstn.log

	log.Info("starting…")

	go func() {
		poller := zmqutil.NewPoller()
		if nil != lstn.socket4 {
			poller.Add(lstn.socket4, zmq.POLLIN)
		}
		if nil != lstn.socket6 {
			poller.Add(lstn.socket6, zmq.POLLIN)
		}
		poller.Add(lstn.pull, zmq.POLLIN)
	loop:
		for {
			sockets, _ := poller.Poll(-1)
			for _, socket := range sockets {
				switch s := socket.Socket; s {
				case lstn.socket4:
					lstn.process(lstn.socket4)
				case lstn.socket6:
					lstn.process(lstn.socket6)
				case lstn.pull:
					s.RecvMessageBytes(0)
					break loop
				}
			}
		}
		log.Info("shutting down")
		lstn.pull.Close()
		if nil != lstn.socket4 {
			lstn.socket4.Close()
		}
		if nil != lstn.socket6 {
			lstn.socket6.Close()
		}
		log.Info("stopped")
	}()

	// wait for shutdown
	log.Info("waiting…")
	<-shutdown
	log.Info("initiate shutdown")
	lstn.push.SendMessage("stop")
	lstn.push.Close()
}

// process one request and return response to client
func (lstn *listener) process(socket *zmq.Socket) {

	log := lstn.log

	data, err := socket.RecvMessageBytes(0)
	if nil != err {
		log.Errorf("receive error: %s", err)
		return
	}

	if len(data) < 1 {
		return
	}

	fn := string(data[0])
	parameters := data[1:]

	log.Debugf("received message: %q: %x", fn, data)

	result := []byte{}

	switch fn {

	case "M": // record one activity event
		if mode.IsNot(mode.Normal) {
			err = fault.NotAvailableInCurrentMode
			break
		}
		scope, owner, e := decodeAccount(parameters)
		if nil != e {
			err = e
			break
		}
		entry, e := stipend.Record(scope, owner)
		if nil != e {
			err = e
			break
		}
		if nil != entry {
			result = make([]byte, 8)
			binary.BigEndian.PutUint64(result, entry.ID())
		}

	case "I": // server information
		events, credits := stipend.Statistics()
		info := serverInfo{
			Version: version.Version,
			Normal:  mode.Is(mode.Normal),
			Events:  events,
			Credits: credits,
		}
		result, err = json.Marshal(info)

	default:
		err = fault.MissingParameters
	}

	if nil != err {
		listenerSendError(socket, err)
		return
	}

	// send results
	_, err = socket.Send(fn, zmq.SNDMORE)
	logger.PanicIfError("activity listener", err)
	_, err = socket.SendBytes(result, 0)
	logger.PanicIfError("activity listener", err)

	log.Debugf("sent: %q  result: %x", fn, result)
}

// scope and owner from the wire: two 8 byte big endian values
func decodeAccount(parameters [][]byte) (ident.ScopeID, ident.OwnerID, error) {
	if 2 != len(parameters) {
		return 0, 0, fault.MissingParameters
	}
	if 8 != len(parameters[0]) {
		return 0, 0, fault.InvalidScopeIdentifier
	}
	if 8 != len(parameters[1]) {
		return 0, 0, fault.InvalidOwnerIdentifier
	}
	scope := ident.ScopeID(binary.BigEndian.Uint64(parameters[0]))
	owner := ident.OwnerID(binary.BigEndian.Uint64(parameters[1]))
	return scope, owner, nil
}

// send an error packet
func listenerSendError(socket *zmq.Socket, err error) {
	_, e := socket.Send("E", zmq.SNDMORE)
	logger.PanicIfError("activity listener", e)
	_, e = socket.Send(err.Error(), 0)
	logger.PanicIfError("activity listener", e)
}
