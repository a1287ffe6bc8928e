// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/binary"
	"encoding/json"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/messagebus"
	"github.com/scrip-coop/scripd/util"
	"github.com/scrip-coop/scripd/zmqutil"
)

const (
	publisherZapDomain = "publisher"
)

type publisher struct {
	log     *logger.L
	socket4 *zmq.Socket
	socket6 *zmq.Socket
}

// Event - one committed ledger mutation as broadcast to subscribers
//
// the first frame is the event name ("entry", "update" or "remove")
// so subscribers can filter, the second is this structure as JSON
type Event struct {
	Scope  ident.ScopeID `json:"scope"`
	Owner  ident.OwnerID `json:"owner"`
	Entry  uint64        `json:"entry"`
	Amount int64         `json:"amount"`
	Reason string        `json:"reason"`
}

// initialise the publisher
func (pub *publisher) initialise(privateKey []byte, publicKey []byte, broadcast []string) error {

	log := logger.New("publisher")
	pub.log = log

	log.Info("initialising…")

	c, err := util.NewConnections(broadcast)
	if nil != err {
		log.Errorf("ip and port error: %s", err)
		return err
	}

	// allocate IPv4 and IPv6 sockets
	pub.socket4, pub.socket6, err = zmqutil.NewBind(log, zmq.PUB, publisherZapDomain, privateKey, publicKey, c)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	return nil
}

// Run - relay ledger events from the message bus to the subscribers
func (pub *publisher) Run(args interface{}, shutdown <-chan struct{}) {

	log := pub.log

	log.Info("starting…")

	queue := messagebus.Bus.Ledger.Chan(0)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item := <-queue:
			event, err := decodeEvent(&item)
			if nil != err {
				log.Errorf("discard %q: %s", item.Command, err)
				continue loop
			}
			data, err := json.Marshal(event)
			if nil != err {
				log.Errorf("encode %q: %s", item.Command, err)
				continue loop
			}
			log.Debugf("publishing: %s  data: %s", item.Command, data)
			pub.process(pub.socket4, item.Command, data)
			pub.process(pub.socket6, item.Command, data)
		}
	}
	if nil != pub.socket4 {
		pub.socket4.Close()
	}
	if nil != pub.socket6 {
		pub.socket6.Close()
	}
	log.Info("stopped")
}

// send one event; a slow subscriber misses it
func (pub *publisher) process(socket *zmq.Socket, command string, data []byte) {
	if nil == socket {
		return
	}

	_, err := socket.Send(command, zmq.SNDMORE|zmq.DONTWAIT)
	logger.PanicIfError("publisher", err)
	_, err = socket.SendBytes(data, 0|zmq.DONTWAIT)
	logger.PanicIfError("publisher", err)
}

// unpack a ledger bus message
//
// parameters are: scope, owner, entry id, amount, reason
func decodeEvent(item *messagebus.Message) (*Event, error) {
	if 5 != len(item.Parameters) {
		return nil, fault.MissingParameters
	}
	for i := 0; i < 4; i += 1 {
		if 8 != len(item.Parameters[i]) {
			return nil, fault.InvalidRecordLength
		}
	}
	event := &Event{
		Scope:  ident.ScopeID(binary.BigEndian.Uint64(item.Parameters[0])),
		Owner:  ident.OwnerID(binary.BigEndian.Uint64(item.Parameters[1])),
		Entry:  binary.BigEndian.Uint64(item.Parameters[2]),
		Amount: int64(binary.BigEndian.Uint64(item.Parameters[3])),
		Reason: string(item.Parameters[4]),
	}
	return event, nil
}
