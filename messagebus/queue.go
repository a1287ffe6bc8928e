// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/scrip-coop/scripd/counter"
)

// Message - structure for data messages
type Message struct {
	Command    string   // type of packet
	Parameters [][]byte // array of parameters
}

// Bus - the list of messagebus queues
//
// the size tag gives the default subscriber queue length
var Bus busses

type busses struct {
	Ledger *broadcaster `size:"1000"` // committed ledger mutations
}

// broadcaster - fan a message out to all subscribers
type broadcaster struct {
	sync.Mutex
	defaultSize int
	out         []chan Message
	sent        counter.Counter
	dropped     counter.Counter
}

func init() {

	// use reflection to initialise the broadcasters
	busType := reflect.TypeOf(Bus)
	busValue := reflect.ValueOf(&Bus).Elem()

	for i := 0; i < busType.NumField(); i += 1 {

		fieldInfo := busType.Field(i)
		sizeTag := fieldInfo.Tag.Get("size")

		queueSize, err := strconv.Atoi(sizeTag)
		if nil != err || queueSize <= 0 {
			m := fmt.Sprintf("queue: %v has invalid size: %q", fieldInfo, sizeTag)
			panic(m)
		}

		b := &broadcaster{
			defaultSize: queueSize,
		}
		busValue.Field(i).Set(reflect.ValueOf(b))
	}
}

// Send - fan a message out to every subscriber
//
// never blocks: a subscriber whose queue is full misses the message
func (b *broadcaster) Send(command string, parameters ...[]byte) {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}

	b.Lock()
	defer b.Unlock()

	b.sent.Increment()
	for _, out := range b.out {
		select {
		case out <- m:
		default:
			b.dropped.Increment()
		}
	}
}

// Chan - subscribe to the broadcaster
//
// size of zero or less selects the default queue length
func (b *broadcaster) Chan(size int) <-chan Message {
	b.Lock()
	defer b.Unlock()

	if size <= 0 {
		size = b.defaultSize
	}
	out := make(chan Message, size)
	b.out = append(b.out, out)
	return out
}

// Statistics - messages accepted and per-subscriber drops
func (b *broadcaster) Statistics() (sent uint64, dropped uint64) {
	return b.sent.Uint64(), b.dropped.Uint64()
}
