// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/scrip-coop/scripd/util"
)

func TestNewConnection(t *testing.T) {

	testItems := []struct {
		hostPort  string
		canonical string
		v6        bool
		fails     bool
	}{
		{"127.0.0.1:1234", "tcp://127.0.0.1:1234", false, false},
		{"0.0.0.0:2135", "tcp://0.0.0.0:2135", false, false},
		{"[::1]:1234", "tcp://[::1]:1234", true, false},
		{"[2404:6800:4008:c06::66]:443", "tcp://[2404:6800:4008:c06::66]:443", true, false},
		{" 127.0.0.1 : 1234 ", "tcp://127.0.0.1:1234", false, false},
		{"127.0.0.1", "", false, true},        // missing port
		{"localhost:1234", "", false, true},   // not a literal IP
		{"127.0.0.1:0", "", false, true},      // port out of range
		{"127.0.0.1:99999", "", false, true},  // port out of range
		{"127.0.0.1:x", "", false, true},      // port not a number
		{"", "", false, true},
	}

	for i, item := range testItems {
		conn, err := util.NewConnection(item.hostPort)

		if item.fails {
			if nil == err {
				t.Errorf("%d: %q unexpectedly accepted", i, item.hostPort)
			}
			continue
		}

		if nil != err {
			t.Errorf("%d: %q error: %s", i, item.hostPort, err)
			continue
		}

		canonical, v6 := conn.CanonicalIPandPort("tcp://")
		if item.canonical != canonical {
			t.Errorf("%d: canonical mismatch, got: %q  expected: %q", i, canonical, item.canonical)
		}
		if item.v6 != v6 {
			t.Errorf("%d: v6 mismatch, got: %v  expected: %v", i, v6, item.v6)
		}
	}
}

func TestNewConnections(t *testing.T) {

	conns, err := util.NewConnections([]string{"127.0.0.1:1234", "[::]:1234"})
	if nil != err {
		t.Fatalf("unexpected error: %s", err)
	}
	if 2 != len(conns) {
		t.Fatalf("length mismatch, got: %d  expected: %d", len(conns), 2)
	}

	if _, err = util.NewConnections(nil); nil == err {
		t.Error("empty list unexpectedly accepted")
	}

	if _, err = util.NewConnections([]string{"127.0.0.1:1234", "bad"}); nil == err {
		t.Error("bad entry unexpectedly accepted")
	}
}
