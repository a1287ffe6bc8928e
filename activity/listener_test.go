// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package activity

import (
	"encoding/binary"
	"testing"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
)

func packUint64(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}

func TestDecodeAccount(t *testing.T) {

	scope, owner, err := decodeAccount([][]byte{packUint64(7), packUint64(99)})
	if nil != err {
		t.Fatalf("unexpected error: %s", err)
	}
	if ident.ScopeID(7) != scope {
		t.Errorf("scope mismatch, got: %d  expected: %d", scope, 7)
	}
	if ident.OwnerID(99) != owner {
		t.Errorf("owner mismatch, got: %d  expected: %d", owner, 99)
	}

	testItems := []struct {
		parameters [][]byte
		err        error
	}{
		{nil, fault.MissingParameters},
		{[][]byte{packUint64(7)}, fault.MissingParameters},
		{[][]byte{packUint64(7), packUint64(8), packUint64(9)}, fault.MissingParameters},
		{[][]byte{{0x01}, packUint64(8)}, fault.InvalidScopeIdentifier},
		{[][]byte{packUint64(7), {0x01, 0x02}}, fault.InvalidOwnerIdentifier},
	}

	for i, item := range testItems {
		_, _, err := decodeAccount(item.parameters)
		if item.err != err {
			t.Errorf("%d: error mismatch, got: %v  expected: %v", i, err, item.err)
		}
	}
}
