// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/storage"
)

// Store - the slice of the storage layer the ledger consumes
//
// *storage.Store satisfies this; tests substitute mocks
type Store interface {
	Accounts() storage.Handle
	Logs() storage.Handle
	Index() storage.Handle
	Control() storage.Handle
	NewTransaction() (storage.Transaction, error)
	Close() error
}

// OpenStore - obtain the store for a scope
//
// called at most once per scope by the registry
type OpenStore func(scope ident.ScopeID) (Store, error)

// control pool keys
var nextLogIDKey = []byte("next")

// accounts pool key: owner id
func ownerKey(owner ident.OwnerID) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, uint64(owner))
	return buffer
}

// logs pool key: log id
func logKey(id uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, id)
	return buffer
}

// index pool key: owner id + log id, so one owner's entries are
// contiguous and ordered by creation
func indexKey(owner ident.OwnerID, id uint64) []byte {
	buffer := make([]byte, 16)
	binary.BigEndian.PutUint64(buffer[:8], uint64(owner))
	binary.BigEndian.PutUint64(buffer[8:], id)
	return buffer
}
