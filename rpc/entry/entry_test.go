// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entry_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/metadata"
	"github.com/scrip-coop/scripd/mode"
	"github.com/scrip-coop/scripd/rpc/entry"
	"github.com/scrip-coop/scripd/rpc/fixtures"
	"github.com/scrip-coop/scripd/storage"
)

const (
	testingDirName = "testing"

	testScope = ident.ScopeID(3)
	testOwner = ident.OwnerID(42)
)

func testRegistry(t *testing.T) *ledger.Registry {
	registry, err := ledger.NewRegistry(func(scope ident.ScopeID) (ledger.Store, error) {
		path := filepath.Join(testingDirName, fmt.Sprintf("scope-%d.leveldb", scope))
		return storage.Open(path, storage.ReadWrite)
	})
	if nil != err {
		t.Fatalf("new registry error: %s", err)
	}
	return registry
}

func testService(registry *ledger.Registry) *entry.Entry {
	return entry.New(
		logger.New(fixtures.LogCategory),
		func(_ mode.Mode) bool { return true },
		registry,
	)
}

// create one entry and return its id
func record(t *testing.T, registry *ledger.Registry) uint64 {
	bank, err := registry.Bank(testScope)
	if nil != err {
		t.Fatalf("bank error: %s", err)
	}
	account, err := bank.Account(testOwner)
	if nil != err {
		t.Fatalf("account error: %s", err)
	}
	l, err := account.Deposit(100, "harvest help", metadata.Map{"project": "garden"})
	if nil != err {
		t.Fatalf("deposit error: %s", err)
	}
	return l.ID()
}

func TestEntryGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	id := record(t, registry)
	e := testService(registry)

	arg := entry.GetArguments{
		Scope: testScope,
		Owner: testOwner,
		Entry: id,
	}

	var reply entry.GetReply
	err := e.Get(&arg, &reply)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, id, reply.Entry, "wrong entry id")
	assert.Equal(t, int64(100), reply.Amount, "wrong amount")
	assert.Equal(t, "harvest help", reply.Reason, "wrong reason")
	assert.False(t, reply.Rollback, "wrong rollback flag")
	assert.Equal(t, "garden", reply.Metadata["project"], "wrong metadata")
	assert.False(t, reply.CreatedAt.IsZero(), "wrong created at")
}

func TestEntryGetWhenNotFound(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	record(t, registry)
	e := testService(registry)

	arg := entry.GetArguments{
		Scope: testScope,
		Owner: testOwner,
		Entry: 999,
	}

	var reply entry.GetReply
	err := e.Get(&arg, &reply)
	assert.Equal(t, fault.LogNotFound, err, "wrong Get error")
}

func TestEntryUpdateMetadata(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	id := record(t, registry)
	e := testService(registry)

	arg := entry.MetadataArguments{
		Scope:    testScope,
		Owner:    testOwner,
		Entry:    id,
		Metadata: metadata.Map{"verified": true},
	}

	var reply entry.GetReply
	err := e.UpdateMetadata(&arg, &reply)
	assert.Nil(t, err, "wrong UpdateMetadata")

	// merge keeps the untouched keys
	assert.Equal(t, "garden", reply.Metadata["project"], "wrong kept metadata")
	assert.Equal(t, true, reply.Metadata["verified"], "wrong merged metadata")
	assert.Equal(t, "harvest help", reply.Reason, "wrong reason")
}

func TestEntryUpdateMetadataWhenNotSerializable(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	id := record(t, registry)
	e := testService(registry)

	arg := entry.MetadataArguments{
		Scope:    testScope,
		Owner:    testOwner,
		Entry:    id,
		Metadata: metadata.Map{"bad": make(chan int)},
	}

	var reply entry.GetReply
	err := e.UpdateMetadata(&arg, &reply)
	assert.Equal(t, fault.MetadataNotSerializable, err, "wrong UpdateMetadata error")
}

func TestEntryReplaceMetadata(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	id := record(t, registry)
	e := testService(registry)

	arg := entry.MetadataArguments{
		Scope:    testScope,
		Owner:    testOwner,
		Entry:    id,
		Metadata: metadata.Map{"note": "corrected"},
	}

	var reply entry.GetReply
	err := e.ReplaceMetadata(&arg, &reply)
	assert.Nil(t, err, "wrong ReplaceMetadata")

	// the old bag is gone entirely
	assert.Equal(t, "corrected", reply.Metadata["note"], "wrong metadata")
	assert.NotContains(t, reply.Metadata, "project", "wrong replaced metadata")
	assert.Equal(t, "N/A", reply.Reason, "wrong reason")
}

func TestEntryDelete(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	id := record(t, registry)
	e := testService(registry)

	arg := entry.DeleteArguments{
		Scope: testScope,
		Owner: testOwner,
		Entry: id,
	}

	var reply entry.DeleteReply
	err := e.Delete(&arg, &reply)
	assert.Nil(t, err, "wrong Delete")
	assert.Equal(t, id, reply.Entry, "wrong entry id")
	assert.True(t, reply.Deleted, "wrong deleted flag")

	getArg := entry.GetArguments{
		Scope: testScope,
		Owner: testOwner,
		Entry: id,
	}
	var getReply entry.GetReply
	err = e.Get(&getArg, &getReply)
	assert.Equal(t, fault.LogNotFound, err, "wrong Get error after delete")
}

func TestEntryMutationsWhenNotNormal(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	id := record(t, registry)

	e := entry.New(
		logger.New(fixtures.LogCategory),
		func(_ mode.Mode) bool { return false },
		registry,
	)

	metadataArg := entry.MetadataArguments{
		Scope:    testScope,
		Owner:    testOwner,
		Entry:    id,
		Metadata: metadata.Map{"verified": true},
	}
	var getReply entry.GetReply

	err := e.UpdateMetadata(&metadataArg, &getReply)
	assert.Equal(t, fault.NotAvailableInCurrentMode, err, "wrong UpdateMetadata error")

	err = e.ReplaceMetadata(&metadataArg, &getReply)
	assert.Equal(t, fault.NotAvailableInCurrentMode, err, "wrong ReplaceMetadata error")

	deleteArg := entry.DeleteArguments{
		Scope: testScope,
		Owner: testOwner,
		Entry: id,
	}
	var deleteReply entry.DeleteReply
	err = e.Delete(&deleteArg, &deleteReply)
	assert.Equal(t, fault.NotAvailableInCurrentMode, err, "wrong Delete error")
}
