// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/storage"
)

const (
	testingDirName = "testing"
)

// configure logging for testing
func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	removeFiles()
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

// open one leveldb store per scope under the testing directory
func openTestStore(scope ident.ScopeID) (ledger.Store, error) {
	path := filepath.Join(testingDirName, fmt.Sprintf("scope-%d.leveldb", scope))
	return storage.Open(path, storage.ReadWrite)
}

// a registry backed by real temp stores
func setupTestRegistry(t *testing.T) *ledger.Registry {
	setupTestLogger()

	registry, err := ledger.NewRegistry(openTestStore)
	if nil != err {
		t.Fatalf("new registry error: %s", err)
	}
	return registry
}

func teardownTestRegistry(registry *ledger.Registry) {
	_ = registry.Close()
	teardownTestLogger()
}

// a second registry over the same stores, for reopen tests; the
// caller must have closed the first one
func setupReopenedRegistry() (*ledger.Registry, error) {
	return ledger.NewRegistry(openTestStore)
}

// a bank for one scope, failing the test on error
func testBank(t *testing.T, registry *ledger.Registry, scope ident.ScopeID) *ledger.Bank {
	bank, err := registry.Bank(scope)
	if nil != err {
		t.Fatalf("bank for scope: %d error: %s", scope, err)
	}
	return bank
}

// an account, failing the test on error
func testAccount(t *testing.T, bank *ledger.Bank, owner ident.OwnerID) *ledger.Account {
	account, err := bank.Account(owner)
	if nil != err {
		t.Fatalf("account for owner: %d error: %s", owner, err)
	}
	return account
}
