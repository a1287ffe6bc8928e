// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stipend_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/stipend"
	"github.com/scrip-coop/scripd/storage"
)

const (
	testingDirName = "testing"
)

// one open store per scope, shared by the registry and the tracking
// pool accessor the same way the daemon shares them
type testStores struct {
	sync.Mutex
	stores map[ident.ScopeID]*storage.Store
}

func newTestStores() *testStores {
	return &testStores{
		stores: make(map[ident.ScopeID]*storage.Store),
	}
}

func (p *testStores) open(scope ident.ScopeID) (*storage.Store, error) {
	p.Lock()
	defer p.Unlock()

	if s, ok := p.stores[scope]; ok {
		return s, nil
	}
	path := filepath.Join(testingDirName, fmt.Sprintf("scope-%d.leveldb", scope))
	s, err := storage.Open(path, storage.ReadWrite)
	if nil != err {
		return nil, err
	}
	p.stores[scope] = s
	return s, nil
}

func (p *testStores) ledgerStore(scope ident.ScopeID) (ledger.Store, error) {
	return p.open(scope)
}

func (p *testStores) tracking(scope ident.ScopeID) (storage.Handle, error) {
	s, err := p.open(scope)
	if nil != err {
		return nil, err
	}
	return s.Tracking(), nil
}

type testFixture struct {
	stores   *testStores
	registry *ledger.Registry
}

// bring up logging, stores, a registry and the stipend processor
func setupStipend(t *testing.T, policy stipend.Policy) *testFixture {
	os.RemoveAll(testingDirName)
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
	_ = logger.Initialise(logging)

	f := &testFixture{
		stores: newTestStores(),
	}

	registry, err := ledger.NewRegistry(f.stores.ledgerStore)
	if nil != err {
		t.Fatalf("new registry error: %s", err)
	}
	f.registry = registry

	err = stipend.Initialise(policy, registry, f.stores.tracking)
	if nil != err {
		t.Fatalf("stipend initialise error: %s", err)
	}
	return f
}

func teardownStipend(f *testFixture) {
	_ = stipend.Finalise()
	_ = f.registry.Close()
	os.RemoveAll(testingDirName)
}

// stop the processor and the stores, keeping the files for a reopen
func (f *testFixture) restart(t *testing.T, policy stipend.Policy) {
	err := stipend.Finalise()
	if nil != err {
		t.Fatalf("stipend finalise error: %s", err)
	}
	err = f.registry.Close()
	if nil != err {
		t.Fatalf("registry close error: %s", err)
	}

	f.stores = newTestStores()
	registry, err := ledger.NewRegistry(f.stores.ledgerStore)
	if nil != err {
		t.Fatalf("new registry error: %s", err)
	}
	f.registry = registry

	err = stipend.Initialise(policy, registry, f.stores.tracking)
	if nil != err {
		t.Fatalf("stipend initialise error: %s", err)
	}
}
