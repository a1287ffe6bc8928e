// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/storage"
)

// storePool - one leveldb database per scope, opened on first use
//
// the ledger registry and the stipend tracking accessor share the
// same store for a scope; the pool owns the open handles and is the
// single place they are closed
type storePool struct {
	sync.Mutex
	log       *logger.L
	directory string
	readOnly  bool
	stores    map[ident.ScopeID]*storage.Store
}

func newStorePool(log *logger.L, directory string, readOnly bool) *storePool {
	return &storePool{
		log:       log,
		directory: directory,
		readOnly:  readOnly,
		stores:    make(map[ident.ScopeID]*storage.Store),
	}
}

// location of one scope's database
func (p *storePool) path(scope ident.ScopeID) string {
	return filepath.Join(p.directory, fmt.Sprintf("scope_%d.leveldb", scope))
}

// open or reuse the store for a scope
func (p *storePool) store(scope ident.ScopeID) (*storage.Store, error) {
	p.Lock()
	defer p.Unlock()

	if s, ok := p.stores[scope]; ok {
		return s, nil
	}

	path := p.path(scope)
	s, err := storage.Open(path, p.readOnly)
	if nil != err {
		p.log.Errorf("open scope: %d database: %q error: %s", scope, path, err)
		return nil, err
	}
	p.log.Infof("opened scope: %d database: %q", scope, path)
	p.stores[scope] = s
	return s, nil
}

// ledgerStore - the open function handed to the ledger registry
func (p *storePool) ledgerStore(scope ident.ScopeID) (ledger.Store, error) {
	s, err := p.store(scope)
	if nil != err {
		return nil, err
	}
	return s, nil
}

// trackingStore - the open function handed to the stipend processor
func (p *storePool) trackingStore(scope ident.ScopeID) (storage.Handle, error) {
	s, err := p.store(scope)
	if nil != err {
		return nil, err
	}
	return s.Tracking(), nil
}

// Close - close every open store
func (p *storePool) Close() {
	p.Lock()
	defer p.Unlock()

	for scope, s := range p.stores {
		if err := s.Close(); nil != err {
			p.log.Errorf("close scope: %d error: %s", scope, err)
		}
	}
	p.stores = make(map[ident.ScopeID]*storage.Store)
}
