// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
)

// Registry - owner of every Bank instance
//
// constructed by the application root and passed by handle; lifecycle
// is explicit: construct, use, Close
type Registry struct {
	sync.Mutex
	log    *logger.L
	open   OpenStore
	banks  map[ident.ScopeID]*Bank
	closed bool
}

// NewRegistry - create an empty registry
//
// open is called once per scope to obtain its store
func NewRegistry(open OpenStore) (*Registry, error) {
	if nil == open {
		return nil, fault.MissingParameters
	}
	return &Registry{
		log:   logger.New("registry"),
		open:  open,
		banks: make(map[ident.ScopeID]*Bank),
	}, nil
}

// Bank - the bank for a scope, created on first access
//
// at most one Bank exists per scope for the registry's lifetime
func (r *Registry) Bank(scope ident.ScopeID) (*Bank, error) {
	r.Lock()
	defer r.Unlock()

	if r.closed {
		return nil, fault.NotInitialised
	}

	if b, ok := r.banks[scope]; ok {
		return b, nil
	}

	store, err := r.open(scope)
	if nil != err {
		r.log.Errorf("open store for scope: %d error: %s", scope, err)
		return nil, fault.StoreUnavailable
	}

	b := newBank(scope, store)
	r.banks[scope] = b
	r.log.Infof("opened scope: %d", scope)
	return b, nil
}

// Scopes - every scope with an open bank, ascending
func (r *Registry) Scopes() []ident.ScopeID {
	r.Lock()
	defer r.Unlock()

	scopes := make([]ident.ScopeID, 0, len(r.banks))
	for scope := range r.banks {
		scopes = append(scopes, scope)
	}
	sort.Slice(scopes, func(i, j int) bool { return scopes[i] < scopes[j] })
	return scopes
}

// Close - release every bank and its store
//
// the registry is unusable afterwards
func (r *Registry) Close() error {
	r.Lock()
	defer r.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var firstError error
	for scope, b := range r.banks {
		if err := b.store.Close(); nil != err {
			r.log.Errorf("close scope: %d error: %s", scope, err)
			if nil == firstError {
				firstError = err
			}
		}
	}
	r.banks = nil
	return firstError
}
