// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

const (
	cacheExpiration      = time.Minute
	cacheCleanupInterval = 2 * time.Minute
)

// Cache - in-memory view of recent database operations
//
// pending batch writes are recorded here so that reads issued while a
// transaction is open see the transaction's own effects
type Cache interface {
	Set(dbOperation, string, []byte)
	Get(string) ([]byte, bool)
	Clear()
}

type cacheData struct {
	c *gocache.Cache
}

type cacheEntry struct {
	op    dbOperation
	value []byte
}

func newCache() Cache {
	return &cacheData{
		c: gocache.New(cacheExpiration, cacheCleanupInterval),
	}
}

func (d *cacheData) Set(op dbOperation, key string, value []byte) {
	d.c.Set(key, cacheEntry{op: op, value: value}, gocache.DefaultExpiration)
}

// Get - second return is false when the key has no cached operation
//
// a cached delete reports found with a nil value
func (d *cacheData) Get(key string) ([]byte, bool) {
	data, found := d.c.Get(key)
	if !found {
		return nil, false
	}
	entry := data.(cacheEntry)
	if dbDelete == entry.op {
		return nil, true
	}
	return entry.value, true
}

func (d *cacheData) Clear() {
	d.c.Flush()
}
