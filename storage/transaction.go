// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - a set of pool operations committed as one batch
//
// reads issued through the transaction observe its own pending writes
type Transaction interface {
	Begin() error
	Put(pool Handle, key []byte, value []byte)
	PutN(pool Handle, key []byte, value uint64)
	Delete(pool Handle, key []byte)
	Get(pool Handle, key []byte) []byte
	GetN(pool Handle, key []byte) (uint64, bool)
	Commit() error
	Abort()
}

type transactionData struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transactionData{access: access}
}

func (t *transactionData) Begin() error {
	return t.access.Begin()
}

func (t *transactionData) Put(pool Handle, key []byte, value []byte) {
	pool.Put(key, value)
}

func (t *transactionData) PutN(pool Handle, key []byte, value uint64) {
	pool.PutN(key, value)
}

func (t *transactionData) Delete(pool Handle, key []byte) {
	pool.Delete(key)
}

func (t *transactionData) Get(pool Handle, key []byte) []byte {
	return pool.Get(key)
}

func (t *transactionData) GetN(pool Handle, key []byte) (uint64, bool) {
	return pool.GetN(key)
}

func (t *transactionData) Commit() error {
	return t.access.Commit()
}

func (t *transactionData) Abort() {
	t.access.Abort()
}
