// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// one LevelDB file holds all of the data for a single scope, with
// pools separated by a one byte prefix on the key
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys)
// 2. digit  <- big endian uint64 value
// 3. +      <- concatenation of byte data
//
// Accounts:
//
//	A<owner>          - balance (big endian int64, never negative)
//
// Logs:
//
//	L<log id>         - packed ledger entry
//	                    (owner + amount + created + metadata JSON)
//
// Index:
//
//	I<owner>+<log id> - <log id> (one owner's entries in creation order)
//
// Control:
//
//	C"next"           - next unassigned log id (high water mark)
//
// Tracking:
//
//	T<owner>          - activity day stamp + count
//	                    (packed by the stipend module)
package storage
