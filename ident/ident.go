// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ident - identifier value types for scopes and owners
//
// both are opaque 64 bit values assigned by the chat platform; they
// are carried as decimal strings on the wire since several client
// languages cannot hold a full 64 bit integer in a JSON number
package ident

import (
	"fmt"
	"strconv"

	"github.com/scrip-coop/scripd/fault"
)

// ScopeID - one isolated ledger namespace (a community)
type ScopeID uint64

// OwnerID - one member inside a scope
type OwnerID uint64

// AccountID - the fully qualified identity of an account
type AccountID struct {
	Scope ScopeID `json:"scope"`
	Owner OwnerID `json:"owner"`
}

// String - decimal representation
func (s ScopeID) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// MarshalText - satisfy the text marshaller interface
func (s ScopeID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - satisfy the text unmarshaller interface
func (s *ScopeID) UnmarshalText(text []byte) error {
	value, err := strconv.ParseUint(string(text), 10, 64)
	if nil != err {
		return fault.InvalidScopeIdentifier
	}
	*s = ScopeID(value)
	return nil
}

// String - decimal representation
func (o OwnerID) String() string {
	return strconv.FormatUint(uint64(o), 10)
}

// MarshalText - satisfy the text marshaller interface
func (o OwnerID) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText - satisfy the text unmarshaller interface
func (o *OwnerID) UnmarshalText(text []byte) error {
	value, err := strconv.ParseUint(string(text), 10, 64)
	if nil != err {
		return fault.InvalidOwnerIdentifier
	}
	*o = OwnerID(value)
	return nil
}

// ParseScopeID - decode a decimal scope identifier
func ParseScopeID(s string) (ScopeID, error) {
	var scope ScopeID
	if err := scope.UnmarshalText([]byte(s)); nil != err {
		return 0, err
	}
	return scope, nil
}

// ParseOwnerID - decode a decimal owner identifier
func ParseOwnerID(s string) (OwnerID, error) {
	var owner OwnerID
	if err := owner.UnmarshalText([]byte(s)); nil != err {
		return 0, err
	}
	return owner, nil
}

// String - "scope/owner" for logs and messages
func (a AccountID) String() string {
	return fmt.Sprintf("%s/%s", a.Scope, a.Owner)
}
