// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metadata - the mutable annotation bag attached to ledger entries
//
// only a closed set of JSON compatible values is accepted: strings,
// numbers, booleans, null, and nested sequences/mappings of the same.
// validation happens before anything is persisted so a bad bag can
// never leave a partial record behind.
package metadata

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/scrip-coop/scripd/fault"
)

// well known keys
const (
	ReasonKey   = "reason"
	RollbackKey = "rollback"
)

// DefaultReason - returned when no reason was recorded
const DefaultReason = "N/A"

// Map - string keyed annotation values
type Map map[string]interface{}

// Validate - check every value is inside the allowed closed set
func (m Map) Validate() error {
	for _, v := range m {
		if !validValue(v) {
			return fault.MetadataNotSerializable
		}
	}
	return nil
}

func validValue(v interface{}) bool {
	switch value := v.(type) {
	case nil, bool, string:
		return true
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return !math.IsNaN(float64(value)) && !math.IsInf(float64(value), 0)
	case float64:
		return !math.IsNaN(value) && !math.IsInf(value, 0)
	case []interface{}:
		for _, item := range value {
			if !validValue(item) {
				return false
			}
		}
		return true
	case map[string]interface{}:
		return Map(value).Validate() == nil
	case Map:
		return value.Validate() == nil
	default:
		return false
	}
}

// Pack - validate and encode for storage
func (m Map) Pack() ([]byte, error) {
	if err := m.Validate(); nil != err {
		return nil, err
	}
	if nil == m {
		m = Map{}
	}
	buffer, err := json.Marshal(m)
	if nil != err {
		return nil, fault.MetadataNotSerializable
	}
	return buffer, nil
}

// Unpack - decode a stored bag
func Unpack(buffer []byte) (Map, error) {
	if 0 == len(buffer) {
		return Map{}, nil
	}
	m := Map{}
	if err := json.Unmarshal(buffer, &m); nil != err {
		return nil, fault.MetadataNotSerializable
	}
	return m, nil
}

// Clone - deep copy so callers cannot alias stored state
func (m Map) Clone() Map {
	if nil == m {
		return Map{}
	}
	copied := make(Map, len(m))
	for k, v := range m {
		copied[k] = cloneValue(v)
	}
	return copied
}

func cloneValue(v interface{}) interface{} {
	switch value := v.(type) {
	case []interface{}:
		items := make([]interface{}, len(value))
		for i, item := range value {
			items[i] = cloneValue(item)
		}
		return items
	case map[string]interface{}:
		return map[string]interface{}(Map(value).Clone())
	case Map:
		return value.Clone()
	default:
		return v
	}
}

// Merge - overlay patch onto m, existing keys overwritten
func (m Map) Merge(patch Map) {
	for k, v := range patch {
		m[k] = cloneValue(v)
	}
}

// Reason - the recorded reason or the "N/A" default
func (m Map) Reason() string {
	v, ok := m[ReasonKey]
	if !ok {
		return DefaultReason
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// IsRollback - true when the entry was flagged by a rollback
func (m Map) IsRollback() bool {
	flagged, ok := m[RollbackKey].(bool)
	return ok && flagged
}
