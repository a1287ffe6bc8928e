// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"time"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/metadata"
)

// packed entry layout:
//
//	owner    8 bytes big endian
//	amount   8 bytes big endian two's complement
//	created  8 bytes big endian unix nanoseconds
//	metadata JSON, remainder
const packedHeaderSize = 24

// logRecord - the stored form of one ledger entry
type logRecord struct {
	owner   ident.OwnerID
	amount  int64
	created time.Time
	meta    metadata.Map
}

// pack - serialize for the logs pool
//
// the metadata is validated here, before any write happens
func (r logRecord) pack() ([]byte, error) {
	metaJSON, err := r.meta.Pack()
	if nil != err {
		return nil, err
	}

	buffer := make([]byte, packedHeaderSize, packedHeaderSize+len(metaJSON))
	binary.BigEndian.PutUint64(buffer[0:8], uint64(r.owner))
	binary.BigEndian.PutUint64(buffer[8:16], uint64(r.amount))
	binary.BigEndian.PutUint64(buffer[16:24], uint64(r.created.UnixNano()))
	return append(buffer, metaJSON...), nil
}

// unpackLog - deserialize a stored entry
func unpackLog(buffer []byte) (*logRecord, error) {
	if len(buffer) < packedHeaderSize {
		return nil, fault.InvalidRecordLength
	}

	meta, err := metadata.Unpack(buffer[packedHeaderSize:])
	if nil != err {
		return nil, err
	}

	return &logRecord{
		owner:   ident.OwnerID(binary.BigEndian.Uint64(buffer[0:8])),
		amount:  int64(binary.BigEndian.Uint64(buffer[8:16])),
		created: time.Unix(0, int64(binary.BigEndian.Uint64(buffer[16:24]))).UTC(),
		meta:    meta,
	}, nil
}
