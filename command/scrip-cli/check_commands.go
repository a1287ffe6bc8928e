// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/scrip-coop/scripd/command/scrip-cli/configuration"
	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	metadatapkg "github.com/scrip-coop/scripd/metadata"
)

var (
	ErrRequiredConnect  = fault.InvalidError("connect is required")
	ErrRequiredEntry    = fault.InvalidError("entry is required")
	ErrRequiredMetadata = fault.InvalidError("metadata is required")
	ErrRequiredOwner    = fault.InvalidError("owner is required")
	ErrRequiredScope    = fault.InvalidError("scope is required")
	ErrRequiredStart    = fault.InvalidError("start time is required")
)

// connect is required
func checkConnect(connect string) (string, error) {
	if "" == connect {
		return "", ErrRequiredConnect
	}

	return connect, nil
}

// scope comes from the global flag or the configuration default
func checkScope(scope string, config *configuration.Configuration) (ident.ScopeID, error) {
	if "" == scope {
		if nil != config && 0 != config.Scope {
			return config.Scope, nil
		}
		return 0, ErrRequiredScope
	}

	return ident.ParseScopeID(scope)
}

// owner is required
func checkOwner(owner string) (ident.OwnerID, error) {
	if "" == owner {
		return 0, ErrRequiredOwner
	}

	return ident.ParseOwnerID(owner)
}

// entry numbers start at one so zero means the flag was missing
func checkEntry(entry uint64) (uint64, error) {
	if 0 == entry {
		return 0, ErrRequiredEntry
	}

	return entry, nil
}

// metadata is optional, but when present must be a JSON object
func checkMetadata(meta string) (metadatapkg.Map, error) {
	if "" == meta {
		return nil, nil
	}

	m := metadatapkg.Map{}
	if err := json.Unmarshal([]byte(meta), &m); nil != err {
		return nil, err
	}
	return m, nil
}

// metadata is required for the metadata changing commands
func checkRequiredMetadata(meta string) (metadatapkg.Map, error) {
	if "" == meta {
		return nil, ErrRequiredMetadata
	}

	return checkMetadata(meta)
}

// start of a window is required, RFC 3339
func checkTimestamp(ts string) (time.Time, error) {
	if "" == ts {
		return time.Time{}, ErrRequiredStart
	}

	return time.Parse(time.RFC3339, ts)
}

// end of a window defaults to now
func checkOptionalTimestamp(ts string) (time.Time, error) {
	if "" == ts {
		return time.Now().UTC(), nil
	}

	return time.Parse(time.RFC3339, ts)
}

// checkFileExists - whether the path exists, and whether it is a directory
func checkFileExists(name string) (bool, error) {
	s, err := os.Stat(name)
	if nil != err {
		return false, err
	}

	return s.IsDir(), nil
}
