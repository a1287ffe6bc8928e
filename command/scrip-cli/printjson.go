// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// single line form for script consumption
func printJsonRaw(handle io.Writer, message interface{}) error {

	b, err := json.Marshal(message)
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// render a reply honouring the global json flag
func printReply(m *metadata, message interface{}) error {
	if m.raw {
		return printJsonRaw(m.w, message)
	}
	return printJson(m.w, message)
}
