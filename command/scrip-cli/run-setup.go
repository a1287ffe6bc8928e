// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/scrip-coop/scripd/command/scrip-cli/configuration"
	"github.com/scrip-coop/scripd/ident"
)

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	connect, err := checkConnect(c.String("connect"))
	if nil != err {
		return err
	}

	// a default scope is optional at setup time
	scope := ident.ScopeID(0)
	if s := c.GlobalString("scope"); "" != s {
		scope, err = ident.ParseScopeID(s)
		if nil != err {
			return err
		}
	}

	if m.verbose {
		fmt.Fprintf(m.e, "config: %s\n", m.file)
		fmt.Fprintf(m.e, "connect: %s\n", connect)
		fmt.Fprintf(m.e, "scope: %s\n", scope)
	}

	// Create the folder hierarchy for configuration if not existing
	configDir := path.Dir(m.file)
	d, err := checkFileExists(configDir)
	if err != nil {
		if err := os.MkdirAll(configDir, 0o750); err != nil {
			return err
		}
	} else if !d {
		return fmt.Errorf("path: %q is not a directory", configDir)
	}

	m.config = &configuration.Configuration{
		Connect: connect,
		Scope:   scope,
	}
	m.save = true

	return nil
}
