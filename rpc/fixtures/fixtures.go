// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// Certificate - PEM content of the checked in test certificate
func Certificate(fixtureDir string) string {
	return readFixture(fixtureDir, "test.crt")
}

// Key - PEM content of the matching test private key
func Key(fixtureDir string) string {
	return readFixture(fixtureDir, "test.key")
}

func readFixture(fixtureDir string, name string) string {
	data, err := ioutil.ReadFile(filepath.Join(fixtureDir, name))
	if nil != err {
		fmt.Println("read fixture with error: ", err)
		return ""
	}
	return string(data)
}
