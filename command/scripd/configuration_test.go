// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

const (
	testConfigurationDirectory = "testConfiguration"
)

const configurationText = `-- scripd.conf
local M = {}

M.data_directory = "."

M.database = {
    directory = "database"
}

M.client_rpc = {
    maximum_connections = 50,
    bandwidth = 25000000,
    listen = {
        "127.0.0.1:2130"
    }
}

M.https_rpc = {
    maximum_connections = 25,
    listen = {
        "127.0.0.1:2131"
    },
    allow = {
        details = {
            "127.0.0.0/8"
        },
        scopes = {
            "127.0.0.0/8"
        }
    }
}

M.activity = {
    listen = {
        "0.0.0.0:2135"
    },
    public_key = "781d78a9eb338a511ae88a9be5383095ede46445596506e29ad8f022a3f8596e",
    private_key = "d0c3884c18e7bd11b586699417d8a4f51583e94dc636d92fef1bacc94a12d800"
}

M.publishing = {
    broadcast = {
        "0.0.0.0:2136"
    },
    public_key = "a5088e61c832d37572b24b50274eb29c7112b5e03cdb1b2fbf1032e7f6cca1aa",
    private_key = "aed285b7b2b52b12528d4a832e94b400d9d13dd90007459be5fa23a35a8bfe12"
}

M.stipend = {
    amount = 25,
    message_threshold = 4,
    wealth_limit = 500,
    reason = "community stipend"
}

M.logging = {
    size = 2 * 1048576,
    count = 20,
    console = false,
    levels = {
        DEFAULT = "critical"
    }
}

return M
`

func setupConfigurationFile(t *testing.T) string {
	os.RemoveAll(testConfigurationDirectory)
	if err := os.Mkdir(testConfigurationDirectory, 0700); nil != err {
		t.Fatalf("create directory error: %v", err)
	}
	fileName := filepath.Join(testConfigurationDirectory, "scripd.conf")
	if err := ioutil.WriteFile(fileName, []byte(configurationText), 0600); nil != err {
		t.Fatalf("write configuration error: %v", err)
	}
	return fileName
}

func TestGetConfiguration(t *testing.T) {
	fileName := setupConfigurationFile(t)
	defer os.RemoveAll(testConfigurationDirectory)

	options, err := getConfiguration(fileName)
	if nil != err {
		t.Fatalf("configuration error: %v", err)
	}

	dataDirectory, _ := filepath.Abs(testConfigurationDirectory)
	if filepath.Clean(options.DataDirectory) != dataDirectory {
		t.Errorf("data directory: %q  expected: %q", options.DataDirectory, dataDirectory)
	}

	if expected := filepath.Join(dataDirectory, "database"); expected != options.Database.Directory {
		t.Errorf("database directory: %q  expected: %q", options.Database.Directory, expected)
	}

	if 50 != options.ClientRPC.MaximumConnections {
		t.Errorf("client rpc connections: %d  expected: %d", options.ClientRPC.MaximumConnections, 50)
	}
	if 25000000 != options.ClientRPC.Bandwidth {
		t.Errorf("client rpc bandwidth: %f  expected: %d", options.ClientRPC.Bandwidth, 25000000)
	}
	if 1 != len(options.ClientRPC.Listen) || "127.0.0.1:2130" != options.ClientRPC.Listen[0] {
		t.Errorf("client rpc listen: %v", options.ClientRPC.Listen)
	}

	// unset items keep their defaults, made absolute to the data directory
	if expected := filepath.Join(dataDirectory, defaultCertificateFile); expected != options.ClientRPC.Certificate {
		t.Errorf("client rpc certificate: %q  expected: %q", options.ClientRPC.Certificate, expected)
	}
	if expected := filepath.Join(dataDirectory, defaultCertificateFile); expected != options.HttpsRPC.Certificate {
		t.Errorf("https rpc certificate: %q  expected: %q", options.HttpsRPC.Certificate, expected)
	}
	if expected := filepath.Join(dataDirectory, defaultKeyFile); expected != options.ClientRPC.PrivateKey {
		t.Errorf("client rpc key: %q  expected: %q", options.ClientRPC.PrivateKey, expected)
	}

	if 2 != len(options.HttpsRPC.Allow) {
		t.Errorf("https rpc allow: %v", options.HttpsRPC.Allow)
	}

	if 1 != len(options.Activity.Listen) || "0.0.0.0:2135" != options.Activity.Listen[0] {
		t.Errorf("activity listen: %v", options.Activity.Listen)
	}
	if 1 != len(options.Publishing.Broadcast) || "0.0.0.0:2136" != options.Publishing.Broadcast[0] {
		t.Errorf("publishing broadcast: %v", options.Publishing.Broadcast)
	}

	if 25 != options.Stipend.Amount {
		t.Errorf("stipend amount: %d  expected: %d", options.Stipend.Amount, 25)
	}
	if 4 != options.Stipend.MessageThreshold {
		t.Errorf("stipend threshold: %d  expected: %d", options.Stipend.MessageThreshold, 4)
	}
	if 500 != options.Stipend.WealthLimit {
		t.Errorf("stipend wealth limit: %d  expected: %d", options.Stipend.WealthLimit, 500)
	}
	if "community stipend" != options.Stipend.Reason {
		t.Errorf("stipend reason: %q", options.Stipend.Reason)
	}

	if 2*1048576 != options.Logging.Size {
		t.Errorf("logging size: %d  expected: %d", options.Logging.Size, 2*1048576)
	}
	if 20 != options.Logging.Count {
		t.Errorf("logging count: %d  expected: %d", options.Logging.Count, 20)
	}
	if defaultLogFile != options.Logging.File {
		t.Errorf("logging file: %q  expected: %q", options.Logging.File, defaultLogFile)
	}
	if expected := filepath.Join(dataDirectory, defaultLogDirectory); expected != options.Logging.Directory {
		t.Errorf("logging directory: %q  expected: %q", options.Logging.Directory, expected)
	}

	// directory items must have been created
	for _, directory := range []string{options.Database.Directory, options.Logging.Directory} {
		info, err := os.Stat(directory)
		if nil != err || !info.IsDir() {
			t.Errorf("directory: %q was not created", directory)
		}
	}
}

func TestGetConfigurationMissingFile(t *testing.T) {
	os.RemoveAll(testConfigurationDirectory)

	_, err := getConfiguration(filepath.Join(testConfigurationDirectory, "scripd.conf"))
	if nil == err {
		t.Fatal("missing configuration file did not return an error")
	}
}

func TestGetConfigurationRejectsBlankDataDirectory(t *testing.T) {
	os.RemoveAll(testConfigurationDirectory)
	defer os.RemoveAll(testConfigurationDirectory)

	if err := os.Mkdir(testConfigurationDirectory, 0700); nil != err {
		t.Fatalf("create directory error: %v", err)
	}
	fileName := filepath.Join(testConfigurationDirectory, "scripd.conf")
	text := "local M = {}\nM.data_directory = \"\"\nreturn M\n"
	if err := ioutil.WriteFile(fileName, []byte(text), 0600); nil != err {
		t.Fatalf("write configuration error: %v", err)
	}

	_, err := getConfiguration(fileName)
	if nil == err {
		t.Fatal("blank data directory did not return an error")
	}
}

func TestGetConfigurationRejectsLoggingFilePath(t *testing.T) {
	os.RemoveAll(testConfigurationDirectory)
	defer os.RemoveAll(testConfigurationDirectory)

	if err := os.Mkdir(testConfigurationDirectory, 0700); nil != err {
		t.Fatalf("create directory error: %v", err)
	}
	fileName := filepath.Join(testConfigurationDirectory, "scripd.conf")
	text := "local M = {}\nM.data_directory = \".\"\nM.logging = { file = \"sub/dir.log\" }\nreturn M\n"
	if err := ioutil.WriteFile(fileName, []byte(text), 0600); nil != err {
		t.Fatalf("write configuration error: %v", err)
	}

	_, err := getConfiguration(fileName)
	if nil == err {
		t.Fatal("log file with directory part did not return an error")
	}
}
