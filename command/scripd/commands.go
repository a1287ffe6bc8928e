// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/storage"
	"github.com/scrip-coop/scripd/zmqutil"
)

const (
	activityPublicKeyFilename  = "activity.public"
	activityPrivateKeyFilename = "activity.private"

	publishPublicKeyFilename  = "publish.public"
	publishPrivateKeyFilename = "publish.private"

	rpcCertificateFilename = "rpc.crt"
	rpcPrivateKeyFilename  = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-activity-identity", "activity":
		publicKeyFilename := getFilenameWithDirectory(arguments, activityPublicKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, activityPrivateKeyFilename)

		err := zmqutil.MakeKeyPair(publicKeyFilename, privateKeyFilename)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateKeyFilename, publicKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFilename, publicKeyFilename)

	case "gen-publish-identity", "publish":
		publicKeyFilename := getFilenameWithDirectory(arguments, publishPublicKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, publishPrivateKeyFilename)

		err := zmqutil.MakeKeyPair(publicKeyFilename, privateKeyFilename)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateKeyFilename, publicKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFilename, publicKeyFilename)

	case "start", "run":
		return false // continue processing

	case "accounts", "entries", "stats":
		return false // defer processing until database is accessible

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                         (h)        - display this message\n\n")
		fmt.Printf("  version                      (v)        - display version string\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]           (rpc)      - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                            and the certificate in: %q\n", "DIR/"+rpcCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]             - as above, adding the IPs to the certificate\n")
		fmt.Printf("\n")

		fmt.Printf("  gen-activity-identity [DIR]  (activity) - create private key in: %q\n", "DIR/"+activityPrivateKeyFilename)
		fmt.Printf("                                            and the public key in: %q\n", "DIR/"+activityPublicKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-publish-identity [DIR]   (publish)  - create private key in: %q\n", "DIR/"+publishPrivateKeyFilename)
		fmt.Printf("                                            and the public key in: %q\n", "DIR/"+publishPublicKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                        (run)      - just run the program, same as no arguments\n")
		fmt.Printf("                                            for convenience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                  (cfg)      - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  accounts SCOPE                          - list every account in a scope as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  entries SCOPE OWNER                     - list one owner's ledger entries as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  stats SCOPE                             - print one scope's statistics as JSON\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the scope databases are opened read-only so these commands can
// inspect accounts and ledger entries without changing anything
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "accounts":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing scope argument")
		}
		bank := openScopeReadOnly(log, options, arguments[0])
		result, err := dumpAccounts(bank)
		if nil != err {
			exitwithstatus.Message("accounts dump error: %s", err)
		}
		printJSON(result)

	case "entries":
		if len(arguments) < 2 {
			exitwithstatus.Message("missing scope and owner arguments")
		}
		owner, err := ident.ParseOwnerID(arguments[1])
		if nil != err {
			exitwithstatus.Message("error in owner: %s", err)
		}

		bank := openScopeReadOnly(log, options, arguments[0])
		result, err := dumpEntries(bank, owner)
		if nil != err {
			exitwithstatus.Message("entries dump error: %s", err)
		}
		printJSON(result)

	case "stats":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing scope argument")
		}
		bank := openScopeReadOnly(log, options, arguments[0])
		result, err := bank.Statistics()
		if nil != err {
			exitwithstatus.Message("statistics error: %s", err)
		}
		printJSON(result)

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// open one scope's bank over a read-only store pool
//
// the process exits right after the command so the store is released
// by process termination
func openScopeReadOnly(log *logger.L, options *Configuration, scopeArgument string) *ledger.Bank {
	scope, err := ident.ParseScopeID(scopeArgument)
	if nil != err {
		exitwithstatus.Message("error in scope: %s", err)
	}

	pool := newStorePool(log, options.Database.Directory, storage.ReadOnly)
	registry, err := ledger.NewRegistry(pool.ledgerStore)
	if nil != err {
		exitwithstatus.Message("ledger error: %s", err)
	}

	bank, err := registry.Bank(scope)
	if nil != err {
		exitwithstatus.Message("scope: %s open error: %s", scope, err)
	}
	return bank
}

func printJSON(result interface{}) {
	s, err := json.MarshalIndent(result, "", "  ")
	if nil != err {
		exitwithstatus.Message("JSON marshal error: %s", err)
	}
	fmt.Printf("%s\n", s)
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
