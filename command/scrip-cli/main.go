// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/scrip-coop/scripd/command/scrip-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	raw     bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "scrip-cli"
	// app.Usage = ""
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.BoolFlag{
			Name:  "json, j",
			Usage: " raw single line JSON output",
		},
		cli.StringFlag{
			Name:  "scope, s",
			Value: "",
			Usage: " community scope `ID` [default from configuration]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "setup",
			Usage:     "initialise scrip-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*scripd host/IP and port, `HOST:PORT`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "balance",
			Usage:     "display the balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ID` of the account",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "deposit",
			Usage:     "add an amount to an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ID` of the account",
				},
				cli.Int64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*amount to add `NUMBER`",
				},
				cli.StringFlag{
					Name:  "reason, r",
					Value: "",
					Usage: " reason to record `STRING`",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: " annotations as a JSON object `META`",
				},
			},
			Action: runDeposit,
		},
		{
			Name:      "withdraw",
			Usage:     "remove an amount from an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ID` of the account",
				},
				cli.Int64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*amount to remove `NUMBER`",
				},
				cli.StringFlag{
					Name:  "reason, r",
					Value: "",
					Usage: " reason to record `STRING`",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: " annotations as a JSON object `META`",
				},
			},
			Action: runWithdraw,
		},
		{
			Name:      "set-balance",
			Usage:     "assign the balance of an account directly",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ID` of the account",
				},
				cli.Int64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*balance to assign `NUMBER`",
				},
				cli.StringFlag{
					Name:  "reason, r",
					Value: "",
					Usage: " reason to record `STRING`",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: " annotations as a JSON object `META`",
				},
			},
			Action: runSetBalance,
		},
		{
			Name:      "transfer",
			Usage:     "move an amount between two accounts",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "from, f",
					Value: "",
					Usage: "*owner `ID` of the paying account",
				},
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*owner `ID` of the receiving account",
				},
				cli.Int64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*amount to move `NUMBER`",
				},
				cli.StringFlag{
					Name:  "reason, r",
					Value: "",
					Usage: " reason to record `STRING`",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: " annotations as a JSON object `META`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "rollback",
			Usage:     "undo a ledger entry with a balancing entry",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ID` of the account",
				},
				cli.Uint64Flag{
					Name:  "entry, e",
					Value: 0,
					Usage: "*entry `NUMBER` to undo",
				},
			},
			Action: runRollback,
		},
		{
			Name:      "history",
			Usage:     "list the most recent entries of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ID` of the account",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runHistory,
		},
		{
			Name:      "variation",
			Usage:     "sum the balance changes inside a time window",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ID` of the account",
				},
				cli.StringFlag{
					Name:  "start, b",
					Value: "",
					Usage: "*window start `TIMESTAMP` (RFC 3339)",
				},
				cli.StringFlag{
					Name:  "end, e",
					Value: "",
					Usage: " window end `TIMESTAMP` (RFC 3339) default now",
				},
			},
			Action: runVariation,
		},
		{
			Name:      "leaderboard",
			Usage:     "list the richest accounts of the scope",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runLeaderboard,
		},
		{
			Name:      "rank",
			Usage:     "display the leaderboard position of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ID` of the account",
				},
			},
			Action: runRank,
		},
		{
			Name:   "stats",
			Usage:  "display aggregate figures for the scope",
			Action: runStats,
		},
		{
			Name:   "accounts",
			Usage:  "list every stored account of the scope",
			Action: runAccounts,
		},
		{
			Name:      "entry",
			Usage:     "display one ledger entry in full",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ID` of the account",
				},
				cli.Uint64Flag{
					Name:  "entry, e",
					Value: 0,
					Usage: "*entry `NUMBER` to fetch",
				},
			},
			Action: runEntry,
		},
		{
			Name:      "entry-update",
			Usage:     "merge a patch into the metadata of an entry",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ID` of the account",
				},
				cli.Uint64Flag{
					Name:  "entry, e",
					Value: 0,
					Usage: "*entry `NUMBER` to change",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: "*annotations as a JSON object `META`",
				},
			},
			Action: runEntryUpdate,
		},
		{
			Name:      "entry-replace",
			Usage:     "replace the metadata of an entry in full",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ID` of the account",
				},
				cli.Uint64Flag{
					Name:  "entry, e",
					Value: 0,
					Usage: "*entry `NUMBER` to change",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: "*annotations as a JSON object `META`",
				},
			},
			Action: runEntryReplace,
		},
		{
			Name:      "entry-delete",
			Usage:     "remove a ledger entry outright",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ID` of the account",
				},
				cli.Uint64Flag{
					Name:  "entry, e",
					Value: 0,
					Usage: "*entry `NUMBER` to remove",
				},
			},
			Action: runEntryDelete,
		},
		{
			Name:   "info",
			Usage:  "display scripd status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display scrip-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command {
			return nil
		}

		p := os.Getenv("XDG_CONFIG_HOME")
		if "" == p {
			return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
		dir, err := checkFileExists(p)
		if nil != err {
			return err
		}
		if !dir {
			return fmt.Errorf("not a directory: %q", p)
		}
		file := path.Join(p, app.Name, app.Name+".json")

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				save:    false,
				raw:     c.GlobalBool("json"),
				verbose: verbose,
				e:       e,
				w:       w,
			}

		} else {

			if verbose {
				fmt.Fprintf(e, "reading config file: %s\n", file)
			}

			configuration, err := configuration.GetConfiguration(file)
			if nil != err {
				return err
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				config:  configuration,
				save:    false,
				raw:     c.GlobalBool("json"),
				verbose: verbose,
				e:       e,
				w:       w,
			}
		}

		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if c.GlobalBool("verbose") {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			err := configuration.Save(m.file, m.config)
			if nil != err {
				return err
			}
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
