// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"fmt"
	"math/rand"
	"net"
	"net/rpc"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/counter"
	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/rpc/account"
	"github.com/scrip-coop/scripd/rpc/bank"
	"github.com/scrip-coop/scripd/rpc/entry"
	"github.com/scrip-coop/scripd/rpc/fixtures"
	"github.com/scrip-coop/scripd/rpc/node"
	"github.com/scrip-coop/scripd/rpc/server"
	"github.com/scrip-coop/scripd/storage"
)

var port string

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry, err := ledger.NewRegistry(func(scope ident.ScopeID) (ledger.Store, error) {
		path := filepath.Join("testing", fmt.Sprintf("scope-%d.leveldb", scope))
		return storage.Open(path, storage.ReadWrite)
	})
	if nil != err {
		os.Exit(1)
	}

	port = fmt.Sprintf(":%d", rand.Intn(30000)+30000) // 30,000 - 60,000
	c := counter.Counter(0)
	r := server.Create(logger.New(fixtures.LogCategory), "1.0", &c, registry)
	l, _ := net.Listen("tcp", port)

	go r.Accept(l)
	r.HandleHTTP("/", "/debug")

	rc := m.Run()

	os.Exit(rc)
}

// following tests make sure proper methods are registered to server
// every test case result comes from a specific method, this makes sure
// the proper method is registered

func TestAccountBalance(t *testing.T) {
	conn, _ := net.Dial("tcp", port)
	defer conn.Close()

	client := rpc.NewClient(conn)
	defer client.Close()

	arg := account.BalanceArguments{
		Scope: 1,
		Owner: 2,
	}
	var reply account.BalanceReply
	err := client.Call("Account.Balance", &arg, &reply)
	assert.Nil(t, err, "wrong Account.Balance")
	assert.Equal(t, int64(0), reply.Balance, "wrong balance")
}

func TestAccountDeposit(t *testing.T) {
	conn, _ := net.Dial("tcp", port)
	defer conn.Close()

	client := rpc.NewClient(conn)
	defer client.Close()

	// mode is never initialised here, so mutations are refused
	arg := account.TransactionArguments{
		Scope:  1,
		Owner:  2,
		Amount: 10,
	}
	var reply account.TransactionReply
	err := client.Call("Account.Deposit", &arg, &reply)
	assert.NotNil(t, err, "wrong Account.Deposit")
	assert.Equal(t, fault.NotAvailableInCurrentMode.Error(), err.Error(), "wrong reply")
}

func TestAccountTransfer(t *testing.T) {
	conn, _ := net.Dial("tcp", port)
	defer conn.Close()

	client := rpc.NewClient(conn)
	defer client.Close()

	arg := account.TransferArguments{
		Scope:  1,
		From:   2,
		To:     3,
		Amount: 10,
	}
	var reply account.TransferReply
	err := client.Call("Account.Transfer", &arg, &reply)
	assert.NotNil(t, err, "wrong Account.Transfer")
	assert.Equal(t, fault.NotAvailableInCurrentMode.Error(), err.Error(), "wrong reply")
}

func TestAccountHistory(t *testing.T) {
	conn, _ := net.Dial("tcp", port)
	defer conn.Close()

	client := rpc.NewClient(conn)
	defer client.Close()

	arg := account.HistoryArguments{
		Scope: 1,
		Owner: 2,
		Count: 0,
	}
	var reply account.HistoryReply
	err := client.Call("Account.History", &arg, &reply)
	assert.NotNil(t, err, "wrong Account.History")
	assert.Equal(t, fault.InvalidCount.Error(), err.Error(), "wrong reply")
}

func TestBankLeaderboard(t *testing.T) {
	conn, _ := net.Dial("tcp", port)
	defer conn.Close()

	client := rpc.NewClient(conn)
	defer client.Close()

	arg := bank.LeaderboardArguments{
		Scope: 1,
		Count: 0,
	}
	var reply bank.LeaderboardReply
	err := client.Call("Bank.Leaderboard", &arg, &reply)
	assert.NotNil(t, err, "wrong Bank.Leaderboard")
	assert.Equal(t, fault.InvalidCount.Error(), err.Error(), "wrong reply")
}

func TestBankStatistics(t *testing.T) {
	conn, _ := net.Dial("tcp", port)
	defer conn.Close()

	client := rpc.NewClient(conn)
	defer client.Close()

	arg := bank.StatisticsArguments{
		Scope: 1,
	}
	var reply bank.StatisticsReply
	err := client.Call("Bank.Statistics", &arg, &reply)
	assert.Nil(t, err, "wrong Bank.Statistics")
	assert.Equal(t, int64(0), reply.TotalBalance, "wrong total balance")
}

func TestEntryGet(t *testing.T) {
	conn, _ := net.Dial("tcp", port)
	defer conn.Close()

	client := rpc.NewClient(conn)
	defer client.Close()

	arg := entry.GetArguments{
		Scope: 1,
		Owner: 2,
		Entry: 999,
	}
	var reply entry.GetReply
	err := client.Call("Entry.Get", &arg, &reply)
	assert.NotNil(t, err, "wrong Entry.Get")
	assert.Equal(t, fault.LogNotFound.Error(), err.Error(), "wrong reply")
}

func TestEntryDelete(t *testing.T) {
	conn, _ := net.Dial("tcp", port)
	defer conn.Close()

	client := rpc.NewClient(conn)
	defer client.Close()

	arg := entry.DeleteArguments{
		Scope: 1,
		Owner: 2,
		Entry: 999,
	}
	var reply entry.DeleteReply
	err := client.Call("Entry.Delete", &arg, &reply)
	assert.NotNil(t, err, "wrong Entry.Delete")
	assert.Equal(t, fault.NotAvailableInCurrentMode.Error(), err.Error(), "wrong reply")
}

func TestNodeInfo(t *testing.T) {
	conn, _ := net.Dial("tcp", port)
	defer conn.Close()

	client := rpc.NewClient(conn)
	defer client.Close()

	arg := node.InfoArguments{}
	var reply node.InfoReply
	err := client.Call("Node.Info", &arg, &reply)
	assert.Nil(t, err, "wrong Node.Info")
	assert.Equal(t, "Stopped", reply.Mode, "wrong mode")
	assert.Equal(t, "1.0", reply.Version, "wrong version")
	assert.NotEmpty(t, reply.Uptime, "wrong uptime")
}
