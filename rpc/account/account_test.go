// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/metadata"
	"github.com/scrip-coop/scripd/mode"
	"github.com/scrip-coop/scripd/rpc/account"
	"github.com/scrip-coop/scripd/rpc/fixtures"
	"github.com/scrip-coop/scripd/storage"
)

const (
	testingDirName = "testing"

	testScope = ident.ScopeID(9)
	testOwner = ident.OwnerID(1234)
	peerOwner = ident.OwnerID(5678)
)

// a registry over real stores under the fixtures directory; the
// fixtures teardown removes the store files
func testRegistry(t *testing.T) *ledger.Registry {
	registry, err := ledger.NewRegistry(func(scope ident.ScopeID) (ledger.Store, error) {
		path := filepath.Join(testingDirName, fmt.Sprintf("scope-%d.leveldb", scope))
		return storage.Open(path, storage.ReadWrite)
	})
	if nil != err {
		t.Fatalf("new registry error: %s", err)
	}
	return registry
}

func testService(registry *ledger.Registry) *account.Account {
	return account.New(
		logger.New(fixtures.LogCategory),
		func(_ mode.Mode) bool { return true },
		registry,
	)
}

func deposit(t *testing.T, a *account.Account, owner ident.OwnerID, amount int64, reason string) account.TransactionReply {
	arg := account.TransactionArguments{
		Scope:  testScope,
		Owner:  owner,
		Amount: amount,
		Reason: reason,
	}
	var reply account.TransactionReply
	err := a.Deposit(&arg, &reply)
	if nil != err {
		t.Fatalf("deposit error: %s", err)
	}
	return reply
}

func TestAccountBalance(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)
	deposit(t, a, testOwner, 100, "initial credit")

	arg := account.BalanceArguments{
		Scope: testScope,
		Owner: testOwner,
	}

	var reply account.BalanceReply
	err := a.Balance(&arg, &reply)
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, testScope, reply.Scope, "wrong scope")
	assert.Equal(t, testOwner, reply.Owner, "wrong owner")
	assert.Equal(t, int64(100), reply.Balance, "wrong balance")
}

func TestAccountBalanceWhenNeverUsed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)

	arg := account.BalanceArguments{
		Scope: testScope,
		Owner: testOwner,
	}

	var reply account.BalanceReply
	err := a.Balance(&arg, &reply)
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, int64(0), reply.Balance, "wrong balance")
}

func TestAccountDeposit(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)

	arg := account.TransactionArguments{
		Scope:    testScope,
		Owner:    testOwner,
		Amount:   100,
		Reason:   "harvest help",
		Metadata: metadata.Map{"project": "garden"},
	}

	var reply account.TransactionReply
	err := a.Deposit(&arg, &reply)
	assert.Nil(t, err, "wrong Deposit")
	assert.Equal(t, uint64(1), reply.Entry, "wrong entry id")
	assert.Equal(t, int64(100), reply.Amount, "wrong amount")
	assert.Equal(t, int64(100), reply.Balance, "wrong balance")
	assert.False(t, reply.CreatedAt.IsZero(), "wrong created at")
}

func TestAccountDepositWhenNegativeResult(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)
	deposit(t, a, testOwner, 100, "initial credit")

	arg := account.TransactionArguments{
		Scope:  testScope,
		Owner:  testOwner,
		Amount: -150,
		Reason: "correction",
	}

	var reply account.TransactionReply
	err := a.Deposit(&arg, &reply)
	assert.Equal(t, fault.NegativeBalance, err, "wrong Deposit error")
}

func TestAccountWithdraw(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)
	deposit(t, a, testOwner, 100, "initial credit")

	arg := account.TransactionArguments{
		Scope:  testScope,
		Owner:  testOwner,
		Amount: 30,
		Reason: "tool hire",
	}

	var reply account.TransactionReply
	err := a.Withdraw(&arg, &reply)
	assert.Nil(t, err, "wrong Withdraw")
	assert.Equal(t, uint64(2), reply.Entry, "wrong entry id")
	assert.Equal(t, int64(-30), reply.Amount, "wrong amount")
	assert.Equal(t, int64(70), reply.Balance, "wrong balance")
}

func TestAccountWithdrawWhenInsufficient(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)
	deposit(t, a, testOwner, 20, "initial credit")

	arg := account.TransactionArguments{
		Scope:  testScope,
		Owner:  testOwner,
		Amount: 30,
	}

	var reply account.TransactionReply
	err := a.Withdraw(&arg, &reply)
	assert.Equal(t, fault.InsufficientBalance, err, "wrong Withdraw error")
}

func TestAccountSetBalance(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)
	deposit(t, a, testOwner, 100, "initial credit")

	arg := account.TransactionArguments{
		Scope:  testScope,
		Owner:  testOwner,
		Amount: 40,
		Reason: "audit adjustment",
	}

	var reply account.TransactionReply
	err := a.SetBalance(&arg, &reply)
	assert.Nil(t, err, "wrong SetBalance")
	assert.Equal(t, int64(-60), reply.Amount, "wrong amount")
	assert.Equal(t, int64(40), reply.Balance, "wrong balance")
}

func TestAccountTransfer(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)
	deposit(t, a, testOwner, 100, "initial credit")

	arg := account.TransferArguments{
		Scope:  testScope,
		From:   testOwner,
		To:     peerOwner,
		Amount: 25,
		Reason: "seed swap",
	}

	var reply account.TransferReply
	err := a.Transfer(&arg, &reply)
	assert.Nil(t, err, "wrong Transfer")
	assert.Equal(t, uint64(2), reply.WithdrawalEntry, "wrong withdrawal entry")
	assert.Equal(t, uint64(3), reply.DepositEntry, "wrong deposit entry")
	assert.Equal(t, int64(75), reply.FromBalance, "wrong from balance")
	assert.Equal(t, int64(25), reply.ToBalance, "wrong to balance")
}

func TestAccountTransferWhenInsufficient(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)
	deposit(t, a, testOwner, 10, "initial credit")

	arg := account.TransferArguments{
		Scope:  testScope,
		From:   testOwner,
		To:     peerOwner,
		Amount: 25,
	}

	var reply account.TransferReply
	err := a.Transfer(&arg, &reply)
	assert.Equal(t, fault.InsufficientBalance, err, "wrong Transfer error")
}

func TestAccountRollback(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)
	deposit(t, a, testOwner, 100, "initial credit")
	entry := deposit(t, a, testOwner, 30, "harvest help")

	arg := account.RollbackArguments{
		Scope: testScope,
		Owner: testOwner,
		Entry: entry.Entry,
	}

	var reply account.TransactionReply
	err := a.Rollback(&arg, &reply)
	assert.Nil(t, err, "wrong Rollback")
	assert.Equal(t, int64(-30), reply.Amount, "wrong amount")
	assert.Equal(t, int64(100), reply.Balance, "wrong balance")
}

func TestAccountRollbackWhenUnknownEntry(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)
	deposit(t, a, testOwner, 100, "initial credit")

	arg := account.RollbackArguments{
		Scope: testScope,
		Owner: testOwner,
		Entry: 999,
	}

	var reply account.TransactionReply
	err := a.Rollback(&arg, &reply)
	assert.Equal(t, fault.LogNotFound, err, "wrong Rollback error")
}

func TestAccountHistory(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)
	deposit(t, a, testOwner, 100, "initial credit")
	deposit(t, a, testOwner, 30, "harvest help")
	deposit(t, a, testOwner, 5, "market day")

	arg := account.HistoryArguments{
		Scope: testScope,
		Owner: testOwner,
		Count: 2,
	}

	var reply account.HistoryReply
	err := a.History(&arg, &reply)
	assert.Nil(t, err, "wrong History")
	assert.Equal(t, 2, len(reply.Entries), "wrong entry count")
	assert.Equal(t, uint64(3), reply.Entries[0].Entry, "wrong first entry")
	assert.Equal(t, int64(5), reply.Entries[0].Amount, "wrong first amount")
	assert.Equal(t, "market day", reply.Entries[0].Reason, "wrong first reason")
	assert.Equal(t, uint64(2), reply.Entries[1].Entry, "wrong second entry")
	assert.False(t, reply.Entries[0].Rollback, "wrong rollback flag")
}

func TestAccountHistoryWhenInvalidCount(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)

	arg := account.HistoryArguments{
		Scope: testScope,
		Owner: testOwner,
		Count: 0,
	}

	var reply account.HistoryReply
	err := a.History(&arg, &reply)
	assert.Equal(t, fault.InvalidCount, err, "wrong History error")

	arg.Count = 500
	err = a.History(&arg, &reply)
	assert.Equal(t, fault.InvalidCount, err, "wrong History error")
}

func TestAccountVariation(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)

	start := time.Now().UTC().Add(-time.Minute)
	deposit(t, a, testOwner, 100, "initial credit")

	withdrawArg := account.TransactionArguments{
		Scope:  testScope,
		Owner:  testOwner,
		Amount: 30,
	}
	var withdrawReply account.TransactionReply
	err := a.Withdraw(&withdrawArg, &withdrawReply)
	assert.Nil(t, err, "wrong Withdraw")

	arg := account.VariationArguments{
		Scope: testScope,
		Owner: testOwner,
		Start: start,
		End:   time.Now().UTC().Add(time.Minute),
	}

	var reply account.VariationReply
	err = a.Variation(&arg, &reply)
	assert.Nil(t, err, "wrong Variation")
	assert.Equal(t, int64(70), reply.Variation, "wrong variation")

	// a window before any entry
	arg.End = start
	err = a.Variation(&arg, &reply)
	assert.Nil(t, err, "wrong Variation")
	assert.Equal(t, int64(0), reply.Variation, "wrong empty variation")
}

func TestAccountVariationWhenInvalidInterval(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := testService(registry)
	deposit(t, a, testOwner, 100, "initial credit")

	arg := account.VariationArguments{
		Scope: testScope,
		Owner: testOwner,
		Start: time.Now().UTC(),
		End:   time.Now().UTC().Add(-time.Hour),
	}

	var reply account.VariationReply
	err := a.Variation(&arg, &reply)
	assert.Equal(t, fault.InvalidTimeInterval, err, "wrong Variation error")
}

func TestAccountMutationsWhenNotNormal(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry := testRegistry(t)
	defer registry.Close()

	a := account.New(
		logger.New(fixtures.LogCategory),
		func(_ mode.Mode) bool { return false },
		registry,
	)

	trxArg := account.TransactionArguments{
		Scope:  testScope,
		Owner:  testOwner,
		Amount: 10,
	}
	var trxReply account.TransactionReply

	err := a.Deposit(&trxArg, &trxReply)
	assert.Equal(t, fault.NotAvailableInCurrentMode, err, "wrong Deposit error")

	err = a.Withdraw(&trxArg, &trxReply)
	assert.Equal(t, fault.NotAvailableInCurrentMode, err, "wrong Withdraw error")

	err = a.SetBalance(&trxArg, &trxReply)
	assert.Equal(t, fault.NotAvailableInCurrentMode, err, "wrong SetBalance error")

	transferArg := account.TransferArguments{
		Scope:  testScope,
		From:   testOwner,
		To:     peerOwner,
		Amount: 10,
	}
	var transferReply account.TransferReply
	err = a.Transfer(&transferArg, &transferReply)
	assert.Equal(t, fault.NotAvailableInCurrentMode, err, "wrong Transfer error")

	rollbackArg := account.RollbackArguments{
		Scope: testScope,
		Owner: testOwner,
		Entry: 1,
	}
	err = a.Rollback(&rollbackArg, &trxReply)
	assert.Equal(t, fault.NotAvailableInCurrentMode, err, "wrong Rollback error")
}

func TestAccountWhenStoreUnavailable(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	registry, err := ledger.NewRegistry(func(_ ident.ScopeID) (ledger.Store, error) {
		return nil, fault.StoreUnavailable
	})
	if nil != err {
		t.Fatalf("new registry error: %s", err)
	}
	defer registry.Close()

	a := testService(registry)

	arg := account.BalanceArguments{
		Scope: testScope,
		Owner: testOwner,
	}

	var reply account.BalanceReply
	err = a.Balance(&arg, &reply)
	assert.Equal(t, fault.StoreUnavailable, err, "wrong Balance error")
}
