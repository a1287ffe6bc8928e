// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/metadata"
)

func TestDeposit(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	account := testAccount(t, bank, 1)

	entry, err := account.Deposit(75, "", nil)
	assert.Nil(t, err, "deposit failed")
	assert.Equal(t, int64(75), account.Balance(), "wrong balance")
	assert.Equal(t, int64(75), entry.Amount(), "wrong amount")
	assert.Equal(t, metadata.DefaultReason, entry.Reason(), "missing reason not defaulted")
	assert.Equal(t, account, entry.Account(), "wrong back reference")
}

// a negative deposit is a debit and obeys the non-negative floor
func TestDepositNegativeAmount(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	account := testAccount(t, bank, 1)

	_, err := account.Deposit(-10, "", nil)
	assert.Equal(t, fault.NegativeBalance, err, "wrong error")
	assert.Equal(t, int64(0), account.Balance(), "balance changed by failed deposit")

	_, err = account.Deposit(100, "", nil)
	assert.Nil(t, err, "deposit failed")
	entry, err := account.Deposit(-30, "correction", nil)
	assert.Nil(t, err, "negative deposit failed")
	assert.Equal(t, int64(-30), entry.Amount(), "wrong amount")
	assert.Equal(t, int64(70), account.Balance(), "wrong balance")
}

func TestWithdraw(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	account := testAccount(t, bank, 1)

	_, err := account.Deposit(50, "", nil)
	assert.Nil(t, err, "deposit failed")

	entry, err := account.Withdraw(20, "fees", nil)
	assert.Nil(t, err, "withdraw failed")
	assert.Equal(t, int64(-20), entry.Amount(), "wrong amount")
	assert.Equal(t, int64(30), account.Balance(), "wrong balance")

	// down to exactly zero is allowed
	_, err = account.Withdraw(30, "", nil)
	assert.Nil(t, err, "withdraw to zero failed")
	assert.Equal(t, int64(0), account.Balance(), "wrong balance")

	_, err = account.Withdraw(1, "", nil)
	assert.Equal(t, fault.InsufficientBalance, err, "wrong error")
}

func TestSetBalance(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	account := testAccount(t, bank, 1)

	_, err := account.Deposit(40, "", nil)
	assert.Nil(t, err, "deposit failed")

	// the entry records the delta, not the assigned value
	entry, err := account.SetBalance(100, "audit", nil)
	assert.Nil(t, err, "set balance failed")
	assert.Equal(t, int64(60), entry.Amount(), "wrong delta")
	assert.Equal(t, int64(100), account.Balance(), "wrong balance")

	entry, err = account.SetBalance(10, "audit", nil)
	assert.Nil(t, err, "set balance failed")
	assert.Equal(t, int64(-90), entry.Amount(), "wrong delta")
	assert.Equal(t, int64(10), account.Balance(), "wrong balance")

	_, err = account.SetBalance(-1, "audit", nil)
	assert.Equal(t, fault.NegativeBalance, err, "wrong error")
	assert.Equal(t, int64(10), account.Balance(), "balance changed by failed set")
}

// invalid metadata is rejected before anything is written
func TestMutationWhenMetadataInvalid(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	account := testAccount(t, bank, 1)

	bad := metadata.Map{"callback": func() {}}

	_, err := account.Deposit(10, "", bad)
	assert.Equal(t, fault.MetadataNotSerializable, err, "wrong error")
	assert.Equal(t, int64(0), account.Balance(), "balance changed by failed deposit")
	assert.Equal(t, 0, len(account.Logs()), "entry recorded by failed deposit")
}

func TestTransfer(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	source := testAccount(t, bank, 1)
	destination := testAccount(t, bank, 2)

	_, err := source.Deposit(100, "", nil)
	assert.Nil(t, err, "deposit failed")

	withdrawal, deposit, err := source.Transfer(destination, 40, "rent", nil)
	assert.Nil(t, err, "transfer failed")
	assert.Equal(t, int64(60), source.Balance(), "wrong source balance")
	assert.Equal(t, int64(40), destination.Balance(), "wrong destination balance")
	assert.Equal(t, int64(-40), withdrawal.Amount(), "wrong withdrawal amount")
	assert.Equal(t, int64(40), deposit.Amount(), "wrong deposit amount")
	assert.Equal(t, source, withdrawal.Account(), "wrong withdrawal account")
	assert.Equal(t, destination, deposit.Account(), "wrong deposit account")

	// both halves carry the same timestamp
	assert.Equal(t, withdrawal.CreatedAt(), deposit.CreatedAt(), "halves differ in time")
}

func TestTransferInsufficient(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	source := testAccount(t, bank, 1)
	destination := testAccount(t, bank, 2)

	_, err := source.Deposit(10, "", nil)
	assert.Nil(t, err, "deposit failed")

	_, _, err = source.Transfer(destination, 11, "", nil)
	assert.Equal(t, fault.InsufficientBalance, err, "wrong error")
	assert.Equal(t, int64(10), source.Balance(), "source changed by failed transfer")
	assert.Equal(t, int64(0), destination.Balance(), "destination changed by failed transfer")
	assert.Equal(t, 0, len(destination.Logs()), "entry recorded by failed transfer")
}

// transferring to oneself records both halves and nets to zero
func TestTransferSelf(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	account := testAccount(t, bank, 1)

	_, err := account.Deposit(100, "", nil)
	assert.Nil(t, err, "deposit failed")

	withdrawal, deposit, err := account.Transfer(account, 30, "shuffle", nil)
	assert.Nil(t, err, "self transfer failed")
	assert.Equal(t, int64(100), account.Balance(), "self transfer changed the balance")
	assert.Equal(t, int64(-30), withdrawal.Amount(), "wrong withdrawal amount")
	assert.Equal(t, int64(30), deposit.Amount(), "wrong deposit amount")
	assert.Equal(t, 3, len(account.Logs()), "wrong entry count")
}

// a negative amount pulls from the destination instead
func TestTransferNegativeAmount(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	source := testAccount(t, bank, 1)
	destination := testAccount(t, bank, 2)

	_, err := destination.Deposit(50, "", nil)
	assert.Nil(t, err, "deposit failed")

	_, _, err = source.Transfer(destination, -20, "claw back", nil)
	assert.Nil(t, err, "reverse transfer failed")
	assert.Equal(t, int64(20), source.Balance(), "wrong source balance")
	assert.Equal(t, int64(30), destination.Balance(), "wrong destination balance")

	// the destination cannot be pulled below zero
	_, _, err = source.Transfer(destination, -31, "claw back", nil)
	assert.Equal(t, fault.NegativeBalance, err, "wrong error")
	assert.Equal(t, int64(20), source.Balance(), "source changed by failed transfer")
	assert.Equal(t, int64(30), destination.Balance(), "destination changed by failed transfer")
}

func TestTransferNilDestination(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	source := testAccount(t, bank, 1)

	_, _, err := source.Transfer(nil, 5, "", nil)
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}

func TestTransferCrossScope(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	here := testBank(t, registry, 100)
	there := testBank(t, registry, 200)

	source := testAccount(t, here, 1)
	destination := testAccount(t, there, 1)

	_, err := source.Deposit(10, "", nil)
	assert.Nil(t, err, "deposit failed")

	_, _, err = source.Transfer(destination, 5, "", nil)
	assert.Equal(t, fault.CrossScopeTransfer, err, "wrong error")
	assert.Equal(t, int64(10), source.Balance(), "source changed by failed transfer")
	assert.Equal(t, int64(0), destination.Balance(), "destination changed by failed transfer")
}

func TestRollbackUnknownEntry(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	account := testAccount(t, bank, 1)

	_, err := account.Rollback(12345)
	assert.Equal(t, fault.LogNotFound, err, "wrong error")
}

// an id belonging to a different account is simply not found
func TestRollbackForeignEntry(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	alpha := testAccount(t, bank, 1)
	beta := testAccount(t, bank, 2)

	entry, err := alpha.Deposit(10, "", nil)
	assert.Nil(t, err, "deposit failed")

	_, err = beta.Rollback(entry.ID())
	assert.Equal(t, fault.LogNotFound, err, "wrong error")
	assert.Equal(t, int64(10), alpha.Balance(), "alpha changed by foreign rollback")
	assert.Equal(t, int64(0), beta.Balance(), "beta changed by foreign rollback")
}

// a rollback is itself an entry and can be rolled back again
func TestRollbackOfRollback(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	account := testAccount(t, bank, 1)

	entry, err := account.Deposit(100, "", nil)
	assert.Nil(t, err, "deposit failed")

	first, err := account.Rollback(entry.ID())
	assert.Nil(t, err, "rollback failed")
	assert.Equal(t, int64(0), account.Balance(), "wrong balance after rollback")

	second, err := account.Rollback(first.ID())
	assert.Nil(t, err, "double rollback failed")
	assert.Equal(t, int64(100), account.Balance(), "wrong balance after double rollback")
	assert.Equal(t, int64(100), second.Amount(), "wrong balancing amount")
}

// rolling back a credit that was already spent would go negative
func TestRollbackWhenBalanceSpent(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	account := testAccount(t, bank, 1)

	entry, err := account.Deposit(100, "", nil)
	assert.Nil(t, err, "deposit failed")
	_, err = account.Withdraw(80, "", nil)
	assert.Nil(t, err, "withdraw failed")

	_, err = account.Rollback(entry.ID())
	assert.Equal(t, fault.NegativeBalance, err, "wrong error")
	assert.Equal(t, int64(20), account.Balance(), "balance changed by failed rollback")
	assert.False(t, entry.IsRollback(), "entry flagged by failed rollback")
}

func TestBalanceVariation(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	account := testAccount(t, bank, 1)

	before := time.Now().UTC().Add(-time.Second)

	_, err := account.Deposit(100, "", nil)
	assert.Nil(t, err, "deposit failed")
	_, err = account.Withdraw(30, "", nil)
	assert.Nil(t, err, "withdraw failed")

	after := time.Now().UTC().Add(time.Second)

	variation, err := account.BalanceVariation(before, after)
	assert.Nil(t, err, "variation failed")
	assert.Equal(t, int64(70), variation, "wrong variation")

	// a window before any activity sums to zero
	variation, err = account.BalanceVariation(before.Add(-time.Hour), before)
	assert.Nil(t, err, "variation failed")
	assert.Equal(t, int64(0), variation, "wrong variation for empty window")

	_, err = account.BalanceVariation(after, before)
	assert.Equal(t, fault.InvalidTimeInterval, err, "wrong error for inverted window")
}

func TestFetchLogs(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	account := testAccount(t, bank, 1)

	for i := 0; i < 5; i += 1 {
		_, err := account.Deposit(int64(10*(i+1)), "", nil)
		assert.Nil(t, err, "deposit failed")
	}

	// most recent first
	all := account.FetchLogs(0, nil)
	assert.Equal(t, 5, len(all), "wrong count")
	assert.Equal(t, int64(50), all[0].Amount(), "wrong newest entry")
	assert.Equal(t, int64(10), all[4].Amount(), "wrong oldest entry")

	limited := account.FetchLogs(2, nil)
	assert.Equal(t, 2, len(limited), "wrong limited count")
	assert.Equal(t, int64(50), limited[0].Amount(), "wrong newest entry")
	assert.Equal(t, int64(40), limited[1].Amount(), "wrong second entry")

	// the limit applies after filtering
	big := account.FetchLogs(2, func(l *ledger.Log) bool {
		return l.Amount() >= 30
	})
	assert.Equal(t, 2, len(big), "wrong filtered count")
	assert.Equal(t, int64(50), big[0].Amount(), "wrong filtered entry")
	assert.Equal(t, int64(40), big[1].Amount(), "wrong filtered entry")

	small := account.FetchLogs(0, func(l *ledger.Log) bool {
		return l.Amount() < 30
	})
	assert.Equal(t, 2, len(small), "wrong filtered count")
	assert.Equal(t, int64(20), small[0].Amount(), "wrong filtered entry")
	assert.Equal(t, int64(10), small[1].Amount(), "wrong filtered entry")
}

func TestFetchLogMissing(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)
	account := testAccount(t, bank, 1)

	_, err := account.FetchLog(99)
	assert.Equal(t, fault.LogNotFound, err, "wrong error")
}

// the same object is returned for repeated account access
func TestAccountIdentity(t *testing.T) {
	registry := setupTestRegistry(t)
	defer teardownTestRegistry(registry)

	bank := testBank(t, registry, 100)

	first := testAccount(t, bank, 77)
	second := testAccount(t, bank, 77)
	assert.Equal(t, first, second, "duplicate account objects")

	// distinct scopes hold distinct accounts for the same owner
	other := testBank(t, registry, 200)
	foreign := testAccount(t, other, 77)
	_, err := foreign.Deposit(5, "", nil)
	assert.Nil(t, err, "deposit failed")
	assert.Equal(t, int64(0), first.Balance(), "scopes not isolated")
	assert.Equal(t, int64(5), foreign.Balance(), "wrong foreign balance")
}
