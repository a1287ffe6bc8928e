// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/fault"
	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/metadata"
	"github.com/scrip-coop/scripd/mode"
	"github.com/scrip-coop/scripd/rpc/ratelimit"
)

// Account
// -------

const (
	maximumHistoryCount = 100
	rateLimitAccount    = 200
	rateBurstAccount    = 100
)

// Account - type for the RPC
type Account struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	Ledger       *ledger.Registry
}

// New - create the account service
func New(log *logger.L, isNormalMode func(mode.Mode) bool, registry *ledger.Registry) *Account {
	return &Account{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitAccount, rateBurstAccount),
		IsNormalMode: isNormalMode,
		Ledger:       registry,
	}
}

// resolve the addressed account, opening its scope on first use
func (acc *Account) account(scope ident.ScopeID, owner ident.OwnerID) (*ledger.Account, error) {
	bank, err := acc.Ledger.Bank(scope)
	if nil != err {
		return nil, err
	}
	return bank.Account(owner)
}

// Account balance
// ---------------

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	Scope ident.ScopeID `json:"scope"`
	Owner ident.OwnerID `json:"owner"`
}

// BalanceReply - result of balance RPC
type BalanceReply struct {
	Scope   ident.ScopeID `json:"scope"`
	Owner   ident.OwnerID `json:"owner"`
	Balance int64         `json:"balance"`
}

// Balance - current balance of one account
func (acc *Account) Balance(arguments *BalanceArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(acc.Limiter); nil != err {
		return err
	}

	log := acc.Log
	log.Infof("Account.Balance: %+v", arguments)

	account, err := acc.account(arguments.Scope, arguments.Owner)
	if nil != err {
		return err
	}

	reply.Scope = arguments.Scope
	reply.Owner = arguments.Owner
	reply.Balance = account.Balance()

	return nil
}

// Balance mutations
// -----------------

// TransactionArguments - arguments for the deposit, withdraw and
// set-balance RPCs
type TransactionArguments struct {
	Scope    ident.ScopeID `json:"scope"`
	Owner    ident.OwnerID `json:"owner"`
	Amount   int64         `json:"amount"`
	Reason   string        `json:"reason"`
	Metadata metadata.Map  `json:"metadata"`
}

// TransactionReply - the committed entry and the resulting balance
type TransactionReply struct {
	Entry     uint64    `json:"entry"`
	Amount    int64     `json:"amount"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

func (reply *TransactionReply) set(entry *ledger.Log, balance int64) {
	reply.Entry = entry.ID()
	reply.Amount = entry.Amount()
	reply.Balance = balance
	reply.CreatedAt = entry.CreatedAt()
}

// Deposit - add amount to the balance
//
// a negative amount is accepted as long as the resulting balance
// stays non-negative
func (acc *Account) Deposit(arguments *TransactionArguments, reply *TransactionReply) error {

	if err := ratelimit.Limit(acc.Limiter); nil != err {
		return err
	}

	log := acc.Log
	log.Infof("Account.Deposit: %+v", arguments)

	if !acc.IsNormalMode(mode.Normal) {
		return fault.NotAvailableInCurrentMode
	}

	account, err := acc.account(arguments.Scope, arguments.Owner)
	if nil != err {
		return err
	}

	entry, err := account.Deposit(arguments.Amount, arguments.Reason, arguments.Metadata)
	if nil != err {
		return err
	}

	reply.set(entry, account.Balance())
	return nil
}

// Withdraw - remove amount from the balance
func (acc *Account) Withdraw(arguments *TransactionArguments, reply *TransactionReply) error {

	if err := ratelimit.Limit(acc.Limiter); nil != err {
		return err
	}

	log := acc.Log
	log.Infof("Account.Withdraw: %+v", arguments)

	if !acc.IsNormalMode(mode.Normal) {
		return fault.NotAvailableInCurrentMode
	}

	account, err := acc.account(arguments.Scope, arguments.Owner)
	if nil != err {
		return err
	}

	entry, err := account.Withdraw(arguments.Amount, arguments.Reason, arguments.Metadata)
	if nil != err {
		return err
	}

	reply.set(entry, account.Balance())
	return nil
}

// SetBalance - assign the balance directly
//
// the entry records the delta from the previous balance
func (acc *Account) SetBalance(arguments *TransactionArguments, reply *TransactionReply) error {

	if err := ratelimit.Limit(acc.Limiter); nil != err {
		return err
	}

	log := acc.Log
	log.Infof("Account.SetBalance: %+v", arguments)

	if !acc.IsNormalMode(mode.Normal) {
		return fault.NotAvailableInCurrentMode
	}

	account, err := acc.account(arguments.Scope, arguments.Owner)
	if nil != err {
		return err
	}

	entry, err := account.SetBalance(arguments.Amount, arguments.Reason, arguments.Metadata)
	if nil != err {
		return err
	}

	reply.set(entry, account.Balance())
	return nil
}

// Transfer between two accounts
// -----------------------------

// TransferArguments - arguments for RPC
type TransferArguments struct {
	Scope    ident.ScopeID `json:"scope"`
	From     ident.OwnerID `json:"from"`
	To       ident.OwnerID `json:"to"`
	Amount   int64         `json:"amount"`
	Reason   string        `json:"reason"`
	Metadata metadata.Map  `json:"metadata"`
}

// TransferReply - both committed entries and resulting balances
type TransferReply struct {
	WithdrawalEntry uint64 `json:"withdrawalEntry"`
	DepositEntry    uint64 `json:"depositEntry"`
	FromBalance     int64  `json:"fromBalance"`
	ToBalance       int64  `json:"toBalance"`
}

// Transfer - move amount between two accounts of one scope
//
// both balance writes commit in a single batch
func (acc *Account) Transfer(arguments *TransferArguments, reply *TransferReply) error {

	if err := ratelimit.Limit(acc.Limiter); nil != err {
		return err
	}

	log := acc.Log
	log.Infof("Account.Transfer: %+v", arguments)

	if !acc.IsNormalMode(mode.Normal) {
		return fault.NotAvailableInCurrentMode
	}

	from, err := acc.account(arguments.Scope, arguments.From)
	if nil != err {
		return err
	}
	to, err := acc.account(arguments.Scope, arguments.To)
	if nil != err {
		return err
	}

	withdrawal, deposit, err := from.Transfer(to, arguments.Amount, arguments.Reason, arguments.Metadata)
	if nil != err {
		return err
	}

	reply.WithdrawalEntry = withdrawal.ID()
	reply.DepositEntry = deposit.ID()
	reply.FromBalance = from.Balance()
	reply.ToBalance = to.Balance()

	return nil
}

// Rollback an entry
// -----------------

// RollbackArguments - arguments for RPC
type RollbackArguments struct {
	Scope ident.ScopeID `json:"scope"`
	Owner ident.OwnerID `json:"owner"`
	Entry uint64        `json:"entry"`
}

// Rollback - undo one entry with a balancing entry
//
// the original entry stays, flagged as rolled back
func (acc *Account) Rollback(arguments *RollbackArguments, reply *TransactionReply) error {

	if err := ratelimit.Limit(acc.Limiter); nil != err {
		return err
	}

	log := acc.Log
	log.Infof("Account.Rollback: %+v", arguments)

	if !acc.IsNormalMode(mode.Normal) {
		return fault.NotAvailableInCurrentMode
	}

	account, err := acc.account(arguments.Scope, arguments.Owner)
	if nil != err {
		return err
	}

	entry, err := account.Rollback(arguments.Entry)
	if nil != err {
		return err
	}

	reply.set(entry, account.Balance())
	return nil
}

// Account history
// ---------------

// HistoryArguments - arguments for RPC
type HistoryArguments struct {
	Scope ident.ScopeID `json:"scope"`
	Owner ident.OwnerID `json:"owner"`
	Count int           `json:"count"` // number of records
}

// HistoryRecord - one entry of the history
type HistoryRecord struct {
	Entry     uint64       `json:"entry"`
	Amount    int64        `json:"amount"`
	CreatedAt time.Time    `json:"createdAt"`
	Reason    string       `json:"reason"`
	Rollback  bool         `json:"rollback,omitempty"`
	Metadata  metadata.Map `json:"metadata"`
}

// HistoryReply - result of history RPC
type HistoryReply struct {
	Scope   ident.ScopeID   `json:"scope"`
	Owner   ident.OwnerID   `json:"owner"`
	Entries []HistoryRecord `json:"entries"`
}

// History - the most recent entries, newest first
func (acc *Account) History(arguments *HistoryArguments, reply *HistoryReply) error {

	if err := ratelimit.LimitN(acc.Limiter, arguments.Count, maximumHistoryCount); nil != err {
		return err
	}

	log := acc.Log
	log.Infof("Account.History: %+v", arguments)

	account, err := acc.account(arguments.Scope, arguments.Owner)
	if nil != err {
		return err
	}

	entries := account.FetchLogs(arguments.Count, nil)

	reply.Scope = arguments.Scope
	reply.Owner = arguments.Owner
	reply.Entries = make([]HistoryRecord, len(entries))
	for i, entry := range entries {
		reply.Entries[i] = HistoryRecord{
			Entry:     entry.ID(),
			Amount:    entry.Amount(),
			CreatedAt: entry.CreatedAt(),
			Reason:    entry.Reason(),
			Rollback:  entry.IsRollback(),
			Metadata:  entry.Metadata(),
		}
	}

	return nil
}

// Balance variation
// -----------------

// VariationArguments - arguments for RPC
type VariationArguments struct {
	Scope ident.ScopeID `json:"scope"`
	Owner ident.OwnerID `json:"owner"`
	Start time.Time     `json:"start"`
	End   time.Time     `json:"end"`
}

// VariationReply - result of variation RPC
type VariationReply struct {
	Scope     ident.ScopeID `json:"scope"`
	Owner     ident.OwnerID `json:"owner"`
	Variation int64         `json:"variation"`
}

// Variation - sum of entry amounts created inside [start, end]
func (acc *Account) Variation(arguments *VariationArguments, reply *VariationReply) error {

	if err := ratelimit.Limit(acc.Limiter); nil != err {
		return err
	}

	log := acc.Log
	log.Infof("Account.Variation: %+v", arguments)

	account, err := acc.account(arguments.Scope, arguments.Owner)
	if nil != err {
		return err
	}

	variation, err := account.BalanceVariation(arguments.Start, arguments.End)
	if nil != err {
		return err
	}

	reply.Scope = arguments.Scope
	reply.Owner = arguments.Owner
	reply.Variation = variation

	return nil
}
