// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bank

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/scrip-coop/scripd/ident"
	"github.com/scrip-coop/scripd/ledger"
	"github.com/scrip-coop/scripd/rpc/ratelimit"
)

// Bank
// ----

const (
	maximumLeaderboardCount = 100
	rateLimitBank           = 200
	rateBurstBank           = 100
)

// Bank - type for the RPC
//
// every operation is a read, so none of them gate on the daemon mode
type Bank struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Ledger  *ledger.Registry
}

// New - create the bank service
func New(log *logger.L, registry *ledger.Registry) *Bank {
	return &Bank{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitBank, rateBurstBank),
		Ledger:  registry,
	}
}

// Bank leaderboard
// ----------------

// LeaderboardArguments - arguments for RPC
type LeaderboardArguments struct {
	Scope ident.ScopeID `json:"scope"`
	Count int           `json:"count"` // number of records
}

// LeaderboardEntry - one ranked account
type LeaderboardEntry struct {
	Rank    int           `json:"rank"`
	Owner   ident.OwnerID `json:"owner"`
	Balance int64         `json:"balance"`
}

// LeaderboardReply - result of leaderboard RPC
type LeaderboardReply struct {
	Scope    ident.ScopeID      `json:"scope"`
	Accounts []LeaderboardEntry `json:"accounts"`
}

// Leaderboard - the richest accounts, balance descending with ties
// broken by ascending owner id
func (bnk *Bank) Leaderboard(arguments *LeaderboardArguments, reply *LeaderboardReply) error {

	if err := ratelimit.LimitN(bnk.Limiter, arguments.Count, maximumLeaderboardCount); nil != err {
		return err
	}

	log := bnk.Log
	log.Infof("Bank.Leaderboard: %+v", arguments)

	bank, err := bnk.Ledger.Bank(arguments.Scope)
	if nil != err {
		return err
	}

	accounts, err := bank.Leaderboard(arguments.Count)
	if nil != err {
		return err
	}

	reply.Scope = arguments.Scope
	reply.Accounts = make([]LeaderboardEntry, len(accounts))
	for i, account := range accounts {
		reply.Accounts[i] = LeaderboardEntry{
			Rank:    i + 1,
			Owner:   account.Owner(),
			Balance: account.Balance(),
		}
	}

	return nil
}

// Account rank
// ------------

// RankArguments - arguments for RPC
type RankArguments struct {
	Scope ident.ScopeID `json:"scope"`
	Owner ident.OwnerID `json:"owner"`
}

// RankReply - result of rank RPC
type RankReply struct {
	Scope   ident.ScopeID `json:"scope"`
	Owner   ident.OwnerID `json:"owner"`
	Rank    int           `json:"rank"`
	Balance int64         `json:"balance"`
}

// Rank - the 1-based position of one account in the full descending
// ordering
func (bnk *Bank) Rank(arguments *RankArguments, reply *RankReply) error {

	if err := ratelimit.Limit(bnk.Limiter); nil != err {
		return err
	}

	log := bnk.Log
	log.Infof("Bank.Rank: %+v", arguments)

	bank, err := bnk.Ledger.Bank(arguments.Scope)
	if nil != err {
		return err
	}

	account, err := bank.Account(arguments.Owner)
	if nil != err {
		return err
	}

	rank, err := bank.Rank(account)
	if nil != err {
		return err
	}

	reply.Scope = arguments.Scope
	reply.Owner = arguments.Owner
	reply.Rank = rank
	reply.Balance = account.Balance()

	return nil
}

// Scope statistics
// ----------------

// StatisticsArguments - arguments for RPC
type StatisticsArguments struct {
	Scope ident.ScopeID `json:"scope"`
}

// StatisticsReply - result of statistics RPC
type StatisticsReply struct {
	Scope          ident.ScopeID `json:"scope"`
	AccountCount   int           `json:"accountCount"`
	TotalBalance   int64         `json:"totalBalance"`
	AverageBalance float64       `json:"averageBalance"`
	MedianBalance  float64       `json:"medianBalance"`
}

// Statistics - aggregate figures over every stored account
func (bnk *Bank) Statistics(arguments *StatisticsArguments, reply *StatisticsReply) error {

	if err := ratelimit.Limit(bnk.Limiter); nil != err {
		return err
	}

	log := bnk.Log
	log.Infof("Bank.Statistics: %+v", arguments)

	bank, err := bnk.Ledger.Bank(arguments.Scope)
	if nil != err {
		return err
	}

	statistics, err := bank.Statistics()
	if nil != err {
		return err
	}

	reply.Scope = arguments.Scope
	reply.AccountCount = statistics.AccountCount
	reply.TotalBalance = statistics.TotalBalance
	reply.AverageBalance = statistics.AverageBalance
	reply.MedianBalance = statistics.MedianBalance

	return nil
}

// Account listing
// ---------------

// AccountsArguments - arguments for RPC
type AccountsArguments struct {
	Scope ident.ScopeID `json:"scope"`
}

// AccountRecord - one stored account
type AccountRecord struct {
	Owner   ident.OwnerID `json:"owner"`
	Balance int64         `json:"balance"`
}

// AccountsReply - result of accounts RPC
type AccountsReply struct {
	Scope    ident.ScopeID   `json:"scope"`
	Accounts []AccountRecord `json:"accounts"`
}

// Accounts - every account with a row in the scope's store, in
// ascending owner order
func (bnk *Bank) Accounts(arguments *AccountsArguments, reply *AccountsReply) error {

	if err := ratelimit.Limit(bnk.Limiter); nil != err {
		return err
	}

	log := bnk.Log
	log.Infof("Bank.Accounts: %+v", arguments)

	bank, err := bnk.Ledger.Bank(arguments.Scope)
	if nil != err {
		return err
	}

	accounts, err := bank.Accounts(nil)
	if nil != err {
		return err
	}

	reply.Scope = arguments.Scope
	reply.Accounts = make([]AccountRecord, len(accounts))
	for i, account := range accounts {
		reply.Accounts[i] = AccountRecord{
			Owner:   account.Owner(),
			Balance: account.Balance(),
		}
	}

	return nil
}
