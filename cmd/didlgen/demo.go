// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/solidcoredata/didl/idl"
	"github.com/solidcoredata/didl/internal/runner"
)

type account struct {
	Balance int64  `idl:"balance"`
	Owner   string `idl:"owner"`
}

type ledgerEntry struct {
	Amount int64        `idl:"amount"`
	Next   *ledgerEntry `idl:"next"`
}

// demoJobs builds the fixed value set didlgen's subcommands operate on:
// a primitive, an Opt, a Record, and a self-referential Record routed
// through DefaultRegistry. Between them they use Int, Text, Opt, Record
// and Knot; Null, Bool, Nat, Vec and Variant do not appear.
func demoJobs() []runner.Job {
	var balance int64 = 42
	return []runner.Job{
		{Name: "answer", Value: int64(42), Type: idl.Int},
		{Name: "maybe-answer", Value: &balance, Type: idl.OptOf(idl.Int)},
		{
			Name:  "account",
			Value: account{Balance: 42, Owner: "alice"},
			Type:  idl.TypeOf[account](),
		},
		{
			Name: "ledger",
			Value: ledgerEntry{
				Amount: 1,
				Next:   &ledgerEntry{Amount: 2},
			},
			Type: idl.TypeOf[ledgerEntry](),
		},
	}
}
