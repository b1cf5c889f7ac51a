// Package tip moves tokens between accounts and keeps the tip ledger.
//
// A transfer debits the sender, credits the owner of the tipped video and
// appends one immutable ledger record, all inside a single database
// transaction. The debit is conditional on the balance covering the amount,
// so concurrent transfers from the same account cannot overdraw it.
//
// Summaries are served from an optional cache that every transfer on the
// video invalidates after commit.
package tip
