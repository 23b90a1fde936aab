// Package folio reports on a hierarchical, multi-currency, double-entry
// ledger. It is designed to be local-first and auditable: every figure is an
// exact decimal computed on the fly from an immutable ledger snapshot.
//
// The core functionalities include:
//   - Ledger Loading: decoding a JSONL stream of directives (open, close,
//     commodity, price, option, transaction) into a Ledger snapshot, and
//     collecting its structural errors.
//   - Realization: folding postings into a tree of accounts, each holding
//     the cumulative lots (units with an optional cost) of its subtree.
//   - Price Graph: time-ordered exchange rates between currency pairs, and a
//     conversion primitive that can hop through operating currencies.
//   - Balance Aggregation: per-account balances, either in native currencies
//     or converted to a single target currency under a market or a cost
//     valuation policy.
//   - Holdings: a leaf-account portfolio view with market value, cost basis
//     and unrealized gain per target currency, and their totals.
//
// This package serves as the foundational logic for the `folio`
// command-line tool.
package folio
