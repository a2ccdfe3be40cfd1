// Package runlog persists a ledger of pipeline runs in SQLite.
//
// Each run records its entry mode, final status, and timing, plus one row
// per executed stage with input and output counts. The ledger exists for
// operators: it answers "what did the last run do" without digging through
// logs, and it backs the CLI's runs summary.
package runlog
