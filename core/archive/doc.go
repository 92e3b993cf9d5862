// Package archive stores JSON snapshots of reconciled records.
//
// Reconciliation deletes the exit header and its line items from the
// relational store. The archiver keeps an operator-accessible copy of what
// was deleted (and how much stock was restored) in object storage. Archive
// failures are reported as warnings and never block or roll back a run.
package archive
