// Package reconcile implements the expired-exit reconciliation job.
//
// A pending exit reserves warehouse stock until it is confirmed. When its
// expiry passes, the reservation is considered abandoned: the job restores
// every line item's quantity to the matching warehouse stock row (taking a
// row lock for the update), deletes the line items and the header, and
// commits. Each exit runs in its own transaction, so one bad row can never
// block the cleanup of the others. A missing warehouse row is logged as a
// data-integrity warning and skipped without failing the exit.
//
// Runs are triggered by the in-process scheduler, the reconcile CLI command
// or the admin HTTP endpoint; all three paths go through Reconciler.Run and
// produce the same Report.
package reconcile
