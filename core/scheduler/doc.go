// Package scheduler runs the reconciliation job on a fixed interval.
//
// It is deliberately small: a ticker loop with context cancellation for
// graceful shutdown. Job errors are logged and swallowed so a failed run
// never kills the schedule; the eligibility query makes the next tick a safe
// retry of anything left behind.
package scheduler
