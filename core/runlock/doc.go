// Package runlock prevents overlapping reconciliation runs.
//
// A run acquires a named lease before touching the database and releases it
// when finished. With redis configured the lease is a SET NX key with a TTL,
// so it also excludes runs triggered on other instances; without redis an
// in-process guard covers the single-instance deployment. A concurrent
// trigger observes ErrHeld and reports "run already in progress" rather than
// an error.
package runlock
