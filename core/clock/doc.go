// Package clock abstracts the wall clock behind a small interface.
//
// All expiry comparisons in the reconciliation job go through a Clock so
// tests can freeze time instead of sleeping. Production code uses System(),
// which always reports UTC; tests use Fixed().
package clock
