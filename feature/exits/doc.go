// Package exits exposes the exit reconciliation job as an application
// feature: an HTTP admin surface for triggering runs and inspecting pending
// exits, a run lease preventing overlapping runs, and access to archived
// snapshots of reconciled exits. The job itself lives in the reconcile
// subpackage; the data model in models.
package exits
