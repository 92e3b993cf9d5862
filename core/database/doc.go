// Package database manages the relational store connection.
//
// It wraps GORM with the MySQL driver for production and the SQLite driver
// for tests and local development. Connect applies conservative pool limits
// and verifies the connection with a ping before returning it.
//
// EnsureSchema runs GORM auto-migration for the job's tables at startup so a
// fresh environment is usable without a separate migration step.
package database
