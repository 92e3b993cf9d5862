// Package server holds the HTTP server configuration consumed by the start
// command: the listen port and the API key guarding the admin endpoints.
package server
