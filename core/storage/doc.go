// Package storage provides the object storage client used for audit archives.
//
// The Client interface wraps the subset of Minio operations the service
// needs (bucket checks, uploads, downloads) so tests can substitute a mock.
// NewClient builds a Minio-backed implementation with strict transport
// timeouts; EnsureBucket prepares the archive bucket at startup.
package storage
