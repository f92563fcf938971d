// Package storage defines the key/value store contract used by the
// command executor.
//
// The only implementation is the in-memory store in storage/memory. There
// is no persistence: the store is created at server start and lives for
// the life of the process.
package storage
