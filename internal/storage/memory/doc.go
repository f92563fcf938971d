// Package memory provides the in-memory key/value store for respkv.
//
// Entries live in a sharded concurrent map (pkg/cmap). A key's value and
// its deadline are stored together in one entry, so a reader holding the
// shard lock always sees a matching pair.
//
// Expired keys are not removed: liveness is decided by the caller at read
// time and an expired entry stays until it is overwritten.
package memory
