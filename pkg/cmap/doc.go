// Package cmap provides a string-keyed concurrent map.
//
// Keys are routed to a fixed number of shards by a murmur3 hash; each
// shard owns a plain map guarded by its own RWMutex:
//
//	m := cmap.NewWithShards[Entry](16)
//	m.Set("key", e)
//	e, ok := m.Get("key")
//
// Thread Safety:
//
// Reads (Get, Len, Stats) take the shard read lock, writes (Set, Update)
// take the shard write lock. Update runs its callback while the lock is
// held, so a read-modify-write on one key is never observed half done.
package cmap
