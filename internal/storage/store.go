package storage

import "github.com/yndnr/respkv/internal/protocol/resp"

// Entry is a stored value with its optional absolute deadline.
type Entry struct {
	Value resp.Value
	// ExpiresAt is an epoch-millisecond deadline, meaningful only when
	// HasExpiry is set.
	ExpiresAt int64
	HasExpiry bool
}

// Expired reports whether the entry is past its deadline at nowMillis.
// A deadline equal to now counts as expired.
func (e Entry) Expired(nowMillis int64) bool {
	return e.HasExpiry && nowMillis >= e.ExpiresAt
}

// Store is the process-wide key/value map shared by every connection.
//
// Implementations must be safe for concurrent use. Expiry is never
// enforced by the store itself: Get and Lookup return entries whatever
// their deadline and callers decide liveness.
type Store interface {
	// Put inserts or overwrites a value. An existing deadline is kept.
	Put(key string, value resp.Value)

	// PutWithExpiry stores a value and its deadline as one update.
	PutWithExpiry(key string, value resp.Value, deadline int64)

	// Get returns the current value regardless of expiry.
	Get(key string) (resp.Value, bool)

	// SetExpiry sets the deadline of an existing key. It reports false
	// and does nothing when the key is absent.
	SetExpiry(key string, deadline int64) bool

	// Expiry returns the deadline of a key, if it has one.
	Expiry(key string) (int64, bool)

	// Lookup returns value and deadline read under the same lock.
	Lookup(key string) (Entry, bool)

	// Len returns the number of stored keys, expired ones included.
	Len() int
}
