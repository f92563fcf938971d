package memory

import (
	"github.com/yndnr/respkv/internal/protocol/resp"
	"github.com/yndnr/respkv/internal/storage"
	"github.com/yndnr/respkv/pkg/cmap"
)

// Store is a concurrent in-memory implementation of storage.Store.
type Store struct {
	entries *cmap.Map[storage.Entry]
}

var _ storage.Store = (*Store)(nil)

// Option configures the Store.
type Option func(*options)

type options struct {
	shards int
}

// WithShardCount sets the number of map shards. It must be a power of two;
// other values fall back to cmap.DefaultShardCount.
func WithShardCount(n int) Option {
	return func(o *options) {
		o.shards = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	o := options{shards: cmap.DefaultShardCount}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		entries: cmap.NewWithShards[storage.Entry](o.shards),
	}
}

// Put inserts or overwrites a value, keeping any deadline already set.
func (s *Store) Put(key string, value resp.Value) {
	s.entries.Update(key, func(cur storage.Entry, _ bool) (storage.Entry, bool) {
		cur.Value = value
		return cur, true
	})
}

// PutWithExpiry stores value and deadline in a single update.
func (s *Store) PutWithExpiry(key string, value resp.Value, deadline int64) {
	s.entries.Set(key, storage.Entry{
		Value:     value,
		ExpiresAt: deadline,
		HasExpiry: true,
	})
}

// Get returns the stored value without looking at its deadline.
func (s *Store) Get(key string) (resp.Value, bool) {
	e, ok := s.entries.Get(key)
	if !ok {
		return resp.Value{}, false
	}
	return e.Value, true
}

// SetExpiry sets the deadline of an existing key.
func (s *Store) SetExpiry(key string, deadline int64) bool {
	return s.entries.Update(key, func(cur storage.Entry, exists bool) (storage.Entry, bool) {
		if !exists {
			return cur, false
		}
		cur.ExpiresAt = deadline
		cur.HasExpiry = true
		return cur, true
	})
}

// Expiry returns the deadline of a key, if any.
func (s *Store) Expiry(key string) (int64, bool) {
	e, ok := s.entries.Get(key)
	if !ok || !e.HasExpiry {
		return 0, false
	}
	return e.ExpiresAt, true
}

// Lookup returns the entry for key.
func (s *Store) Lookup(key string) (storage.Entry, bool) {
	return s.entries.Get(key)
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return s.entries.Len()
}

// ShardStats returns the key count of each shard.
func (s *Store) ShardStats() []cmap.ShardStats {
	return s.entries.Stats()
}
