package storage

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

const DefaultShardCount = 16

var _ KeyValue = (*MemoryStore)(nil)

// MemoryStore keeps values in memory, spread over shards by key hash.
type MemoryStore struct {
	shards []memoryShard

	reads   atomic.Uint64
	writes  atomic.Uint64
	deletes atomic.Uint64
}

type memoryShard struct {
	mx     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates a store with shardCount shards; non-positive means the default.
func NewMemoryStore(shardCount int) *MemoryStore {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}

	s := &MemoryStore{shards: make([]memoryShard, shardCount)}
	for i := range s.shards {
		s.shards[i].values = make(map[string]string)
	}
	return s
}

func (s *MemoryStore) shard(key string) *memoryShard {
	return &s.shards[xxhash.Sum64String(key)%uint64(len(s.shards))]
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.reads.Add(1)

	sh := s.shard(key)
	sh.mx.RLock()
	defer sh.mx.RUnlock()

	value, ok := sh.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return ErrEmptyKey
	}
	s.writes.Add(1)

	sh := s.shard(key)
	sh.mx.Lock()
	defer sh.mx.Unlock()

	sh.values[key] = value
	return nil
}

// Delete removes key; deleting an absent key is not an error.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.deletes.Add(1)

	sh := s.shard(key)
	sh.mx.Lock()
	defer sh.mx.Unlock()

	delete(sh.values, key)
	return nil
}

func (s *MemoryStore) ShardCount() int { return len(s.shards) }

func (s *MemoryStore) Statistics() Statistics {
	keys := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mx.RLock()
		keys += len(sh.values)
		sh.mx.RUnlock()
	}

	return Statistics{
		Keys:    keys,
		Reads:   s.reads.Load(),
		Writes:  s.writes.Load(),
		Deletes: s.deletes.Load(),
	}
}
