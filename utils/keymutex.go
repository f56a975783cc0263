package utils

import (
	"hash/fnv"
	"sync"
)

// KeyedMutex provides mutual exclusion scoped to a string key, backed by a
// fixed set of shards so the lock table never grows with the key space.
// Distinct keys may land on the same shard and contend, which is fine for the
// short critical sections this guards.
type KeyedMutex struct {
	shards []sync.Mutex
}

// NewKeyedMutex creates a new keyed mutex with the passed in number of shards
func NewKeyedMutex(shards int) *KeyedMutex {
	if shards <= 0 {
		shards = 1
	}
	return &KeyedMutex{shards: make([]sync.Mutex, shards)}
}

// Lock acquires the lock for the passed in key
func (m *KeyedMutex) Lock(key string) {
	m.shard(key).Lock()
}

// Unlock releases the lock for the passed in key
func (m *KeyedMutex) Unlock(key string) {
	m.shard(key).Unlock()
}

func (m *KeyedMutex) shard(key string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(key))
	return &m.shards[h.Sum32()%uint32(len(m.shards))]
}
