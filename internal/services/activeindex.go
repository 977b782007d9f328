package services

import (
	"hash/fnv"
	"sync"
)

const indexShardCount = 16

// ActiveRequestIndex is the in-process reservation set enforcing at most one
// active delivery request per customer. TryReserve is an atomic check-and-set
// for a given customer; the map is striped so that concurrent calls for
// different customers do not serialize on a single lock.
//
// The index fronts the database's partial unique index, which remains the
// final arbiter if two instances or a stale index ever disagree.
type ActiveRequestIndex struct {
	shards [indexShardCount]*indexShard
}

type indexShard struct {
	mu       sync.Mutex
	reserved map[string]struct{}
}

func NewActiveRequestIndex() *ActiveRequestIndex {
	index := &ActiveRequestIndex{}
	for i := range index.shards {
		index.shards[i] = &indexShard{reserved: make(map[string]struct{})}
	}
	return index
}

func (idx *ActiveRequestIndex) shard(customerID string) *indexShard {
	h := fnv.New32a()
	h.Write([]byte(customerID))
	return idx.shards[h.Sum32()%indexShardCount]
}

// TryReserve atomically reserves the active slot for the customer. It returns
// false, without side effects, when the slot is already taken.
func (idx *ActiveRequestIndex) TryReserve(customerID string) bool {
	shard := idx.shard(customerID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if _, taken := shard.reserved[customerID]; taken {
		return false
	}

	shard.reserved[customerID] = struct{}{}
	return true
}

// Release frees the customer's slot. Called when a request reaches a terminal
// status, or as the compensating step when persistence fails after a
// successful reservation.
func (idx *ActiveRequestIndex) Release(customerID string) {
	shard := idx.shard(customerID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	delete(shard.reserved, customerID)
}

// Prime marks the given customers as reserved, aligning the index with the
// requests already active in storage at boot.
func (idx *ActiveRequestIndex) Prime(customerIDs []string) {
	for _, customerID := range customerIDs {
		shard := idx.shard(customerID)
		shard.mu.Lock()
		shard.reserved[customerID] = struct{}{}
		shard.mu.Unlock()
	}
}
