// Copyright 2026 The Inthash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package inthash

import "fmt"

// nilEntry terminates a chain and the free list.
const nilEntry int32 = -1

// Entry holds a key/value pair and the link to the next entry in the same
// bucket. Entries live in an index-addressed pool owned by the Map; next is
// an index into that pool rather than a pointer, which keeps chain nodes
// allocation-free after the pool is sized and makes recycling a freed entry
// an index swap.
type Entry[V any] struct {
	key   int64
	value V
	next  int32
}

// Map is a hash map from int64 keys to values of type V, resolving
// collisions by separate chaining. Map[int64] stores its values inline; for
// pointer or handle value types the map stores only the reference and never
// copies or releases what it refers to. The caller owns those resources and
// may free them before or after Close.
//
// A Map is NOT goroutine-safe.
type Map[V any] struct {
	// buckets holds the pool index of each chain head, nilEntry for an
	// empty bucket.
	buckets []int32
	// pool is the entry arena. Slots in pool[:poolUsed] have been handed
	// out at least once; freed slots are recycled before poolUsed advances.
	pool     []Entry[V]
	poolUsed int32
	// free is the head of the free list, threaded through the next fields
	// of recycled entries. nilEntry if none.
	free int32
	// size is the number of live keys, independent of len(buckets).
	size  int
	alloc MapAllocator[V]
}

// NewMap constructs an empty Map with the given number of buckets. A
// non-positive initialCapacity falls back to a small default. The bucket
// count need not be a power of two. Fails with ErrAllocation if backing
// storage cannot be obtained.
func NewMap[V any](initialCapacity int, opts ...MapOption[V]) (*Map[V], error) {
	if initialCapacity <= 0 {
		initialCapacity = defaultCapacity
	}
	m := &Map[V]{
		free:  nilEntry,
		alloc: defaultMapAllocator[V]{},
	}
	for _, op := range opts {
		op.apply(m)
	}
	buckets, err := m.alloc.AllocBuckets(initialCapacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	for i := range buckets {
		buckets[i] = nilEntry
	}
	m.buckets = buckets
	return m, nil
}

// Put inserts a key/value pair, overwriting the value in place if the key
// is already present. If inserting a new key would push the load factor
// above the growth threshold, the bucket array is doubled and every chain
// relinked first. On ErrAllocation the map is unchanged and remains usable.
func (m *Map[V]) Put(key int64, value V) error {
	if float64(m.size+1)/float64(len(m.buckets)) > mapLoadFactor {
		if err := m.grow(); err != nil {
			return err
		}
	}
	i := foldHash(key) % uint64(len(m.buckets))
	for e := m.buckets[i]; e != nilEntry; e = m.pool[e].next {
		if m.pool[e].key == key {
			m.pool[e].value = value
			return nil
		}
	}
	e, err := m.newEntry(key, value)
	if err != nil {
		return err
	}
	m.pool[e].next = m.buckets[i]
	m.buckets[i] = e
	m.size++
	m.checkInvariants()
	return nil
}

// Get returns the value stored for key, with ok=false if the key is
// absent. There is at most one matching entry per chain, so the first
// match wins.
func (m *Map[V]) Get(key int64) (value V, ok bool) {
	i := foldHash(key) % uint64(len(m.buckets))
	for e := m.buckets[i]; e != nilEntry; e = m.pool[e].next {
		if m.pool[e].key == key {
			return m.pool[e].value, true
		}
	}
	return value, false
}

// Delete removes key from the map, reporting whether it was present. The
// entry is unlinked from its chain (updating the bucket head if it was
// first) and recycled onto the free list; the stored value is cleared so
// the map does not pin caller-owned data. Capacity never decreases.
func (m *Map[V]) Delete(key int64) bool {
	i := foldHash(key) % uint64(len(m.buckets))
	prev := nilEntry
	for e := m.buckets[i]; e != nilEntry; prev, e = e, m.pool[e].next {
		if m.pool[e].key != key {
			continue
		}
		if prev == nilEntry {
			m.buckets[i] = m.pool[e].next
		} else {
			m.pool[prev].next = m.pool[e].next
		}
		m.pool[e] = Entry[V]{next: m.free}
		m.free = e
		m.size--
		m.checkInvariants()
		return true
	}
	return false
}

// Len returns the number of keys in the map.
func (m *Map[V]) Len() int {
	return m.size
}

// Close releases the bucket array and entry pool back to the configured
// allocator. It is unnecessary to close a map using the default allocator.
// Values of type V are not released; the caller owns them. Close is
// idempotent, though it is invalid to use a Map after it has been closed.
func (m *Map[V]) Close() {
	if m.buckets != nil {
		m.alloc.FreeBuckets(m.buckets)
		m.buckets = nil
	}
	if m.pool != nil {
		m.alloc.FreeEntries(m.pool)
		m.pool = nil
	}
	m.poolUsed = 0
	m.free = nilEntry
	m.size = 0
}

// newEntry obtains a pool slot for a new key/value pair, reusing the free
// list before extending the pool.
func (m *Map[V]) newEntry(key int64, value V) (int32, error) {
	e := m.free
	if e != nilEntry {
		m.free = m.pool[e].next
	} else {
		if int(m.poolUsed) == len(m.pool) {
			if err := m.growPool(); err != nil {
				return nilEntry, err
			}
		}
		e = m.poolUsed
		m.poolUsed++
	}
	m.pool[e] = Entry[V]{key: key, value: value, next: nilEntry}
	return e, nil
}

// growPool doubles the entry pool, copying existing entries. Chain links
// are pool indexes, not pointers, so they survive the move untouched.
func (m *Map[V]) growPool() error {
	n := 2 * len(m.pool)
	if n == 0 {
		n = defaultCapacity
	}
	pool, err := m.alloc.AllocEntries(n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	copy(pool, m.pool)
	if m.pool != nil {
		m.alloc.FreeEntries(m.pool)
	}
	m.pool = pool
	return nil
}

// grow doubles the bucket array and relinks every live entry into it.
// Entries stay where they are in the pool; only bucket heads and next
// links are rewritten. The old bucket array is released only after the
// relink completes, so on allocation failure the map is untouched.
func (m *Map[V]) grow() error {
	newCapacity := 2 * len(m.buckets)
	buckets, err := m.alloc.AllocBuckets(newCapacity)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	for i := range buckets {
		buckets[i] = nilEntry
	}
	for _, head := range m.buckets {
		for e := head; e != nilEntry; {
			next := m.pool[e].next
			j := foldHash(m.pool[e].key) % uint64(newCapacity)
			m.pool[e].next = buckets[j]
			buckets[j] = e
			e = next
		}
	}
	m.alloc.FreeBuckets(m.buckets)
	m.buckets = buckets
	m.checkInvariants()
	return nil
}

func (m *Map[V]) checkInvariants() {
	if !invariants {
		return
	}
	live := 0
	for i, head := range m.buckets {
		for e := head; e != nilEntry; e = m.pool[e].next {
			if j := foldHash(m.pool[e].key) % uint64(len(m.buckets)); int(j) != i {
				panic(fmt.Sprintf("invariant failed: entry %d (key %d) hashes to bucket %d but is linked in bucket %d",
					e, m.pool[e].key, j, i))
			}
			live++
		}
	}
	if live != m.size {
		panic(fmt.Sprintf("invariant failed: found %d live entries, but size is %d", live, m.size))
	}
	freed := 0
	for e := m.free; e != nilEntry; e = m.pool[e].next {
		freed++
	}
	if int32(live)+int32(freed) != m.poolUsed {
		panic(fmt.Sprintf("invariant failed: live=%d freed=%d does not account for %d issued pool slots",
			live, freed, m.poolUsed))
	}
}
