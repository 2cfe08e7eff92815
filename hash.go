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

// Package inthash provides hash-based containers for signed 64-bit integer
// keys: Map, a separate-chaining hash map generic over its value type, and
// Set, an open-addressing hash set using linear probing with tombstone
// deletion. Both grow by doubling their backing storage and rehashing when
// an insert would push the load factor above a threshold. Neither container
// is goroutine-safe; callers must serialize access externally.
package inthash

const (
	// mapLoadFactor is the chaining map's growth threshold. A Put that
	// would push size/capacity above this value doubles the bucket array
	// first.
	mapLoadFactor = 0.75

	// defaultCapacity is used when a constructor receives a non-positive
	// capacity.
	defaultCapacity = 16
)

// foldHash produces a non-negative digest from a signed key by folding the
// sign. Negating math.MinInt64 is a no-op in two's complement; the uint64
// conversion still yields a valid digest (2^63). The map's bucket index is
// foldHash(key) % capacity, so nearby keys land in nearby buckets; chaining
// degrades gracefully under that kind of clustering.
func foldHash(key int64) uint64 {
	if key < 0 {
		key = -key
	}
	return uint64(key)
}

// mixHash applies a splitmix64-style avalanche to the key. Linear probing
// clusters badly when sequential keys map to sequential slots, so the set
// wants every input bit to affect the slot index.
func mixHash(key int64) uint64 {
	x := uint64(key)
	x = ((x >> 30) ^ x) * 0xbf58476d1ce4e5b9
	x = ((x >> 27) ^ x) * 0x94d049bb133111eb
	x = (x >> 31) ^ x
	return x
}
